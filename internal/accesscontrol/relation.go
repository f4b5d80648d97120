package accesscontrol

import (
	"strings"

	"gorm.io/gorm"
)

// Relation names the participant columns of an entity with owner or
// counterpart semantics. Entities without one (patients, departments,
// hospitals) use NoRelation; tenant scope alone governs their visibility.
type Relation struct {
	Columns []string
}

var (
	NoRelation       = Relation{}
	TaskRelation     = Relation{Columns: []string{"created_by", "assigned_to"}}
	ShiftRelation    = Relation{Columns: []string{"assigned_user_id"}}
	LeaveRelation    = Relation{Columns: []string{"user_id"}}
	SwapRelation     = Relation{Columns: []string{"requester_id", "requested_with_user_id"}}
	HandoverRelation = Relation{Columns: []string{"from_user_id", "to_user_id"}}
)

// Narrow returns the relation filter for an actor: staff are restricted to
// rows naming them in one of the relation columns, every other role sees
// the full tenant-scoped set.
func (r Relation) Narrow(actor *Actor) RelationFilter {
	if actor == nil || !actor.Role.IsStaff() || len(r.Columns) == 0 {
		return RelationFilter{}
	}
	return RelationFilter{ActorID: actor.ID, Columns: r.Columns}
}

// RelationFilter is a computed "actor is a named participant" predicate.
// The zero value applies no narrowing.
type RelationFilter struct {
	ActorID string
	Columns []string
}

func (f RelationFilter) Empty() bool {
	return f.ActorID == "" || len(f.Columns) == 0
}

// Apply adds the OR-across-columns participant predicate to a query.
func (f RelationFilter) Apply(db *gorm.DB) *gorm.DB {
	if f.Empty() {
		return db
	}
	clauses := make([]string, len(f.Columns))
	args := make([]interface{}, len(f.Columns))
	for i, col := range f.Columns {
		clauses[i] = col + " = ?"
		args[i] = f.ActorID
	}
	return db.Where(strings.Join(clauses, " OR "), args...)
}

// IsParticipant reports whether actorID matches any of the given
// participant references. Nil references are skipped.
func IsParticipant(actorID string, participants ...*string) bool {
	for _, p := range participants {
		if p != nil && *p == actorID {
			return true
		}
	}
	return false
}
