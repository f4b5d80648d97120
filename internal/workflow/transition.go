package workflow

import (
	"time"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
)

// Status is the lifecycle state shared by leave requests and shift swap
// requests. pending is the only non-terminal state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// Decision is the outcome of a legal transition: the new status and the
// review stamp to persist. Staff cancellations clear the stamp since the
// owner is not reviewing their own request.
type Decision struct {
	Status     Status
	ReviewedBy *string
	ReviewedAt *time.Time
}

// Transition decides whether actor may move a request owned by ownerID
// from current to requested. It is pure in its inputs and shared by both
// request types so the rules cannot drift apart. Tenant membership must
// already have been established by the caller through the authorizer.
func Transition(actor *accesscontrol.Actor, ownerID string, current, requested Status, now time.Time) (Decision, error) {
	if actor == nil {
		return Decision{}, internal.NewUnauthenticatedError("authentication required", internal.ErrCodeInvalidToken)
	}
	if !requested.Valid() {
		return Decision{}, internal.NewValidationError("invalid status", internal.ErrCodeInvalidStatus)
	}

	if actor.Role.IsStaff() {
		if ownerID != actor.ID {
			return Decision{}, internal.NewForbiddenError("access denied", internal.ErrCodeRelationViolation)
		}
		if requested != StatusCancelled {
			return Decision{}, internal.NewForbiddenError("only cancellation is allowed", internal.ErrCodeRoleInsufficient)
		}
		if current != StatusPending {
			return Decision{}, internal.NewValidationError("only pending requests can be cancelled", internal.ErrCodeInvalidStatus)
		}
		return Decision{Status: StatusCancelled}, nil
	}

	if !actor.Role.IsReviewer() {
		return Decision{}, internal.ErrInsufficient
	}
	if requested == StatusPending {
		return Decision{}, internal.NewValidationError("invalid status", internal.ErrCodeInvalidStatus)
	}
	if current != StatusPending {
		return Decision{}, internal.NewValidationError("only pending requests can be reviewed", internal.ErrCodeInvalidStatus)
	}

	reviewer := actor.ID
	at := now
	return Decision{Status: requested, ReviewedBy: &reviewer, ReviewedAt: &at}, nil
}
