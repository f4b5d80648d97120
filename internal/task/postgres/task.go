package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
	"github.com/frahmantamala/hospital-workforce/internal/task"
)

// TaskRepository implements task.Repository using GORM
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) task.Repository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return internal.NewDependencyError("failed to create task", err)
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*task.Task, error) {
	var t task.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("task not found", internal.ErrCodeTaskNotFound)
		}
		return nil, internal.NewDependencyError("failed to fetch task", err)
	}
	return &t, nil
}

func (r *TaskRepository) List(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter, filter task.ListTasksFilter) ([]*task.Task, error) {
	var tasks []*task.Task
	query := scope.Apply(r.db.WithContext(ctx), "hospital_id")
	query = rel.Apply(query)
	if filter.PatientID != "" {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.AssignedTo != "" {
		query = query.Where("assigned_to = ?", filter.AssignedTo)
	}
	err := query.Where("is_active = ?", true).Order("created_at DESC").Find(&tasks).Error
	if err != nil {
		return nil, internal.NewDependencyError("failed to list tasks", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	if err := r.db.WithContext(ctx).Save(t).Error; err != nil {
		return internal.NewDependencyError("failed to update task", err)
	}
	return nil
}

func (r *TaskRepository) CreateComment(ctx context.Context, c *task.Comment) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return internal.NewDependencyError("failed to create task comment", err)
	}
	return nil
}

func (r *TaskRepository) ListComments(ctx context.Context, taskID string) ([]*task.Comment, error) {
	var comments []*task.Comment
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND is_active = ?", taskID, true).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, internal.NewDependencyError("failed to list task comments", err)
	}
	return comments, nil
}
