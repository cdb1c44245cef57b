package repository

import (
	"context"
	"errors"

	"taskflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskFilter narrows a task listing. Nil fields are not applied.
// ViewerID scopes results to tasks the viewer created or is assigned to;
// it is left nil for admin callers, who see everything.
type TaskFilter struct {
	Status     *model.TaskStatus
	Priority   *model.TaskPriority
	AssigneeID *uuid.UUID
	Search     string
	ViewerID   *uuid.UUID
}

type TaskRepository struct {
	db *gorm.DB
}

type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *model.Task) error
	GetActiveByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context, filter TaskFilter, skip, limit int) ([]model.Task, error)
	ListAssigned(ctx context.Context, userID uuid.UUID, status *model.TaskStatus, skip, limit int) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

var _ TaskRepositoryInterface = (*TaskRepository)(nil)

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetActiveByID retrieves a task by its ID. Soft-deleted tasks are
// treated as missing.
func (r *TaskRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ? AND is_active = ?", id, true)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// List retrieves a window of active tasks matching the filter.
func (r *TaskRepository) List(ctx context.Context, filter TaskFilter, skip, limit int) ([]model.Task, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("is_active = ?", true).
		Order("created_at")

	if filter.ViewerID != nil {
		query = query.Where(
			"created_by = ? OR assignee_id = ?",
			*filter.ViewerID, *filter.ViewerID,
		)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var tasks []model.Task
	if err := query.Offset(skip).Limit(limit).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListAssigned retrieves active tasks assigned to a user, optionally
// narrowed by status.
func (r *TaskRepository) ListAssigned(ctx context.Context, userID uuid.UUID, status *model.TaskStatus, skip, limit int) ([]model.Task, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("assignee_id = ? AND is_active = ?", userID, true).
		Order("created_at")

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var tasks []model.Task
	if err := query.Offset(skip).Limit(limit).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update saves an existing task
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	result := r.db.WithContext(ctx).Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// SoftDelete marks a task inactive instead of removing the row.
func (r *TaskRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
