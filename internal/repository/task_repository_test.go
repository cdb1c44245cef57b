package repository_test

import (
	"context"
	"testing"
	"time"

	"taskflow/internal/model"
	"taskflow/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func taskRows(task *model.Task) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "title", "description", "status", "priority",
		"assignee_id", "created_by", "is_active", "due_date",
		"created_at", "updated_at",
	})

	var assignee interface{}
	if task.AssigneeID != nil {
		assignee = task.AssigneeID.String()
	}

	return rows.AddRow(
		task.ID.String(), task.Title, task.Description,
		string(task.Status), string(task.Priority),
		assignee, task.CreatedBy.String(), task.IsActive,
		task.DueDate, time.Now(), time.Now(),
	)
}

func TestTaskRepository_Create(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	task := &model.Task{
		ID:        uuid.New(),
		Title:     "Write report",
		Status:    model.StatusPending,
		Priority:  model.PriorityMedium,
		CreatedBy: uuid.New(),
		IsActive:  true,
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "tasks"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// Act
	err := taskRepo.Create(context.Background(), task)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_GetActiveByID_Found(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	existing := &model.Task{
		ID:        uuid.New(),
		Title:     "Write report",
		Status:    model.StatusPending,
		Priority:  model.PriorityMedium,
		CreatedBy: uuid.New(),
		IsActive:  true,
	}

	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE .*id = .* AND is_active = .* LIMIT .*`).
		WillReturnRows(taskRows(existing))

	// Act
	task, err := taskRepo.GetActiveByID(context.Background(), existing.ID)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, task)
	assert.Equal(t, existing.ID, task.ID)
	assert.Equal(t, model.StatusPending, task.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_GetActiveByID_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE .*id = .* AND is_active = .* LIMIT .*`).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	task, err := taskRepo.GetActiveByID(context.Background(), uuid.New())

	// Assert
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.Nil(t, task)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_List_ScopedToViewer(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	viewerID := uuid.New()
	existing := &model.Task{
		ID:        uuid.New(),
		Title:     "Write report",
		Status:    model.StatusPending,
		Priority:  model.PriorityMedium,
		CreatedBy: viewerID,
		IsActive:  true,
	}

	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE is_active = .* AND \(created_by = .* OR assignee_id = .*\).*`).
		WillReturnRows(taskRows(existing))

	// Act
	tasks, err := taskRepo.List(context.Background(), repository.TaskFilter{ViewerID: &viewerID}, 0, 10)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, existing.ID, tasks[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_ListAssigned_Empty(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE assignee_id = .* AND is_active = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// Act
	tasks, err := taskRepo.ListAssigned(context.Background(), uuid.New(), nil, 0, 10)

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, tasks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_SoftDelete(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tasks" SET .*is_active.*`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := taskRepo.SoftDelete(context.Background(), uuid.New())

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_SoftDelete_AlreadyInactive(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tasks" SET .*is_active.*`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	// Act
	err := taskRepo.SoftDelete(context.Background(), uuid.New())

	// Assert
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
