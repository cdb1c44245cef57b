package handler

import (
	"errors"
	"net/http"
	"time"

	"taskflow/internal/auth"
	"taskflow/internal/model"
	"taskflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	tasks repository.TaskRepositoryInterface
	users repository.UserRepositoryInterface
}

func NewTaskHandler(tasks repository.TaskRepositoryInterface, users repository.UserRepositoryInterface) *TaskHandler {
	return &TaskHandler{tasks: tasks, users: users}
}

type CreateTaskRequest struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	Status      *model.TaskStatus   `json:"status"`
	Priority    *model.TaskPriority `json:"priority"`
	AssigneeID  *uuid.UUID          `json:"assignee_id"`
	DueDate     *time.Time          `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Status      *model.TaskStatus   `json:"status"`
	Priority    *model.TaskPriority `json:"priority"`
	AssigneeID  Optional[uuid.UUID] `json:"assignee_id"`
	DueDate     Optional[time.Time] `json:"due_date"`
}

// Create creates a new task owned by the caller.
func (h *TaskHandler) Create(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	status := model.StatusPending
	if req.Status != nil {
		if !req.Status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		status = *req.Status
	}

	priority := model.PriorityMedium
	if req.Priority != nil {
		if !req.Priority.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
			return
		}
		priority = *req.Priority
	}

	if req.AssigneeID != nil {
		if _, err := h.users.GetByID(c.Request.Context(), *req.AssigneeID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Assignee not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify assignee"})
			return
		}
	}

	task := &model.Task{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		AssigneeID:  req.AssigneeID,
		CreatedBy:   actor.ID,
		IsActive:    true,
		DueDate:     req.DueDate,
	}

	if err := h.tasks.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, task)
}

// List returns tasks visible to the caller, filtered and paginated.
// Non-admins only see tasks they created or are assigned to. An empty
// result is reported as 404 rather than an empty list, matching the
// behaviour clients already depend on.
func (h *TaskHandler) List(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	skip, limit := paginationParams(c)

	filter := repository.TaskFilter{Search: c.Query("search")}
	if !actor.IsAdmin {
		filter.ViewerID = &actor.ID
	}

	if v := c.Query("status"); v != "" {
		status := model.TaskStatus(v)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		filter.Status = &status
	}
	if v := c.Query("priority"); v != "" {
		priority := model.TaskPriority(v)
		if !priority.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
			return
		}
		filter.Priority = &priority
	}
	if v := c.Query("assignee_id"); v != "" {
		assigneeID, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignee ID format"})
			return
		}
		filter.AssigneeID = &assigneeID
	}

	tasks, err := h.tasks.List(c.Request.Context(), filter, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}
	if len(tasks) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tasks not found"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// MyTasks returns the tasks assigned to the caller. Unlike List, an empty
// result here is a normal empty 200 response.
func (h *TaskHandler) MyTasks(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	skip, limit := paginationParams(c)

	var status *model.TaskStatus
	if v := c.Query("status"); v != "" {
		s := model.TaskStatus(v)
		if !s.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		status = &s
	}

	tasks, err := h.tasks.ListAssigned(c.Request.Context(), actor.ID, status, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) GetByID(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	if !auth.CanAccess(actor, task, auth.OpRead) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not enough permissions"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// Update applies a partial update to a task. Creator, assignee and admins
// may update; a newly supplied assignee must exist.
func (h *TaskHandler) Update(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	if !auth.CanAccess(actor, task, auth.OpUpdate) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not enough permissions"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title cannot be empty"})
			return
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		task.Status = *req.Status
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
			return
		}
		task.Priority = *req.Priority
	}
	if req.AssigneeID.Set {
		if req.AssigneeID.Value != nil {
			changed := task.AssigneeID == nil || *task.AssigneeID != *req.AssigneeID.Value
			if changed {
				if _, err := h.users.GetByID(c.Request.Context(), *req.AssigneeID.Value); err != nil {
					if errors.Is(err, repository.ErrUserNotFound) {
						c.JSON(http.StatusNotFound, gin.H{"error": "Assignee not found"})
						return
					}
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify assignee"})
					return
				}
			}
		}
		task.AssigneeID = req.AssigneeID.Value
	}
	if req.DueDate.Set {
		task.DueDate = req.DueDate.Value
	}

	if err := h.tasks.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// Delete soft-deletes a task. Only the creator or an admin may delete;
// being the assignee is not enough.
func (h *TaskHandler) Delete(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	if !auth.CanAccess(actor, task, auth.OpDelete) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not enough permissions"})
		return
	}

	if err := h.tasks.SoftDelete(c.Request.Context(), task.ID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.Status(http.StatusNoContent)
}

// loadTask parses the id parameter and fetches the active task, writing
// the error response itself on failure.
func (h *TaskHandler) loadTask(c *gin.Context) (*model.Task, bool) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return nil, false
	}

	task, err := h.tasks.GetActiveByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return nil, false
	}
	return task, true
}
