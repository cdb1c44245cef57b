package auth

import (
	"taskflow/internal/model"
)

// Operation is an action an actor can attempt on a task.
type Operation string

const (
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// CanAccess decides whether actor may perform op on task. Admins may do
// anything; creators and assignees may read and update; only the creator
// may delete. Pure function, no side effects.
func CanAccess(actor *model.User, task *model.Task, op Operation) bool {
	if actor.IsAdmin {
		return true
	}

	switch op {
	case OpRead, OpUpdate:
		return actor.ID == task.CreatedBy ||
			(task.AssigneeID != nil && actor.ID == *task.AssigneeID)
	case OpDelete:
		return actor.ID == task.CreatedBy
	}
	return false
}
