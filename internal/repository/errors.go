package repository

import "errors"

// Common repository errors
var (
	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrTaskNotFound is returned when a task is not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrAssigneeNotFound is returned when a task references a missing assignee
	ErrAssigneeNotFound = errors.New("assignee not found")

	// ErrUserExists is returned when the email or username is already taken
	ErrUserExists = errors.New("email or username already registered")
)
