package auth_test

import (
	"testing"

	"taskflow/internal/auth"
	"taskflow/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func makeActors() (admin, creator, assignee, stranger *model.User) {
	admin = &model.User{ID: uuid.New(), IsAdmin: true}
	creator = &model.User{ID: uuid.New()}
	assignee = &model.User{ID: uuid.New()}
	stranger = &model.User{ID: uuid.New()}
	return
}

func makeTask(creator, assignee *model.User) *model.Task {
	return &model.Task{
		ID:         uuid.New(),
		Title:      "Write report",
		CreatedBy:  creator.ID,
		AssigneeID: &assignee.ID,
		IsActive:   true,
	}
}

func TestCanAccess_Delete_AllRoles(t *testing.T) {
	admin, creator, assignee, stranger := makeActors()
	task := makeTask(creator, assignee)

	assert.True(t, auth.CanAccess(admin, task, auth.OpDelete))
	assert.True(t, auth.CanAccess(creator, task, auth.OpDelete))
	assert.False(t, auth.CanAccess(assignee, task, auth.OpDelete))
	assert.False(t, auth.CanAccess(stranger, task, auth.OpDelete))
}

func TestCanAccess_ReadAndUpdate_AllRoles(t *testing.T) {
	admin, creator, assignee, stranger := makeActors()
	task := makeTask(creator, assignee)

	for _, op := range []auth.Operation{auth.OpRead, auth.OpUpdate} {
		assert.True(t, auth.CanAccess(admin, task, op))
		assert.True(t, auth.CanAccess(creator, task, op))
		assert.True(t, auth.CanAccess(assignee, task, op))
		assert.False(t, auth.CanAccess(stranger, task, op))
	}
}

func TestCanAccess_UnassignedTask(t *testing.T) {
	_, creator, _, stranger := makeActors()
	task := &model.Task{
		ID:        uuid.New(),
		Title:     "Unassigned",
		CreatedBy: creator.ID,
		IsActive:  true,
	}

	assert.True(t, auth.CanAccess(creator, task, auth.OpRead))
	assert.False(t, auth.CanAccess(stranger, task, auth.OpRead))
	assert.False(t, auth.CanAccess(stranger, task, auth.OpUpdate))
}

func TestCanAccess_UnknownOperation(t *testing.T) {
	_, creator, assignee, _ := makeActors()
	task := makeTask(creator, assignee)

	assert.False(t, auth.CanAccess(creator, task, auth.Operation("archive")))
}
