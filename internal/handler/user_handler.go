package handler

import (
	"errors"
	"net/http"
	"strings"

	"taskflow/internal/auth"
	"taskflow/internal/model"
	"taskflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	users repository.UserRepositoryInterface
}

func NewUserHandler(users repository.UserRepositoryInterface) *UserHandler {
	return &UserHandler{users: users}
}

type AdminCreateRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name"`
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name"`
	IsActive *bool  `json:"is_active"`
	IsAdmin  bool   `json:"is_admin"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Username *string `json:"username"`
	FullName *string `json:"full_name"`
	IsActive *bool   `json:"is_active"`
	IsAdmin  *bool   `json:"is_admin"`
}

// CreateAdmin bootstraps the first admin account. It only works while no
// admin user exists yet.
func (h *UserHandler) CreateAdmin(c *gin.Context) {
	var req AdminCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	admins, err := h.users.CountAdmins(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
		return
	}
	if admins > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Admin user already exists. Use regular user creation endpoint."})
		return
	}

	user, err := h.createUser(c, req.Email, req.Username, req.Password, req.FullName, true, true)
	if err != nil {
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Create registers a new user with explicit flags. Admin-only.
func (h *UserHandler) Create(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	if !actor.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not enough permissions"})
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	user, err := h.createUser(c, req.Email, req.Username, req.Password, req.FullName, isActive, req.IsAdmin)
	if err != nil {
		return
	}
	c.JSON(http.StatusCreated, user)
}

// createUser hashes the password and inserts the user, writing the error
// response itself when something goes wrong.
func (h *UserHandler) createUser(c *gin.Context, email, username, password, fullName string, isActive, isAdmin bool) (*model.User, error) {
	email = strings.ToLower(email)

	existing, err := h.users.FindByEmailOrUsername(c.Request.Context(), email, username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
		return nil, err
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email or username already registered"})
		return nil, repository.ErrUserExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Hash error"})
		return nil, err
	}

	user := &model.User{
		ID:             uuid.New(),
		Email:          email,
		Username:       username,
		FullName:       fullName,
		HashedPassword: hash,
		IsActive:       isActive,
		IsAdmin:        isAdmin,
	}

	if err := h.users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email or username already registered"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Create failed"})
		}
		return nil, err
	}
	return user, nil
}

// List returns a window of users, optionally matched against a search
// string. Any authenticated user may list users.
func (h *UserHandler) List(c *gin.Context) {
	skip, limit := paginationParams(c)
	search := c.Query("search")

	users, err := h.users.List(c.Request.Context(), skip, limit, search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}
	if users == nil {
		users = []model.User{}
	}

	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Me returns the caller's own record.
func (h *UserHandler) Me(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, actor)
}

// Update applies a partial update to a user. Only the user themselves or
// an admin may update; a non-admin's attempt to change is_admin is
// silently skipped.
func (h *UserHandler) Update(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if actor.ID != userID && !actor.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not enough permissions"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsAdmin != nil && actor.IsAdmin {
		user.IsAdmin = *req.IsAdmin
	}

	if err := h.users.Update(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email or username already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, user)
}
