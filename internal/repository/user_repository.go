package repository

import (
	"context"
	"errors"

	"taskflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	List(ctx context.Context, skip, limit int, search string) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	CountAdmins(ctx context.Context) (int64, error)
}

var _ UserRepositoryInterface = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. The unique indexes on email and username
// close the race between the caller's duplicate pre-check and the insert.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUserExists
	}
	return err
}

// FindByEmailOrUsername returns the first user matching either value,
// or nil when no user matches.
func (r *UserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ? OR username = ?", email, username).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns a window of users in insertion order. When search is
// non-empty it is matched case-insensitively as a substring of username,
// email or full name.
func (r *UserRepository) List(ctx context.Context, skip, limit int, search string) ([]model.User, error) {
	query := r.db.WithContext(ctx).Model(&model.User{}).Order("created_at")

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"username ILIKE ? OR email ILIKE ? OR full_name ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	var users []model.User
	if err := query.Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Save(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUserExists
	}
	return err
}

// CountAdmins reports how many admin users exist. Used to gate the
// first-admin bootstrap endpoint.
func (r *UserRepository) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("is_admin = ?", true).
		Count(&count).Error
	return count, err
}
