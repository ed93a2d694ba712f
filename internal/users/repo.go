package users

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/repo"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// Repository is the SQL-backed user store.
type Repository struct {
	repo.Base
}

var _ Store = (*Repository)(nil)

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.DB(ctx).Create(user).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, ErrContactTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// FindByContact retrieves the user registered with contact.
func (r *Repository) FindByContact(ctx context.Context, contact string) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).Where("contact = ?", contact).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by contact: %w", err)
	}
	return &user, nil
}
