package users

import (
	"context"
	"errors"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

var (
	// ErrUserNotFound is returned when no user has the requested contact.
	ErrUserNotFound = errors.New("user not found")
	// ErrContactTaken is returned when an insert collides with the unique contact index.
	ErrContactTaken = errors.New("contact already registered")
)

// Store is the persistence surface registration depends on.
type Store interface {
	FindByContact(ctx context.Context, contact string) (*models.User, error)
	Create(ctx context.Context, dto CreateUserDTO) (*models.User, error)
}
