package checkout

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

var (
	// ErrEmptyCart is returned when a checkout is attempted without cart lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrCheckoutNotFound covers both unknown and malformed checkout ids.
	ErrCheckoutNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "checkout not found")
)

// Store persists checkouts. Place writes the checkout and its derived order as one unit.
type Store interface {
	Place(ctx context.Context, checkout *models.Checkout, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Checkout, error)
}
