package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// ErrOrderNotFound is returned when no order references the checkout.
var ErrOrderNotFound = errors.New("order not found")

// Store persists order summaries. Upsert is keyed by OrderID so replays are harmless.
type Store interface {
	Upsert(ctx context.Context, order *models.Order) error
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
}

// FromCheckout derives the order summary of a checkout.
func FromCheckout(c *models.Checkout) *models.Order {
	return &models.Order{
		ID:            uuid.New(),
		OrderID:       c.ID,
		CustomerEmail: c.Email,
		TotalAmount:   c.Total,
		Items:         len(c.Cart),
		OrderDate:     c.CheckoutDate,
		Status:        enums.OrderStatusConfirmed,
	}
}
