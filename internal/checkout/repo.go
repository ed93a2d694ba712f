package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/internal/repo"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// Repository is the SQL-backed checkout store.
type Repository struct {
	repo.Base
	client *db.Client
}

var _ Store = (*Repository)(nil)

func NewRepository(client *db.Client) *Repository {
	return &Repository{Base: repo.NewBase(client.DB()), client: client}
}

// Place inserts the checkout and its order in one transaction.
func (r *Repository) Place(ctx context.Context, checkout *models.Checkout, order *models.Order) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(checkout).Error; err != nil {
			return fmt.Errorf("insert checkout: %w", err)
		}
		return orders.NewRepository(tx).Upsert(ctx, order)
	})
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Checkout, error) {
	var checkout models.Checkout
	if err := r.DB(ctx).Where("id = ?", id).Take(&checkout).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCheckoutNotFound
		}
		return nil, fmt.Errorf("find checkout: %w", err)
	}
	return &checkout, nil
}
