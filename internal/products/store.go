package products

import (
	"context"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// HomeLimit caps the number of products shown on the home view.
const HomeLimit = 8

// ListFilter narrows a catalog listing. A zero Limit means unlimited.
type ListFilter struct {
	Query string
	Limit int
}

// Store is the catalog persistence surface.
type Store interface {
	List(ctx context.Context, filter ListFilter) ([]models.Product, error)
	// InsertIfAbsent inserts p unless a product with the same exact name exists.
	InsertIfAbsent(ctx context.Context, p *models.Product) (bool, error)
}
