package products

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/repo"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// Repository is the SQL-backed catalog.
type Repository struct {
	repo.Base
}

var _ Store = (*Repository)(nil)

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

// List returns products in insertion order, optionally filtered by a
// case-insensitive name substring.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	query := r.DB(ctx).Model(&models.Product{})
	if q := filter.Query; q != "" {
		query = query.Where("LOWER(name) LIKE ? "+repo.LikeEscapeClause, repo.ContainsPattern(q))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []models.Product
	if err := query.Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return rows, nil
}

func (r *Repository) InsertIfAbsent(ctx context.Context, p *models.Product) (bool, error) {
	inserted := false
	err := r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		err := tx.Where("name = ?", p.Name).Take(&existing).Error
		switch {
		case err == nil:
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		inserted = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("insert product %q: %w", p.Name, err)
	}
	return inserted, nil
}
