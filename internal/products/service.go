package products

import (
	"context"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

// Service exposes catalog reads and startup seeding.
type Service struct {
	store   Store
	catalog []CatalogEntry
	metrics *metrics.StorefrontMetrics
	logg    *logger.Logger
}

// NewService builds a catalog service seeded from SeedCatalog.
func NewService(store Store, m *metrics.StorefrontMetrics, logg *logger.Logger) *Service {
	return &Service{store: store, catalog: SeedCatalog, metrics: m, logg: logg}
}

// List returns catalog products whose name contains query, ignoring case.
// An empty query lists everything; limit <= 0 is unlimited.
func (s *Service) List(ctx context.Context, query string, limit int) ([]models.Product, error) {
	rows, err := s.store.List(ctx, ListFilter{Query: query, Limit: limit})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load products")
	}
	if rows == nil {
		rows = []models.Product{}
	}
	return rows, nil
}

// Seed inserts every catalog entry missing by name and returns how many were added.
func (s *Service) Seed(ctx context.Context) (int, error) {
	inserted := 0
	for _, entry := range s.catalog {
		ok, err := s.store.InsertIfAbsent(ctx, entry.toModel())
		if err != nil {
			s.metrics.AddSeeded(inserted)
			return inserted, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to seed catalog")
		}
		if ok {
			inserted++
		}
	}
	s.metrics.AddSeeded(inserted)
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "inserted", inserted), "catalog seeded")
	}
	return inserted, nil
}
