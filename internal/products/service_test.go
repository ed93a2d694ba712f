package products

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

type stubStore struct {
	filters []ListFilter
	rows    []models.Product
	listErr error
	names   map[string]bool
	failOn  string
}

func (s *stubStore) List(_ context.Context, filter ListFilter) ([]models.Product, error) {
	s.filters = append(s.filters, filter)
	return s.rows, s.listErr
}

func (s *stubStore) InsertIfAbsent(_ context.Context, p *models.Product) (bool, error) {
	if p.Name == s.failOn {
		return false, errors.New("write failed")
	}
	if s.names == nil {
		s.names = map[string]bool{}
	}
	if s.names[p.Name] {
		return false, nil
	}
	s.names[p.Name] = true
	return true, nil
}

func TestServiceListPassesQueryVerbatim(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store, nil, nil)

	rows, err := svc.List(context.Background(), "  lamp ", HomeLimit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", rows)
	}
	if len(store.filters) != 1 || store.filters[0] != (ListFilter{Query: "  lamp ", Limit: HomeLimit}) {
		t.Fatalf("unexpected filters %+v", store.filters)
	}
}

func TestServiceListWrapsStoreFailure(t *testing.T) {
	svc := NewService(&stubStore{listErr: errors.New("down")}, nil, nil)

	_, err := svc.List(context.Background(), "", 0)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestServiceSeedIsIdempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewStorefrontMetrics(reg)
	store := NewRepository(dbtest.NewSQLite(t).DB())
	svc := NewService(store, m, nil)
	ctx := context.Background()

	inserted, err := svc.Seed(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if inserted != len(SeedCatalog) {
		t.Fatalf("expected %d inserted, got %d", len(SeedCatalog), inserted)
	}

	before, err := svc.List(ctx, "", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	inserted, err = svc.Seed(ctx)
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("expected no inserts on reseed, got %d", inserted)
	}

	after, err := svc.List(ctx, "", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("expected %d products, got %d", len(before), len(after))
	}
	for i := range before {
		if before[i].ID != after[i].ID || before[i].Price != after[i].Price {
			t.Fatalf("product %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}

	if got := seededTotal(t, reg); got != float64(len(SeedCatalog)) {
		t.Fatalf("expected seeded metric %d, got %v", len(SeedCatalog), got)
	}
}

func TestServiceSeedStopsOnFailure(t *testing.T) {
	store := &stubStore{failOn: SeedCatalog[2].Name}
	svc := NewService(store, nil, nil)

	inserted, err := svc.Seed(context.Background())
	if pkgerrors.CodeOf(err) != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if inserted != 2 {
		t.Fatalf("expected 2 inserted before failure, got %d", inserted)
	}
}

func TestSeedCatalogHasUniqueValidEntries(t *testing.T) {
	seen := map[string]bool{}
	for _, entry := range SeedCatalog {
		if seen[entry.Name] {
			t.Fatalf("duplicate catalog entry %q", entry.Name)
		}
		seen[entry.Name] = true
		if !entry.Category.IsValid() || entry.Price <= 0 || entry.Image == "" {
			t.Fatalf("invalid catalog entry %+v", entry)
		}
	}
	if len(SeedCatalog) != 9 {
		t.Fatalf("expected 9 catalog entries, got %d", len(SeedCatalog))
	}
}

func seededTotal(t *testing.T, reg *prometheus.Registry) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, family := range families {
		if family.GetName() == "storefront_catalog_products_seeded_total" {
			return family.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return 0
}
