// Package storage opens the configured document store and exposes its record stores.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/internal/users"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/mongodb"
)

// Stores bundles the four record collections of one backend.
type Stores struct {
	Backend   string
	Products  products.Store
	Users     users.Store
	Checkouts checkout.Store
	Orders    orders.Store

	// SQL is set only for the sql backend, for migrations.
	SQL *db.Client

	ping    func(ctx context.Context) error
	closers []func() error
}

// Open connects the backend selected by cfg.Store.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*Stores, error) {
	switch backend := cfg.Store.Normalized(); backend {
	case config.StoreBackendSQL:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, err
		}
		return FromSQL(client), nil
	case config.StoreBackendMongo:
		client, err := mongodb.New(ctx, cfg.Mongo, logg)
		if err != nil {
			return nil, err
		}
		stores, err := FromMongo(ctx, client)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		return stores, nil
	default:
		return nil, fmt.Errorf("unsupported store backend %q", backend)
	}
}

// FromSQL builds the GORM-backed stores over an open client.
func FromSQL(client *db.Client) *Stores {
	orderRepo := orders.NewRepository(client.DB())
	return &Stores{
		Backend:   config.StoreBackendSQL,
		Products:  products.NewRepository(client.DB()),
		Users:     users.NewRepository(client.DB()),
		Checkouts: checkout.NewRepository(client),
		Orders:    orderRepo,
		SQL:       client,
		ping:      client.Ping,
		closers:   []func() error{client.Close},
	}
}

type indexer interface {
	CreateIndexes(ctx context.Context) error
}

// FromMongo builds the mongo-backed stores and ensures their indexes.
func FromMongo(ctx context.Context, client *mongodb.Client) (*Stores, error) {
	database := client.Database()
	productRepo := products.NewMongoRepository(database)
	userRepo := users.NewMongoRepository(database)
	orderRepo := orders.NewMongoRepository(database)

	for _, repo := range []indexer{productRepo, userRepo, orderRepo} {
		if err := repo.CreateIndexes(ctx); err != nil {
			return nil, err
		}
	}

	return &Stores{
		Backend:   config.StoreBackendMongo,
		Products:  productRepo,
		Users:     userRepo,
		Checkouts: checkout.NewMongoRepository(database, orderRepo),
		Orders:    orderRepo,
		ping:      client.Ping,
		closers:   []func() error{client.Close},
	}, nil
}

// Ping reports whether the backing store is reachable.
func (s *Stores) Ping(ctx context.Context) error {
	if s == nil || s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases every connection, collecting all failures.
func (s *Stores) Close() error {
	if s == nil {
		return nil
	}
	var err error
	for _, closeFn := range s.closers {
		err = multierr.Append(err, closeFn())
	}
	s.closers = nil
	return err
}

// AddCloser registers an extra resource released by Close.
func (s *Stores) AddCloser(fn func() error) {
	s.closers = append(s.closers, fn)
}
