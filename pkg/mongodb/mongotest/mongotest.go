// Package mongotest starts one throwaway mongo container per test binary.
package mongotest

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/mongodb"
)

const image = "mongo:7"

var (
	once     sync.Once
	uri      string
	startErr error
)

// Database returns an empty database on the shared container, dropped when t ends.
// The test is skipped when Docker is unavailable or -short is set.
func Database(t *testing.T) *mongo.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping mongo container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	once.Do(func() {
		container, err := tcmongo.Run(ctx, image)
		if err != nil {
			startErr = err
			return
		}
		uri, startErr = container.ConnectionString(ctx)
	})
	if startErr != nil {
		t.Skipf("mongo container unavailable: %v", startErr)
	}

	name := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	client, err := mongodb.New(ctx, config.MongoConfig{URI: uri, Database: name, ConnectTimeout: 10 * time.Second}, nil)
	if err != nil {
		t.Fatalf("connect mongo: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Database().Drop(context.Background())
		_ = client.Close()
	})
	return client.Database()
}
