package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/storefront-backend/pkg/db/types"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/mongodb/mongotest"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

func sampleCheckout() *models.Checkout {
	return &models.Checkout{
		ID:    uuid.New(),
		Email: "ada@example.com",
		Cart: dbtypes.CartSnapshot{
			{Name: "Luxury Perfume", Price: decimal.NewFromInt(1999)},
			{Name: "Stylish Sunglasses", Price: decimal.NewFromInt(799)},
		},
		Total:        decimal.RequireFromString("2806.00"),
		CheckoutDate: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Status:       enums.CheckoutStatusProcessing,
	}
}

func TestFromCheckout(t *testing.T) {
	checkout := sampleCheckout()

	order := FromCheckout(checkout)

	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.NotEqual(t, checkout.ID, order.ID)
	assert.Equal(t, checkout.ID, order.OrderID)
	assert.Equal(t, "ada@example.com", order.CustomerEmail)
	assert.True(t, order.TotalAmount.Equal(checkout.Total))
	assert.Equal(t, 2, order.Items)
	assert.True(t, order.OrderDate.Equal(checkout.CheckoutDate))
	assert.Equal(t, enums.OrderStatusConfirmed, order.Status)
}

func TestFromCheckoutCountsLinesNotQuantities(t *testing.T) {
	checkout := sampleCheckout()
	checkout.Cart = append(checkout.Cart, types.CartLine{Name: "Luxury Perfume", Price: decimal.NewFromInt(1999)})

	assert.Equal(t, 3, FromCheckout(checkout).Items)
}

func storesUnderTest() map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"sql": func(t *testing.T) Store {
			return NewRepository(dbtest.NewSQLite(t).DB())
		},
		"mongo": func(t *testing.T) Store {
			repo := NewMongoRepository(mongotest.Database(t))
			require.NoError(t, repo.CreateIndexes(context.Background()))
			return repo
		},
	}
}

func TestStoreUpsertIsKeyedByOrderID(t *testing.T) {
	for name, open := range storesUnderTest() {
		t.Run(name, func(t *testing.T) {
			store := open(t)
			ctx := context.Background()
			checkout := sampleCheckout()

			_, err := store.FindByOrderID(ctx, checkout.ID)
			assert.ErrorIs(t, err, ErrOrderNotFound)

			first := FromCheckout(checkout)
			require.NoError(t, store.Upsert(ctx, first))
			require.NoError(t, store.Upsert(ctx, FromCheckout(checkout)))

			found, err := store.FindByOrderID(ctx, checkout.ID)
			require.NoError(t, err)
			assert.Equal(t, first.ID, found.ID)
			assert.Equal(t, checkout.ID, found.OrderID)
			assert.Equal(t, 2, found.Items)
			assert.Equal(t, "2806.00", found.TotalAmount.StringFixed(2))
			assert.True(t, found.OrderDate.Equal(checkout.CheckoutDate))
			assert.Equal(t, enums.OrderStatusConfirmed, found.Status)
		})
	}
}

func TestRepositoryCountsOneOrderPerCheckout(t *testing.T) {
	client := dbtest.NewSQLite(t)
	repo := NewRepository(client.DB())
	checkout := sampleCheckout()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Upsert(context.Background(), FromCheckout(checkout)))
	}

	var count int64
	require.NoError(t, client.DB().Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
