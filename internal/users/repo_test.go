package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/mongodb/mongotest"
)

func storesUnderTest(t *testing.T) map[string]func(t *testing.T) Store {
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

func TestStoreCreateAndFind(t *testing.T) {
	for name, open := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			store := open(t)
			ctx := context.Background()

			_, err := store.FindByContact(ctx, "ada@example.com")
			assert.ErrorIs(t, err, ErrUserNotFound)

			created, err := store.Create(ctx, CreateUserDTO{Name: "Ada", Contact: "ada@example.com", Password: "secret"})
			require.NoError(t, err)
			assert.NotEmpty(t, created.ID)

			found, err := store.FindByContact(ctx, "ada@example.com")
			require.NoError(t, err)
			assert.Equal(t, created.ID, found.ID)
			assert.Equal(t, "Ada", found.Name)
			assert.Equal(t, "secret", found.Password, "passwords are stored as submitted")
			assert.False(t, found.CreatedAt.IsZero())
		})
	}
}

func TestStoreRejectsDuplicateContact(t *testing.T) {
	for name, open := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			store := open(t)
			ctx := context.Background()

			_, err := store.Create(ctx, CreateUserDTO{Name: "Ada", Contact: "555-0100", Password: "a"})
			require.NoError(t, err)

			_, err = store.Create(ctx, CreateUserDTO{Name: "Grace", Contact: "555-0100", Password: "b"})
			assert.ErrorIs(t, err, ErrContactTaken)
		})
	}
}

func TestFromModelOmitsPassword(t *testing.T) {
	user := CreateUserDTO{Name: "Ada", Contact: "ada@example.com", Password: "secret"}.ToModel()
	dto := FromModel(user)
	require.NotNil(t, dto)
	assert.Equal(t, user.ID, dto.ID)
	assert.Equal(t, "ada@example.com", dto.Contact)
	assert.Nil(t, FromModel(nil))
}
