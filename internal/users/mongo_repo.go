package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/mongodb"
)

// userDocument is the bson shape of a user.
type userDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Contact   string    `bson:"contact"`
	Password  string    `bson:"password"`
	CreatedAt time.Time `bson:"created_at"`
}

func toUserDocument(u *models.User) userDocument {
	return userDocument{
		ID:        u.ID.String(),
		Name:      u.Name,
		Contact:   u.Contact,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
	}
}

func (d userDocument) toModel() (*models.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("user %q has malformed id: %w", d.ID, err)
	}
	return &models.User{
		ID:        id,
		Name:      d.Name,
		Contact:   d.Contact,
		Password:  d.Password,
		CreatedAt: d.CreatedAt.UTC(),
	}, nil
}

// MongoRepository is the mongo-backed user store.
type MongoRepository struct {
	collection *mongo.Collection
}

var _ Store = (*MongoRepository)(nil)

func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: database.Collection(mongodb.CollectionUsers)}
}

// CreateIndexes enforces one user per contact.
func (r *MongoRepository) CreateIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "contact", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_contact_key"),
	})
	if err != nil {
		return fmt.Errorf("create users indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	user.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.collection.InsertOne(ctx, toUserDocument(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrContactTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *MongoRepository) FindByContact(ctx context.Context, contact string) (*models.User, error) {
	var doc userDocument
	err := r.collection.FindOne(ctx, bson.M{"contact": contact}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by contact: %w", err)
	}
	return doc.toModel()
}
