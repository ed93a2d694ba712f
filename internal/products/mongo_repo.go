package products

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/mongodb"
)

type productDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Price     int64     `bson:"price"`
	Image     string    `bson:"image"`
	Category  string    `bson:"category"`
	CreatedAt time.Time `bson:"created_at"`
}

func toProductDocument(p *models.Product) productDocument {
	return productDocument{
		ID:        p.ID.String(),
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Category:  string(p.Category),
		CreatedAt: p.CreatedAt,
	}
}

func (d productDocument) toModel() (models.Product, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return models.Product{}, fmt.Errorf("product %q has malformed id: %w", d.ID, err)
	}
	return models.Product{
		ID:        id,
		Name:      d.Name,
		Price:     d.Price,
		Image:     d.Image,
		Category:  enums.ProductCategory(d.Category),
		CreatedAt: d.CreatedAt.UTC(),
	}, nil
}

// MongoRepository is the mongo-backed catalog.
type MongoRepository struct {
	collection *mongo.Collection
}

var _ Store = (*MongoRepository)(nil)

func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: database.Collection(mongodb.CollectionProducts)}
}

// CreateIndexes backs name lookups and the listing sort.
func (r *MongoRepository) CreateIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetName("idx_products_name")},
		{Keys: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}, Options: options.Index().SetName("idx_products_created_at")},
	})
	if err != nil {
		return fmt.Errorf("create products indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	query := bson.M{}
	if q := filter.Query; q != "" {
		query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	rows := make([]models.Product, 0, len(docs))
	for _, doc := range docs {
		product, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		rows = append(rows, product)
	}
	return rows, nil
}

func (r *MongoRepository) InsertIfAbsent(ctx context.Context, p *models.Product) (bool, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"name": p.Name},
		bson.M{"$setOnInsert": toProductDocument(p)},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("insert product %q: %w", p.Name, err)
	}
	return res.UpsertedCount == 1, nil
}
