package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/mongodb"
)

// orderDocument stores money as a decimal string to avoid float rounding.
type orderDocument struct {
	ID            string    `bson:"_id"`
	OrderID       string    `bson:"order_id"`
	CustomerEmail string    `bson:"customer_email"`
	TotalAmount   string    `bson:"total_amount"`
	Items         int       `bson:"items"`
	OrderDate     time.Time `bson:"order_date"`
	Status        string    `bson:"status"`
}

func toOrderDocument(o *models.Order) orderDocument {
	return orderDocument{
		ID:            o.ID.String(),
		OrderID:       o.OrderID.String(),
		CustomerEmail: o.CustomerEmail,
		TotalAmount:   o.TotalAmount.String(),
		Items:         o.Items,
		OrderDate:     o.OrderDate,
		Status:        string(o.Status),
	}
}

func (d orderDocument) toModel() (*models.Order, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("order %q has malformed id: %w", d.ID, err)
	}
	orderID, err := uuid.Parse(d.OrderID)
	if err != nil {
		return nil, fmt.Errorf("order %q has malformed order_id: %w", d.ID, err)
	}
	total, err := decimal.NewFromString(d.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("order %q has malformed total: %w", d.ID, err)
	}
	return &models.Order{
		ID:            id,
		OrderID:       orderID,
		CustomerEmail: d.CustomerEmail,
		TotalAmount:   total,
		Items:         d.Items,
		OrderDate:     d.OrderDate.UTC(),
		Status:        enums.OrderStatus(d.Status),
	}, nil
}

// MongoRepository is the mongo-backed order store.
type MongoRepository struct {
	collection *mongo.Collection
}

var _ Store = (*MongoRepository)(nil)

func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: database.Collection(mongodb.CollectionOrders)}
}

// CreateIndexes makes order_id the idempotency key.
func (r *MongoRepository) CreateIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "order_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("orders_order_id_key"),
	})
	if err != nil {
		return fmt.Errorf("create orders indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) Upsert(ctx context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"order_id": order.OrderID.String()},
		bson.M{"$setOnInsert": toOrderDocument(order)},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert order: %w", err)
	}
	return nil
}

func (r *MongoRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var doc orderDocument
	err := r.collection.FindOne(ctx, bson.M{"order_id": orderID.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return doc.toModel()
}
