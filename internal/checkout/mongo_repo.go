package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/storefront-backend/pkg/db/types"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/mongodb"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

type cartLineDocument struct {
	Name    string `bson:"name"`
	Price   string `bson:"price"`
	Image   string `bson:"image"`
	AddedAt string `bson:"added_at"`
}

type checkoutDocument struct {
	ID             string             `bson:"_id"`
	DeliveryOption string             `bson:"delivery_option"`
	FirstName      string             `bson:"first_name"`
	LastName       string             `bson:"last_name"`
	Address        string             `bson:"address"`
	Email          string             `bson:"email"`
	Phone          string             `bson:"phone"`
	PaymentMethod  string             `bson:"payment_method"`
	Cart           []cartLineDocument `bson:"cart"`
	Subtotal       string             `bson:"subtotal"`
	Shipping       string             `bson:"shipping"`
	Tax            string             `bson:"tax"`
	Total          string             `bson:"total"`
	CheckoutDate   time.Time          `bson:"checkout_date"`
	Status         string             `bson:"status"`
}

func toCheckoutDocument(c *models.Checkout) checkoutDocument {
	lines := make([]cartLineDocument, 0, len(c.Cart))
	for _, line := range c.Cart {
		lines = append(lines, cartLineDocument{
			Name:    line.Name,
			Price:   line.Price.String(),
			Image:   line.Image,
			AddedAt: line.AddedAt,
		})
	}
	return checkoutDocument{
		ID:             c.ID.String(),
		DeliveryOption: c.DeliveryOption,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Address:        c.Address,
		Email:          c.Email,
		Phone:          c.Phone,
		PaymentMethod:  c.PaymentMethod,
		Cart:           lines,
		Subtotal:       c.Subtotal.String(),
		Shipping:       c.Shipping.String(),
		Tax:            c.Tax.String(),
		Total:          c.Total.String(),
		CheckoutDate:   c.CheckoutDate,
		Status:         string(c.Status),
	}
}

func (d checkoutDocument) toModel() (*models.Checkout, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("checkout %q has malformed id: %w", d.ID, err)
	}

	amounts := make([]decimal.Decimal, 4)
	for i, raw := range []string{d.Subtotal, d.Shipping, d.Tax, d.Total} {
		if amounts[i], err = decimal.NewFromString(raw); err != nil {
			return nil, fmt.Errorf("checkout %q has malformed amount %q: %w", d.ID, raw, err)
		}
	}

	lines := make(dbtypes.CartSnapshot, 0, len(d.Cart))
	for _, line := range d.Cart {
		price, err := decimal.NewFromString(line.Price)
		if err != nil {
			return nil, fmt.Errorf("checkout %q has malformed line price %q: %w", d.ID, line.Price, err)
		}
		lines = append(lines, types.CartLine{
			Name:    line.Name,
			Price:   price,
			Image:   line.Image,
			AddedAt: line.AddedAt,
		})
	}

	return &models.Checkout{
		ID:             id,
		DeliveryOption: d.DeliveryOption,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Address:        d.Address,
		Email:          d.Email,
		Phone:          d.Phone,
		PaymentMethod:  d.PaymentMethod,
		Cart:           lines,
		Subtotal:       amounts[0],
		Shipping:       amounts[1],
		Tax:            amounts[2],
		Total:          amounts[3],
		CheckoutDate:   d.CheckoutDate.UTC(),
		Status:         enums.CheckoutStatus(d.Status),
	}, nil
}

// MongoRepository is the mongo-backed checkout store.
type MongoRepository struct {
	collection *mongo.Collection
	orders     orders.Store
}

var _ Store = (*MongoRepository)(nil)

func NewMongoRepository(database *mongo.Database, orderStore orders.Store) *MongoRepository {
	return &MongoRepository{
		collection: database.Collection(mongodb.CollectionCheckouts),
		orders:     orderStore,
	}
}

// Place inserts the checkout, then upserts the order keyed by the checkout id.
// A failed order write leaves a checkout the order can be rebuilt from.
func (r *MongoRepository) Place(ctx context.Context, checkout *models.Checkout, order *models.Order) error {
	if _, err := r.collection.InsertOne(ctx, toCheckoutDocument(checkout)); err != nil {
		return fmt.Errorf("insert checkout: %w", err)
	}
	if err := r.orders.Upsert(ctx, order); err != nil {
		return err
	}
	return nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Checkout, error) {
	var doc checkoutDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCheckoutNotFound
		}
		return nil, fmt.Errorf("find checkout: %w", err)
	}
	return doc.toModel()
}
