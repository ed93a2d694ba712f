package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dbtypes "github.com/angelmondragon/storefront-backend/pkg/db/types"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Checkout is the immutable snapshot of a submitted cart plus shipping details.
type Checkout struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	DeliveryOption string               `gorm:"column:delivery_option;not null" json:"delivery_option"`
	FirstName      string               `gorm:"column:first_name;not null" json:"first_name"`
	LastName       string               `gorm:"column:last_name;not null" json:"last_name"`
	Address        string               `gorm:"column:address;not null" json:"address"`
	Email          string               `gorm:"column:email;not null" json:"email"`
	Phone          string               `gorm:"column:phone;not null" json:"phone"`
	PaymentMethod  string               `gorm:"column:payment_method;not null" json:"payment_method"`
	Cart           dbtypes.CartSnapshot `gorm:"column:cart;type:jsonb;not null" json:"cart"`
	Subtotal       decimal.Decimal      `gorm:"column:subtotal;type:numeric(12,2);not null" json:"subtotal"`
	Shipping       decimal.Decimal      `gorm:"column:shipping;type:numeric(12,2);not null" json:"shipping"`
	Tax            decimal.Decimal      `gorm:"column:tax;type:numeric(12,2);not null" json:"tax"`
	Total          decimal.Decimal      `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	CheckoutDate   time.Time            `gorm:"column:checkout_date;not null" json:"checkout_date"`
	Status         enums.CheckoutStatus `gorm:"column:status;not null" json:"status"`
}

func (Checkout) TableName() string { return "checkouts" }

func (c *Checkout) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
