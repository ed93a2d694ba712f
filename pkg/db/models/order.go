package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Order is the summary record derived from a checkout. OrderID carries the checkout id.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID       uuid.UUID         `gorm:"column:order_id;type:uuid;not null;uniqueIndex:orders_order_id_key" json:"order_id"`
	CustomerEmail string            `gorm:"column:customer_email;not null" json:"customer_email"`
	TotalAmount   decimal.Decimal   `gorm:"column:total_amount;type:numeric(12,2);not null" json:"total_amount"`
	Items         int               `gorm:"column:items;not null" json:"items"`
	OrderDate     time.Time         `gorm:"column:order_date;not null" json:"order_date"`
	Status        enums.OrderStatus `gorm:"column:status;not null" json:"status"`
}

func (Order) TableName() string { return "orders" }

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
