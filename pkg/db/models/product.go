package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Product represents a purchasable catalog entry. Price is in whole currency units.
type Product struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string                `gorm:"column:name;not null;index" json:"name"`
	Price     int64                 `gorm:"column:price;not null" json:"price"`
	Image     string                `gorm:"column:image;not null" json:"image"`
	Category  enums.ProductCategory `gorm:"column:category;not null" json:"category"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Product) TableName() string { return "products" }

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
