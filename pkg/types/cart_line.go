package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddedAtLayout is the timestamp layout recorded on cart lines.
const AddedAtLayout = "2006-01-02 15:04:05"

// CartLine is one item selected into a session cart and later snapshotted on a checkout.
type CartLine struct {
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Image   string          `json:"image"`
	AddedAt string          `json:"added_at"`
}

// NewCartLine stamps a line with the given time in AddedAtLayout.
func NewCartLine(name string, price decimal.Decimal, image string, at time.Time) CartLine {
	return CartLine{
		Name:    name,
		Price:   price,
		Image:   image,
		AddedAt: at.Format(AddedAtLayout),
	}
}
