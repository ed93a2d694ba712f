package cart

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/pkg/types"
)

var (
	// ShippingFee is the flat shipping charge applied to every cart.
	ShippingFee = decimal.RequireFromString("8.00")
	// TaxAmount is always zero; no tax rules are modeled.
	TaxAmount = decimal.Zero
)

// Totals is the single source of cart, checkout view and stored checkout money.
type Totals struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals sums the line prices and applies shipping and tax.
func ComputeTotals(lines []types.CartLine) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Price)
	}
	return Totals{
		Subtotal: subtotal,
		Shipping: ShippingFee,
		Tax:      TaxAmount,
		Total:    subtotal.Add(ShippingFee).Add(TaxAmount),
	}
}

// MarshalJSON renders every amount with two decimal places.
func (t Totals) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Subtotal string `json:"subtotal"`
		Shipping string `json:"shipping"`
		Tax      string `json:"tax"`
		Total    string `json:"total"`
	}{
		Subtotal: t.Subtotal.StringFixed(2),
		Shipping: t.Shipping.StringFixed(2),
		Tax:      t.Tax.StringFixed(2),
		Total:    t.Total.StringFixed(2),
	})
}
