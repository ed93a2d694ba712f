package enums

import (
	"fmt"
	"strings"
)

// ProductCategory groups catalog entries.
type ProductCategory string

const (
	ProductCategoryBeauty      ProductCategory = "beauty"
	ProductCategoryFashion     ProductCategory = "fashion"
	ProductCategoryElectronics ProductCategory = "electronics"
	ProductCategoryAccessories ProductCategory = "accessories"
	ProductCategoryHome        ProductCategory = "home"
)

var validProductCategories = []ProductCategory{
	ProductCategoryBeauty,
	ProductCategoryFashion,
	ProductCategoryElectronics,
	ProductCategoryAccessories,
	ProductCategoryHome,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory, ignoring case.
func ParseProductCategory(value string) (ProductCategory, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validProductCategories {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
