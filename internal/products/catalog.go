package products

import (
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// CatalogEntry is one product of the fixed seed catalog.
type CatalogEntry struct {
	Name     string
	Price    int64
	Image    string
	Category enums.ProductCategory
}

// SeedCatalog is inserted at startup, in this order, when absent.
var SeedCatalog = []CatalogEntry{
	{Name: "Luxury Perfume", Price: 1999, Image: "perfume.jpeg", Category: enums.ProductCategoryBeauty},
	{Name: "Stylish Sunglasses", Price: 799, Image: "sunglasses.jpeg", Category: enums.ProductCategoryFashion},
	{Name: "Casual Sneakers", Price: 2499, Image: "sneakers.jpeg", Category: enums.ProductCategoryFashion},
	{Name: "Smart Watch", Price: 3499, Image: "smartwatch.jpeg", Category: enums.ProductCategoryElectronics},
	{Name: "Wireless Headphones", Price: 2199, Image: "headphones.jpeg", Category: enums.ProductCategoryElectronics},
	{Name: "Leather Wallet", Price: 999, Image: "wallet.jpeg", Category: enums.ProductCategoryAccessories},
	{Name: "Digital Camera", Price: 5999, Image: "camera.jpeg", Category: enums.ProductCategoryElectronics},
	{Name: "Wireless Mouse", Price: 499, Image: "mouse.jpeg", Category: enums.ProductCategoryElectronics},
	{Name: "Desk Lamp", Price: 599, Image: "lamp.jpeg", Category: enums.ProductCategoryHome},
}

func (e CatalogEntry) toModel() *models.Product {
	return &models.Product{
		Name:     e.Name,
		Price:    e.Price,
		Image:    e.Image,
		Category: e.Category,
	}
}
