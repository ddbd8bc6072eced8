package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Description   string           `json:"description,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	ImageURL      string           `json:"imageUrl,omitempty"`
	Images        []string         `json:"images,omitempty"`
	CategoryID    int              `json:"categoryId,omitempty"`
	// Stock is nil for products with unlimited availability.
	Stock     *int      `json:"stock"`
	Featured  bool      `json:"featured"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

type ProductRepository interface {
	CreateProduct(product *Product) (*Product, error)
	GetProductByID(id int) (*Product, error)
	GetProductBySlug(slug string) (*Product, error)
	UpdateProduct(id int, updates map[string]interface{}) (*Product, error)
	DeleteProduct(id int) error
	ListProducts(onlyActive bool, limit, offset int) ([]Product, error)
	ListProductsByCategory(categoryID, limit, offset int) ([]Product, error)
	ListFeaturedProducts(limit int) ([]Product, error)
}

type ProductUseCase interface {
	CreateProduct(req *CreateProductRequest) (*Product, error)
	GetProduct(idOrSlug string) (*Product, error)
	UpdateProduct(id int, updates map[string]interface{}) (*Product, error)
	DeleteProduct(id int) error
	ListProducts(includeInactive bool, limit, offset int) ([]Product, error)
	ListProductsByCategory(categoryID, limit, offset int) ([]Product, error)
	ListFeaturedProducts(limit int) ([]Product, error)
}
