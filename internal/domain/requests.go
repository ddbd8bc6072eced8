package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderItemInput is one cart line as submitted at checkout. Price accepts
// both numeric and numeric-string JSON values.
type OrderItemInput struct {
	ProductID   int             `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

type CreateOrderRequest struct {
	CustomerName    string           `json:"customerName"`
	CustomerEmail   string           `json:"customerEmail"`
	CustomerPhone   string           `json:"customerPhone"`
	ShippingAddress string           `json:"shippingAddress"`
	ShippingCity    string           `json:"shippingCity"`
	ShippingState   string           `json:"shippingState"`
	ShippingZip     string           `json:"shippingZip"`
	PaymentMethod   string           `json:"paymentMethod"`
	Notes           string           `json:"notes,omitempty"`
	Total           decimal.Decimal  `json:"total"`
	Status          string           `json:"status,omitempty"`
	Items           []OrderItemInput `json:"items"`
}

// Validate checks fields in declaration order and reports the first
// offending one.
func (r *CreateOrderRequest) Validate() error {
	if len(strings.TrimSpace(r.CustomerName)) < 3 {
		return NewValidationError("customerName", "customerName must be at least 3 characters")
	}
	if !isValidEmail(r.CustomerEmail) {
		return NewValidationError("customerEmail", "customerEmail must be a valid email address")
	}
	if len(strings.TrimSpace(r.CustomerPhone)) < 10 {
		return NewValidationError("customerPhone", "customerPhone must be at least 10 characters")
	}
	if strings.TrimSpace(r.ShippingAddress) == "" {
		return NewValidationError("shippingAddress", "shippingAddress is required")
	}
	if len(strings.TrimSpace(r.ShippingCity)) < 2 {
		return NewValidationError("shippingCity", "shippingCity must be at least 2 characters")
	}
	if len(strings.TrimSpace(r.ShippingState)) < 2 {
		return NewValidationError("shippingState", "shippingState must be at least 2 characters")
	}
	if len(strings.TrimSpace(r.ShippingZip)) < 8 {
		return NewValidationError("shippingZip", "shippingZip must be at least 8 characters")
	}
	if strings.TrimSpace(r.PaymentMethod) == "" {
		return NewValidationError("paymentMethod", "paymentMethod is required")
	}
	if r.Total.IsNegative() {
		return NewValidationError("total", "total cannot be negative")
	}
	if len(r.Items) == 0 {
		return NewValidationError("items", "Order must have at least one item")
	}
	for i, item := range r.Items {
		if item.ProductID <= 0 {
			return NewValidationError("items", fmt.Sprintf("items[%d].productId must be a positive integer", i))
		}
		if strings.TrimSpace(item.ProductName) == "" {
			return NewValidationError("items", fmt.Sprintf("items[%d].productName is required", i))
		}
		if item.Price.IsNegative() {
			return NewValidationError("items", fmt.Sprintf("items[%d].price cannot be negative", i))
		}
		if item.Quantity < 1 {
			return NewValidationError("items", fmt.Sprintf("items[%d].quantity must be at least 1", i))
		}
	}
	return nil
}

// ItemsTotal derives the order total from the submitted lines.
func (r *CreateOrderRequest) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

func (r *CreateCategoryRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return NewValidationError("name", "name is required")
	}
	if !isValidSlug(r.Slug) {
		return NewValidationError("slug", "slug must contain only lowercase letters, digits and hyphens")
	}
	return nil
}

type CreateProductRequest struct {
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Description   string           `json:"description,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	ImageURL      string           `json:"imageUrl,omitempty"`
	Images        []string         `json:"images,omitempty"`
	CategoryID    int              `json:"categoryId,omitempty"`
	Stock         *int             `json:"stock"`
	Featured      bool             `json:"featured"`
	Active        *bool            `json:"active"`
}

func (r *CreateProductRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return NewValidationError("name", "name is required")
	}
	if !isValidSlug(r.Slug) {
		return NewValidationError("slug", "slug must contain only lowercase letters, digits and hyphens")
	}
	if r.Price.IsNegative() {
		return NewValidationError("price", "price cannot be negative")
	}
	if r.OriginalPrice != nil && r.OriginalPrice.IsNegative() {
		return NewValidationError("originalPrice", "originalPrice cannot be negative")
	}
	if r.Stock != nil && *r.Stock < 0 {
		return NewValidationError("stock", "stock cannot be negative")
	}
	return nil
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	if !isValidEmail(strings.ToLower(strings.TrimSpace(r.Email))) {
		return NewValidationError("email", "email must be a valid email address")
	}
	if len(r.Password) < 8 {
		return NewValidationError("password", "password must be at least 8 characters long")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
