package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// statusTransitions defines the only allowed forward moves for an order.
// Delivered and cancelled are terminal.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func IsValidStatus(status OrderStatus) bool {
	_, ok := statusTransitions[status]
	return ok
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID              int             `json:"id"`
	UserID          *string         `json:"userId"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerPhone   string          `json:"customerPhone"`
	ShippingAddress string          `json:"shippingAddress"`
	ShippingCity    string          `json:"shippingCity"`
	ShippingState   string          `json:"shippingState"`
	ShippingZip     string          `json:"shippingZip"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	PaymentMethod   string          `json:"paymentMethod"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	Items           []OrderItem     `json:"items"`
}

// OrderItem snapshots one product line at order time. Later edits to the
// product must not alter it.
type OrderItem struct {
	ID          int             `json:"id"`
	OrderID     int             `json:"orderId"`
	ProductID   int             `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

type OrderRepository interface {
	CreateOrder(order *Order) (*Order, error)
	GetOrderByID(id int) (*Order, error)
	ListOrders(limit, offset int) ([]Order, error)
	UpdateOrderStatus(id int, status OrderStatus) (*Order, error)
	DeleteOrder(id int) error
}

type OrderUseCase interface {
	CreateOrder(req *CreateOrderRequest, userID *string) (*Order, error)
	GetOrderByID(id int) (*Order, error)
	ListOrders(limit, offset int) ([]Order, error)
	UpdateOrderStatus(id int, status OrderStatus) (*Order, error)
	DeleteOrder(id int) error
}
