package cart

import (
	"errors"

	"storefront/internal/domain"
)

// CheckoutInfo carries the shipping, contact and payment fields collected
// at checkout.
type CheckoutInfo struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	ShippingCity    string
	ShippingState   string
	ShippingZip     string
	PaymentMethod   string
	Notes           string
}

// BuildCreateOrderRequest serializes the cart into an order-creation
// payload: items in cart order, each line snapshotting product id, name,
// unit price and quantity, with the total derived from the cart itself.
func BuildCreateOrderRequest(store *Store, info CheckoutInfo) (*domain.CreateOrderRequest, error) {
	items := store.Items()
	if len(items) == 0 {
		return nil, errors.New("cannot check out an empty cart")
	}

	req := &domain.CreateOrderRequest{
		CustomerName:    info.CustomerName,
		CustomerEmail:   info.CustomerEmail,
		CustomerPhone:   info.CustomerPhone,
		ShippingAddress: info.ShippingAddress,
		ShippingCity:    info.ShippingCity,
		ShippingState:   info.ShippingState,
		ShippingZip:     info.ShippingZip,
		PaymentMethod:   info.PaymentMethod,
		Notes:           info.Notes,
		Total:           store.Total(),
	}
	for _, item := range items {
		req.Items = append(req.Items, domain.OrderItemInput{
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}
	return req, nil
}
