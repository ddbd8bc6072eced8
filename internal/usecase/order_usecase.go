package usecase

import (
	"errors"
	"fmt"

	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
)

var _ domain.OrderUseCase = (*orderUseCase)(nil)

type orderUseCase struct {
	orderRepo   domain.OrderRepository
	productRepo domain.ProductRepository
	// verifyPrices cross-checks submitted item prices against the product
	// table. Off by default: the storefront historically trusted the
	// client-declared prices.
	verifyPrices bool
	log          *logrus.Logger
}

func NewOrderUseCase(orderRepo domain.OrderRepository, productRepo domain.ProductRepository, verifyPrices bool, logger *logrus.Logger) domain.OrderUseCase {
	return &orderUseCase{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		verifyPrices: verifyPrices,
		log:          logger,
	}
}

func (uc *orderUseCase) CreateOrder(req *domain.CreateOrderRequest, userID *string) (*domain.Order, error) {
	if err := req.Validate(); err != nil {
		uc.log.Warnf("Use Case: Order validation failed: %v", err)
		return nil, err
	}

	// The declared total must equal the sum of the submitted lines. The
	// lines themselves are still client-declared unless verifyPrices is on.
	itemsTotal := req.ItemsTotal()
	if !req.Total.Equal(itemsTotal) {
		uc.log.Warnf("Use Case: Declared total %s does not match items total %s", req.Total, itemsTotal)
		return nil, domain.NewValidationError("total", fmt.Sprintf("total %s does not match sum of item prices %s", req.Total, itemsTotal))
	}

	if uc.verifyPrices {
		for i, item := range req.Items {
			product, err := uc.productRepo.GetProductByID(item.ProductID)
			if err != nil {
				uc.log.Warnf("Use Case: Price verification failed, product %d not found: %v", item.ProductID, err)
				return nil, domain.NewValidationError("items", fmt.Sprintf("items[%d]: product %d not found", i, item.ProductID))
			}
			if !product.Price.Equal(item.Price) {
				uc.log.Warnf("Use Case: Price mismatch for product %d: submitted %s, current %s", item.ProductID, item.Price, product.Price)
				return nil, domain.NewValidationError("items", fmt.Sprintf("items[%d]: price %s does not match current product price %s", i, item.Price, product.Price))
			}
		}
	}

	order := &domain.Order{
		UserID:          userID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		ShippingCity:    req.ShippingCity,
		ShippingState:   req.ShippingState,
		ShippingZip:     req.ShippingZip,
		Total:           req.Total,
		// Orders always start pending, whatever the client sent.
		Status:        domain.StatusPending,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}

	uc.log.Infof("Use Case: Attempting to save order for customer '%s' with %d items.", order.CustomerName, len(order.Items))
	createdOrder, err := uc.orderRepo.CreateOrder(order)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create order for customer '%s': %v", order.CustomerName, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Order created successfully with ID %d", createdOrder.ID)
	return createdOrder, nil
}

func (uc *orderUseCase) GetOrderByID(id int) (*domain.Order, error) {
	if id <= 0 {
		return nil, errors.New("invalid order ID")
	}
	uc.log.Infof("Use Case: Attempting to get order with ID %d", id)
	order, err := uc.orderRepo.GetOrderByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get order ID %d: %v", id, err)
		return nil, err
	}
	return order, nil
}

func (uc *orderUseCase) ListOrders(limit, offset int) ([]domain.Order, error) {
	uc.log.Infof("Use Case: Attempting to list orders (limit: %d, offset: %d)", limit, offset)
	orders, err := uc.orderRepo.ListOrders(limit, offset)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list orders: %v", err)
		return nil, fmt.Errorf("could not retrieve orders: %w", err)
	}
	return orders, nil
}

func (uc *orderUseCase) UpdateOrderStatus(id int, status domain.OrderStatus) (*domain.Order, error) {
	if id <= 0 {
		return nil, errors.New("invalid order ID for status update")
	}
	if !domain.IsValidStatus(status) {
		return nil, domain.NewValidationError("status", "invalid order status: "+string(status))
	}

	currentOrder, err := uc.orderRepo.GetOrderByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: Could not get current order %d for status update check: %v", id, err)
		return nil, err
	}

	if !currentOrder.Status.CanTransitionTo(status) {
		uc.log.Warnf("Use Case: Rejected status transition for order %d: '%s' -> '%s'", id, currentOrder.Status, status)
		return nil, &domain.InvalidTransitionError{From: currentOrder.Status, To: status}
	}

	uc.log.Infof("Use Case: Updating status for order ID %d from '%s' to '%s'", id, currentOrder.Status, status)
	updatedOrder, err := uc.orderRepo.UpdateOrderStatus(id, status)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update status for order ID %d: %v", id, err)
		return nil, err
	}
	return updatedOrder, nil
}

func (uc *orderUseCase) DeleteOrder(id int) error {
	if id <= 0 {
		return errors.New("invalid order ID")
	}
	uc.log.Infof("Use Case: Attempting to delete order with ID %d", id)
	if err := uc.orderRepo.DeleteOrder(id); err != nil {
		uc.log.Errorf("Use Case: Repository failed to delete order ID %d: %v", id, err)
		return err
	}
	return nil
}
