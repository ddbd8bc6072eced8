package usecase

import (
	"errors"
	"io"
	"testing"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// stubOrderRepo records created orders and serves canned reads.
type stubOrderRepo struct {
	created []*domain.Order
	orders  map[int]*domain.Order
	nextID  int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: map[int]*domain.Order{}, nextID: 1}
}

func (r *stubOrderRepo) CreateOrder(order *domain.Order) (*domain.Order, error) {
	saved := *order
	saved.ID = r.nextID
	r.nextID++
	r.created = append(r.created, &saved)
	r.orders[saved.ID] = &saved
	return &saved, nil
}

func (r *stubOrderRepo) GetOrderByID(id int) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, errors.New("order not found")
	}
	return order, nil
}

func (r *stubOrderRepo) ListOrders(limit, offset int) ([]domain.Order, error) {
	var out []domain.Order
	for _, order := range r.created {
		out = append(out, *order)
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateOrderStatus(id int, status domain.OrderStatus) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, errors.New("order not found")
	}
	order.Status = status
	return order, nil
}

func (r *stubOrderRepo) DeleteOrder(id int) error {
	delete(r.orders, id)
	return nil
}

type stubProductRepo struct {
	products map[int]*domain.Product
}

func (r *stubProductRepo) CreateProduct(p *domain.Product) (*domain.Product, error) { return p, nil }

func (r *stubProductRepo) GetProductByID(id int) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, errors.New("product not found")
	}
	return product, nil
}

func (r *stubProductRepo) GetProductBySlug(slug string) (*domain.Product, error) {
	return nil, errors.New("product not found")
}

func (r *stubProductRepo) UpdateProduct(id int, updates map[string]interface{}) (*domain.Product, error) {
	return nil, errors.New("not implemented")
}

func (r *stubProductRepo) DeleteProduct(id int) error { return nil }

func (r *stubProductRepo) ListProducts(onlyActive bool, limit, offset int) ([]domain.Product, error) {
	return nil, nil
}

func (r *stubProductRepo) ListProductsByCategory(categoryID, limit, offset int) ([]domain.Product, error) {
	return nil, nil
}

func (r *stubProductRepo) ListFeaturedProducts(limit int) ([]domain.Product, error) {
	return nil, nil
}

func validOrderRequest() *domain.CreateOrderRequest {
	return &domain.CreateOrderRequest{
		CustomerName:    "Ana Silva",
		CustomerEmail:   "ana@example.com",
		CustomerPhone:   "85999999999",
		ShippingAddress: "Rua A, 10",
		ShippingCity:    "Fortaleza",
		ShippingState:   "CE",
		ShippingZip:     "60000000",
		PaymentMethod:   "pix",
		Total:           decimal.RequireFromString("59.80"),
		Items: []domain.OrderItemInput{
			{ProductID: 7, ProductName: "Camiseta", Price: decimal.RequireFromString("29.90"), Quantity: 2},
		},
	}
}

func TestCreateOrder_PersistsSnapshotLines(t *testing.T) {
	orderRepo := newStubOrderRepo()
	uc := NewOrderUseCase(orderRepo, &stubProductRepo{}, false, testLogger())

	req := validOrderRequest()
	req.Items = append(req.Items, domain.OrderItemInput{
		ProductID: 9, ProductName: "Calça", Price: decimal.RequireFromString("89.90"), Quantity: 1,
	})
	req.Total = decimal.RequireFromString("149.70")

	order, err := uc.CreateOrder(req, nil)
	require.NoError(t, err)
	require.Len(t, orderRepo.created, 1)

	require.Len(t, order.Items, 2)
	for i, item := range order.Items {
		assert.Equal(t, req.Items[i].ProductID, item.ProductID)
		assert.Equal(t, req.Items[i].ProductName, item.ProductName)
		assert.True(t, req.Items[i].Price.Equal(item.Price))
		assert.Equal(t, req.Items[i].Quantity, item.Quantity)
	}
	assert.True(t, order.Total.Equal(req.Total))
	assert.Equal(t, "Ana Silva", order.CustomerName)
	assert.Nil(t, order.UserID)
}

func TestCreateOrder_AttachesUserID(t *testing.T) {
	orderRepo := newStubOrderRepo()
	uc := NewOrderUseCase(orderRepo, &stubProductRepo{}, false, testLogger())

	userID := "3f2c1d0e-0000-0000-0000-000000000000"
	order, err := uc.CreateOrder(validOrderRequest(), &userID)
	require.NoError(t, err)
	require.NotNil(t, order.UserID)
	assert.Equal(t, userID, *order.UserID)
}

func TestCreateOrder_InvalidPayloadIsNotPersisted(t *testing.T) {
	orderRepo := newStubOrderRepo()
	uc := NewOrderUseCase(orderRepo, &stubProductRepo{}, false, testLogger())

	req := validOrderRequest()
	req.Items = nil

	_, err := uc.CreateOrder(req, nil)
	require.Error(t, err)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "items", validationErr.Field)
	assert.Empty(t, orderRepo.created)
}

func TestCreateOrder_StatusIsAlwaysPending(t *testing.T) {
	orderRepo := newStubOrderRepo()
	uc := NewOrderUseCase(orderRepo, &stubProductRepo{}, false, testLogger())

	req := validOrderRequest()
	req.Status = "delivered"

	order, err := uc.CreateOrder(req, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, order.Status)
}

func TestCreateOrder_TotalMustMatchItems(t *testing.T) {
	orderRepo := newStubOrderRepo()
	uc := NewOrderUseCase(orderRepo, &stubProductRepo{}, false, testLogger())

	req := validOrderRequest()
	req.Total = decimal.RequireFromString("10.00")

	_, err := uc.CreateOrder(req, nil)
	require.Error(t, err)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "total", validationErr.Field)
	assert.Empty(t, orderRepo.created)
}

func TestCreateOrder_PriceVerificationOff(t *testing.T) {
	orderRepo := newStubOrderRepo()
	// Empty catalog: with verification off the order still goes through.
	uc := NewOrderUseCase(orderRepo, &stubProductRepo{}, false, testLogger())

	_, err := uc.CreateOrder(validOrderRequest(), nil)
	assert.NoError(t, err)
}

func TestCreateOrder_PriceVerificationOn(t *testing.T) {
	productRepo := &stubProductRepo{products: map[int]*domain.Product{
		7: {ID: 7, Name: "Camiseta", Price: decimal.RequireFromString("29.90"), Active: true},
	}}

	t.Run("matching price passes", func(t *testing.T) {
		orderRepo := newStubOrderRepo()
		uc := NewOrderUseCase(orderRepo, productRepo, true, testLogger())

		_, err := uc.CreateOrder(validOrderRequest(), nil)
		assert.NoError(t, err)
	})

	t.Run("stale price is rejected", func(t *testing.T) {
		orderRepo := newStubOrderRepo()
		uc := NewOrderUseCase(orderRepo, productRepo, true, testLogger())

		req := validOrderRequest()
		req.Items[0].Price = decimal.RequireFromString("19.90")
		req.Total = decimal.RequireFromString("39.80")

		_, err := uc.CreateOrder(req, nil)
		require.Error(t, err)
		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "items", validationErr.Field)
		assert.Empty(t, orderRepo.created)
	})

	t.Run("unknown product is rejected", func(t *testing.T) {
		orderRepo := newStubOrderRepo()
		uc := NewOrderUseCase(orderRepo, productRepo, true, testLogger())

		req := validOrderRequest()
		req.Items[0].ProductID = 999

		_, err := uc.CreateOrder(req, nil)
		require.Error(t, err)
		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Empty(t, orderRepo.created)
	})
}

func TestUpdateOrderStatus_AllowedTransition(t *testing.T) {
	orderRepo := newStubOrderRepo()
	uc := NewOrderUseCase(orderRepo, &stubProductRepo{}, false, testLogger())

	created, err := uc.CreateOrder(validOrderRequest(), nil)
	require.NoError(t, err)

	updated, err := uc.UpdateOrderStatus(created.ID, domain.StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, updated.Status)
}

func TestUpdateOrderStatus_RejectsInvalidTransition(t *testing.T) {
	orderRepo := newStubOrderRepo()
	uc := NewOrderUseCase(orderRepo, &stubProductRepo{}, false, testLogger())

	created, err := uc.CreateOrder(validOrderRequest(), nil)
	require.NoError(t, err)

	// pending may not jump straight to shipped.
	_, err = uc.UpdateOrderStatus(created.ID, domain.StatusShipped)
	require.Error(t, err)

	var transitionErr *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, domain.StatusPending, transitionErr.From)
	assert.Equal(t, domain.StatusShipped, transitionErr.To)
}

func TestUpdateOrderStatus_TerminalStatesAreFinal(t *testing.T) {
	orderRepo := newStubOrderRepo()
	uc := NewOrderUseCase(orderRepo, &stubProductRepo{}, false, testLogger())

	created, err := uc.CreateOrder(validOrderRequest(), nil)
	require.NoError(t, err)

	_, err = uc.UpdateOrderStatus(created.ID, domain.StatusCancelled)
	require.NoError(t, err)

	for _, next := range []domain.OrderStatus{domain.StatusPending, domain.StatusProcessing, domain.StatusShipped, domain.StatusDelivered} {
		_, err = uc.UpdateOrderStatus(created.ID, next)
		var transitionErr *domain.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr, "cancelled -> '%s' must be rejected", next)
	}
}

func TestUpdateOrderStatus_RejectsUnknownStatus(t *testing.T) {
	orderRepo := newStubOrderRepo()
	uc := NewOrderUseCase(orderRepo, &stubProductRepo{}, false, testLogger())

	created, err := uc.CreateOrder(validOrderRequest(), nil)
	require.NoError(t, err)

	_, err = uc.UpdateOrderStatus(created.ID, "completed")
	require.Error(t, err)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "status", validationErr.Field)
}
