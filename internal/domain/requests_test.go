package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateOrderRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		CustomerName:    "Ana Silva",
		CustomerEmail:   "ana@example.com",
		CustomerPhone:   "85999999999",
		ShippingAddress: "Rua A, 10",
		ShippingCity:    "Fortaleza",
		ShippingState:   "CE",
		ShippingZip:     "60000000",
		PaymentMethod:   "pix",
		Total:           decimal.RequireFromString("59.80"),
		Items: []OrderItemInput{
			{ProductID: 7, ProductName: "Camiseta", Price: decimal.RequireFromString("29.90"), Quantity: 2},
		},
	}
}

func TestCreateOrderRequest_ValidPayload(t *testing.T) {
	assert.NoError(t, validCreateOrderRequest().Validate())
}

func TestCreateOrderRequest_FirstOffendingFieldWins(t *testing.T) {
	req := validCreateOrderRequest()
	req.CustomerName = "X"
	req.CustomerEmail = "not-an-email"

	err := req.Validate()
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "customerName", validationErr.Field)
}

func TestCreateOrderRequest_FieldChecks(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateOrderRequest)
		field  string
	}{
		{"short name", func(r *CreateOrderRequest) { r.CustomerName = "Al" }, "customerName"},
		{"bad email", func(r *CreateOrderRequest) { r.CustomerEmail = "ana@" }, "customerEmail"},
		{"short phone", func(r *CreateOrderRequest) { r.CustomerPhone = "123" }, "customerPhone"},
		{"blank address", func(r *CreateOrderRequest) { r.ShippingAddress = "   " }, "shippingAddress"},
		{"short city", func(r *CreateOrderRequest) { r.ShippingCity = "F" }, "shippingCity"},
		{"short state", func(r *CreateOrderRequest) { r.ShippingState = "C" }, "shippingState"},
		{"short zip", func(r *CreateOrderRequest) { r.ShippingZip = "60000" }, "shippingZip"},
		{"missing payment", func(r *CreateOrderRequest) { r.PaymentMethod = " " }, "paymentMethod"},
		{"no items", func(r *CreateOrderRequest) { r.Items = nil }, "items"},
		{"bad product id", func(r *CreateOrderRequest) { r.Items[0].ProductID = 0 }, "items"},
		{"empty product name", func(r *CreateOrderRequest) { r.Items[0].ProductName = "" }, "items"},
		{"negative price", func(r *CreateOrderRequest) { r.Items[0].Price = decimal.RequireFromString("-1") }, "items"},
		{"zero quantity", func(r *CreateOrderRequest) { r.Items[0].Quantity = 0 }, "items"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateOrderRequest()
			tc.mutate(req)

			err := req.Validate()
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}
}

func TestOrderItemInput_PriceAcceptsNumberAndString(t *testing.T) {
	var fromString OrderItemInput
	require.NoError(t, json.Unmarshal([]byte(`{"productId":7,"productName":"Camiseta","price":"29.90","quantity":2}`), &fromString))

	var fromNumber OrderItemInput
	require.NoError(t, json.Unmarshal([]byte(`{"productId":7,"productName":"Camiseta","price":29.90,"quantity":2}`), &fromNumber))

	assert.True(t, fromString.Price.Equal(fromNumber.Price))
}

func TestCreateOrderRequest_ItemsTotal(t *testing.T) {
	req := validCreateOrderRequest()
	req.Items = append(req.Items, OrderItemInput{
		ProductID: 9, ProductName: "Calça", Price: decimal.RequireFromString("89.90"), Quantity: 1,
	})

	assert.True(t, req.ItemsTotal().Equal(decimal.RequireFromString("149.70")), "got %s", req.ItemsTotal())
}

func TestCreateProductRequest_SlugValidation(t *testing.T) {
	req := &CreateProductRequest{Name: "Camiseta", Slug: "camiseta-basica-2"}
	assert.NoError(t, req.Validate())

	req.Slug = "Camiseta Básica"
	err := req.Validate()
	require.Error(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "slug", validationErr.Field)
}

func TestRegisterRequest_Validation(t *testing.T) {
	req := &RegisterRequest{Email: "ana@example.com", Password: "Secret123"}
	assert.NoError(t, req.Validate())

	req.Password = "short"
	err := req.Validate()
	require.Error(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "password", validationErr.Field)
}
