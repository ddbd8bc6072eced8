package delivery

import (
	"net/http"
	"strconv"

	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type OrderHandler struct {
	useCase domain.OrderUseCase
	log     *logrus.Logger
}

func NewOrderHandler(uc domain.OrderUseCase, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *OrderHandler) RegisterRoutes(router gin.IRouter, requireOwner gin.HandlerFunc) {
	orders := router.Group("/orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", requireOwner, h.ListOrders)
		orders.GET("/:id", h.GetOrderByID)
		orders.PATCH("/:id", requireOwner, h.UpdateOrderStatus)
		orders.DELETE("/:id", requireOwner, h.DeleteOrder)
	}
}

// CreateOrder accepts a checkout payload. Authentication is optional: an
// authenticated caller gets the order attached to their account, anyone
// else checks out as a guest.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req domain.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for create order: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var userID *string
	if user := CurrentUser(c); user != nil {
		userID = &user.ID
	}

	createdOrder, err := h.useCase.CreateOrder(&req, userID)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		if statusCode >= 500 {
			h.log.Errorf("Failed to create order for customer '%s': %v", req.CustomerName, err)
			ErrorResponse(c, statusCode, "Failed to create order")
			return
		}
		h.log.Warnf("Rejected order for customer '%s': %v", req.CustomerName, err)
		ErrorResponse(c, statusCode, err.Error())
		return
	}

	h.log.Infof("Order %d created successfully", createdOrder.ID)
	SuccessResponse(c, http.StatusCreated, "Order created successfully", createdOrder)
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid order ID parameter: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	user := CurrentUser(c)
	if user == nil {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	order, err := h.useCase.GetOrderByID(id)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to get order by ID %d: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to retrieve order: "+err.Error())
		return
	}

	// Owners see every order; everyone else only their own.
	if !user.IsOwner && (order.UserID == nil || *order.UserID != user.ID) {
		h.log.Warnf("Authorization failed: User %s attempted to access order %d", user.ID, id)
		ErrorResponse(c, http.StatusForbidden, "You are not authorized to view this order")
		return
	}

	SuccessResponse(c, http.StatusOK, "Order retrieved successfully", order)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	limit, offset := parsePagination(c, h.log)

	orders, err := h.useCase.ListOrders(limit, offset)
	if err != nil {
		h.log.Errorf("Failed to list orders: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	SuccessResponse(c, http.StatusOK, "Orders retrieved successfully", orders)
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid order ID parameter for update: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var updateRequest struct {
		Status *domain.OrderStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&updateRequest); err != nil {
		h.log.Warnf("Failed to bind JSON for update order %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if updateRequest.Status == nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: 'status' field is required")
		return
	}

	updatedOrder, err := h.useCase.UpdateOrderStatus(id, *updateRequest.Status)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to update status for order ID %d: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to update order status: "+err.Error())
		return
	}

	h.log.Infof("Order status updated successfully for ID %d to '%s'", updatedOrder.ID, updatedOrder.Status)
	SuccessResponse(c, http.StatusOK, "Order status updated successfully", updatedOrder)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	if err := h.useCase.DeleteOrder(id); err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to delete order ID %d: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to delete order: "+err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

func parsePagination(c *gin.Context, log *logrus.Logger) (int, int) {
	limitStr := c.DefaultQuery("limit", "20")
	offsetStr := c.DefaultQuery("offset", "0")

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 0 {
		log.Warnf("Invalid limit parameter '%s', using default 20", limitStr)
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	offset, err := strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		log.Warnf("Invalid offset parameter '%s', using default 0", offsetStr)
		offset = 0
	}

	return limit, offset
}
