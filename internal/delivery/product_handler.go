package delivery

import (
	"net/http"
	"strconv"

	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ProductHandler struct {
	useCase domain.ProductUseCase
	log     *logrus.Logger
}

func NewProductHandler(uc domain.ProductUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter, requireOwner gin.HandlerFunc) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/featured", h.ListFeaturedProducts)
		products.GET("/:idOrSlug", h.GetProduct)
		products.POST("", requireOwner, h.CreateProduct)
		products.PATCH("/:idOrSlug", requireOwner, h.UpdateProduct)
		products.DELETE("/:idOrSlug", requireOwner, h.DeleteProduct)
	}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req domain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for create product: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	createdProduct, err := h.useCase.CreateProduct(&req)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to create product '%s': %v", req.Name, err)
		ErrorResponse(c, statusCode, "Failed to create product: "+err.Error())
		return
	}

	h.log.Infof("Product created successfully: ID %d, Name %s", createdProduct.ID, createdProduct.Name)
	SuccessResponse(c, http.StatusCreated, "Product created successfully", createdProduct)
}

// GetProduct accepts a numeric id or a slug in the path, matching the
// storefront's deep links.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	idOrSlug := c.Param("idOrSlug")

	product, err := h.useCase.GetProduct(idOrSlug)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to get product '%s': %v", idOrSlug, err)
		ErrorResponse(c, statusCode, "Failed to retrieve product: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Product retrieved successfully", product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	idStr := c.Param("idOrSlug")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid product ID parameter for update: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		h.log.Errorf("Failed to bind JSON for update product ID %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(updates) == 0 {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: no fields provided for update")
		return
	}

	updatedProduct, err := h.useCase.UpdateProduct(id, updates)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to update product ID %d: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to update product: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Product updated successfully", updatedProduct)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	idStr := c.Param("idOrSlug")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	if err := h.useCase.DeleteProduct(id); err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to delete product ID %d: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to delete product: "+err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	limit, offset := parsePagination(c, h.log)

	if c.Query("featured") == "true" {
		h.ListFeaturedProducts(c)
		return
	}

	// Inactive products stay hidden from the storefront; only the owner may
	// request the full catalog.
	includeInactive := false
	if c.Query("includeInactive") == "true" {
		user := CurrentUser(c)
		if user == nil || !user.IsOwner {
			ErrorResponse(c, http.StatusForbidden, "Forbidden")
			return
		}
		includeInactive = true
	}

	var products []domain.Product
	var err error
	if categoryIDStr := c.Query("categoryId"); categoryIDStr != "" {
		categoryID, convErr := strconv.Atoi(categoryIDStr)
		if convErr != nil || categoryID <= 0 {
			ErrorResponse(c, http.StatusBadRequest, "Invalid categoryId parameter")
			return
		}
		products, err = h.useCase.ListProductsByCategory(categoryID, limit, offset)
	} else {
		products, err = h.useCase.ListProducts(includeInactive, limit, offset)
	}
	if err != nil {
		h.log.Errorf("Failed to list products: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	SuccessResponse(c, http.StatusOK, "Products retrieved successfully", products)
}

func (h *ProductHandler) ListFeaturedProducts(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 10
	}

	products, err := h.useCase.ListFeaturedProducts(limit)
	if err != nil {
		h.log.Errorf("Failed to list featured products: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve featured products")
		return
	}

	SuccessResponse(c, http.StatusOK, "Featured products retrieved successfully", products)
}
