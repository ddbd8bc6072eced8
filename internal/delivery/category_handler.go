package delivery

import (
	"net/http"
	"strconv"

	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	useCase domain.CategoryUseCase
	log     *logrus.Logger
}

func NewCategoryHandler(uc domain.CategoryUseCase, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CategoryHandler) RegisterRoutes(router gin.IRouter, requireOwner gin.HandlerFunc) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.GET("/:idOrSlug", h.GetCategory)
		categories.POST("", requireOwner, h.CreateCategory)
		categories.PATCH("/:idOrSlug", requireOwner, h.UpdateCategory)
		categories.DELETE("/:idOrSlug", requireOwner, h.DeleteCategory)
	}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req domain.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for create category: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	createdCategory, err := h.useCase.CreateCategory(&req)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to create category '%s': %v", req.Name, err)
		ErrorResponse(c, statusCode, "Failed to create category: "+err.Error())
		return
	}

	h.log.Infof("Category created successfully: ID %d, Name %s", createdCategory.ID, createdCategory.Name)
	SuccessResponse(c, http.StatusCreated, "Category created successfully", createdCategory)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	idOrSlug := c.Param("idOrSlug")

	category, err := h.useCase.GetCategory(idOrSlug)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to get category '%s': %v", idOrSlug, err)
		ErrorResponse(c, statusCode, "Failed to retrieve category: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Category retrieved successfully", category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	idStr := c.Param("idOrSlug")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid category ID parameter for update: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		h.log.Errorf("Failed to bind JSON for update category ID %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(updates) == 0 {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: no fields provided for update")
		return
	}

	updatedCategory, err := h.useCase.UpdateCategory(id, updates)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to update category ID %d: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to update category: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Category updated successfully", updatedCategory)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	idStr := c.Param("idOrSlug")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	if err := h.useCase.DeleteCategory(id); err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to delete category ID %d: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to delete category: "+err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.useCase.ListCategories()
	if err != nil {
		h.log.Errorf("Failed to list categories: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}

	SuccessResponse(c, http.StatusOK, "Categories retrieved successfully", categories)
}
