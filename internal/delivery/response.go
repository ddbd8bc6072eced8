package delivery

import (
	"errors"
	"net/http"
	"strings"

	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status  string      `json:"Status"`
	Message string      `json:"Message"`
	Data    interface{} `json:"Data,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Status:  "Success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Status:  "Fail",
		Message: message,
	})
}

func mapErrorToStatus(err error) int {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	var transitionErr *domain.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		return http.StatusBadRequest
	}
	if errors.Is(err, domain.ErrForbidden) {
		return http.StatusForbidden
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "not found") {
		return http.StatusNotFound
	}
	if strings.Contains(errMsg, "already exists") || strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint") {
		return http.StatusConflict
	}
	if strings.Contains(errMsg, "invalid") || strings.Contains(errMsg, "cannot be empty") || strings.Contains(errMsg, "must be") ||
		strings.Contains(errMsg, "cannot be negative") || strings.Contains(errMsg, "constraint violation") ||
		strings.Contains(errMsg, "does not exist") || strings.Contains(errMsg, "does not match") ||
		strings.Contains(errMsg, "is required") || strings.Contains(errMsg, "at least") {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
