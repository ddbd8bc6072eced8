package delivery

import (
	"net/http"
	"strings"

	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	useCase domain.UserUseCase
	log     *logrus.Logger
}

func NewAuthHandler(uc domain.UserUseCase, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *AuthHandler) RegisterRoutes(router gin.IRouter, requireAuth gin.HandlerFunc) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/user", h.GetCurrentUser)
	}
	router.POST("/make-owner", requireAuth, h.MakeOwner)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for register: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.useCase.RegisterUser(&req)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Registration failed for '%s': %v", req.Email, err)
		ErrorResponse(c, statusCode, "Registration failed: "+err.Error())
		return
	}

	h.log.Infof("User registered successfully: %s", user.Email)
	SuccessResponse(c, http.StatusCreated, "User registered successfully", user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for login: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	authResp, err := h.useCase.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		h.log.Errorf("Authentication error for '%s': %v", req.Email, err)
		ErrorResponse(c, http.StatusInternalServerError, "Authentication failed")
		return
	}
	if !authResp.Authenticated {
		ErrorResponse(c, http.StatusUnauthorized, authResp.ErrorMessage)
		return
	}

	SuccessResponse(c, http.StatusOK, "Login successful", authResp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		SuccessResponse(c, http.StatusOK, "Logged out", nil)
		return
	}

	if err := h.useCase.Logout(token); err != nil {
		h.log.Errorf("Failed to delete session during logout: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Logout failed")
		return
	}

	SuccessResponse(c, http.StatusOK, "Logged out", nil)
}

// GetCurrentUser mirrors the storefront contract: an anonymous caller gets
// a 200 with null data, never an error.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		SuccessResponse(c, http.StatusOK, "No authenticated user", nil)
		return
	}
	SuccessResponse(c, http.StatusOK, "User retrieved successfully", user)
}

// MakeOwner bootstraps the first store owner.
func (h *AuthHandler) MakeOwner(c *gin.Context) {
	user := CurrentUser(c)

	promoted, err := h.useCase.MakeOwner(user.ID)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		if statusCode == http.StatusForbidden {
			ErrorResponse(c, statusCode, "Owner already exists")
			return
		}
		h.log.Errorf("Failed to promote user %s to owner: %v", user.ID, err)
		ErrorResponse(c, statusCode, "Failed to make owner: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "User promoted to owner", promoted)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}
