package delivery

import (
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const currentUserKey = "currentUser"

// Authenticate resolves the Bearer session token into a user and stores it
// on the context. Requests without a token proceed anonymously; guest
// checkout depends on that.
func Authenticate(userUC domain.UserUseCase, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			log.Warnf("Middleware: Invalid Authorization header format")
			c.Next()
			return
		}

		user, err := userUC.GetUserByToken(parts[1])
		if err != nil {
			log.Warnf("Middleware: Session token did not resolve to a user: %v", err)
			c.Next()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user from the context, or nil.
func CurrentUser(c *gin.Context) *domain.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*domain.User)
	if !ok {
		return nil
	}
	return user
}

func RequireAuth(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			log.Warn("Middleware: Rejected unauthenticated request to protected route")
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Status: "Fail", Message: "Authentication required"})
			return
		}
		c.Next()
	}
}

// RequireOwner gates the admin surfaces: product/category mutations, the
// full order list and order status changes.
func RequireOwner(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			log.Warn("Middleware: Rejected unauthenticated request to owner route")
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Status: "Fail", Message: "Authentication required"})
			return
		}
		if !user.IsOwner {
			log.Warnf("Middleware: User %s lacks owner role for %s %s", user.ID, c.Request.Method, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, Response{Status: "Fail", Message: "Forbidden"})
			return
		}
		c.Next()
	}
}

func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		latency := time.Since(startTime)
		statusCode := c.Writer.Status()

		entry := logger.WithFields(logrus.Fields{
			"status_code": statusCode,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"remote_ip":   c.ClientIP(),
			"latency_ms":  latency.Milliseconds(),
		})

		if len(c.Errors) > 0 {
			entry.Error(c.Errors.ByType(gin.ErrorTypePrivate).String())
		} else if statusCode >= 500 {
			entry.Error("Request completed with server error")
		} else if statusCode >= 400 {
			entry.Warn("Request completed with client error")
		} else {
			entry.Info("Request completed successfully")
		}
	}
}
