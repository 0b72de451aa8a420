package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse mirrors the one in internal/api/dto_models.go; defined locally
// to avoid an import cycle between middleware and api.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// AuthMiddleware provides Gin middleware for Firebase token authentication
// and role gating. The admin role is held by exactly one identity, the email
// configured in ADMIN_EMAIL.
type AuthMiddleware struct {
	firebaseAuthClient *auth.Client
	adminEmail         string
	logger             *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware instance.
func NewAuthMiddleware(fbAuthClient *auth.Client, adminEmail string, logger *zap.Logger) *AuthMiddleware {
	if fbAuthClient == nil {
		panic("Firebase Auth client is not initialized for AuthMiddleware")
	}
	if adminEmail == "" {
		panic("AuthMiddleware requires a non-empty admin email")
	}
	if logger == nil {
		panic("AuthMiddleware requires a non-nil zap.Logger instance")
	}
	return &AuthMiddleware{firebaseAuthClient: fbAuthClient, adminEmail: adminEmail, logger: logger}
}

// VerifyToken verifies a Firebase ID token from the Authorization header and,
// if valid, sets userID and userEmail in the Gin context.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header format must be 'Bearer {token}'"})
			return
		}

		token, err := m.firebaseAuthClient.VerifyIDToken(c.Request.Context(), parts[1])
		if err != nil {
			m.logger.Warn("Failed to verify Firebase ID token", zap.Error(err))
			// Generic message to the client; details stay server-side.
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired authentication token"})
			return
		}

		c.Set("userID", token.UID)
		if email, ok := token.Claims["email"].(string); ok {
			c.Set("userEmail", email)
		}

		c.Next()
	}
}

// RequireAdmin gates a route group to the configured admin identity. It must
// run after VerifyToken.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("userEmail")
		if email == "" || !strings.EqualFold(email, m.adminEmail) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "Administrator access required"})
			return
		}
		c.Next()
	}
}
