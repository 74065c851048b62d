package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marcos-nsantos/imgpipe/internal/pkg/httputil"
)

const (
	UserIDKey    = httputil.UserIDKey
	BearerPrefix = "Bearer "
)

type TokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, error)
}

type AuthMiddleware struct {
	validator TokenValidator
}

func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// uploader ID under UserIDKey.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.ErrorWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "authorization header required")
			c.Abort()
			return
		}

		token, ok := strings.CutPrefix(authHeader, BearerPrefix)
		if !ok || token == "" {
			httputil.ErrorWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid authorization format")
			c.Abort()
			return
		}

		userID, err := m.validator.ValidateAccessToken(token)
		if err != nil {
			httputil.ErrorWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
