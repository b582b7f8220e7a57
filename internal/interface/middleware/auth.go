package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noteplus/noteplus-api/pkg/helpers"
	"github.com/noteplus/noteplus-api/pkg/response"
)

const (
	// TokenHeader is the header clients send their token in.
	TokenHeader = "auth-token"
	// CtxUserIDKey is the gin context key holding the resolved identity.
	CtxUserIDKey = "userID"
)

// authFailedMsg is deliberately the same for missing and invalid tokens.
const authFailedMsg = "please authenticate using a valid token"

// Auth reads the auth-token header, verifies it, and injects the user id into
// the context. No store access happens before the token checks out.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			response.AbortError[any](c, http.StatusUnauthorized, authFailedMsg, nil)
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.AbortError[any](c, http.StatusUnauthorized, authFailedMsg, nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
