// api/middleware/auth_middleware.go
package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Annany2002/nebula-connector/config"
	"github.com/Annany2002/nebula-connector/internal/auth"
)

// ClientIDKey is the context key holding the authenticated client id.
const ClientIDKey = "clientId"

// AuthMiddleware creates a gin middleware for checking JWT authentication.
// Failures are attached to the context and rendered by ErrorHandler.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			_ = c.Error(fmt.Errorf("%w: authorization header required", auth.ErrUnauthorized))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			_ = c.Error(fmt.Errorf("%w: authorization header format must be Bearer {token}", auth.ErrTokenMalformed))
			c.Abort()
			return
		}

		clientID, err := auth.ValidateJWT(parts[1], cfg.JWTSecret)
		if err != nil {
			customLog.Printf("AuthMiddleware: Token validation failed: %v", err)
			if !errors.Is(err, auth.ErrTokenExpired) && !errors.Is(err, auth.ErrTokenMalformed) {
				err = fmt.Errorf("%w: %v", auth.ErrTokenInvalid, err)
			}
			_ = c.Error(err)
			c.Abort()
			return
		}

		customLog.Printf("AuthMiddleware: Token validated successfully for client: %s", clientID)
		c.Set(ClientIDKey, clientID)
		c.Next()
	}
}
