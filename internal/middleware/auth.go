package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/souqly/souqly-backend/internal/apperrors"
	"github.com/souqly/souqly-backend/internal/models"
	"github.com/souqly/souqly-backend/internal/repository"
)

const identityKey = "identity"

// TokenParser validates an access token and returns the identity it
// carries.
type TokenParser interface {
	ParseAccessToken(tokenString string) (*models.Identity, error)
}

// Authenticate requires a valid Bearer access token and an active account.
// The parsed identity is stored on the gin context for handlers.
func Authenticate(parser TokenParser, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortUnauthorized(c, "Authentication required")
			return
		}

		identity, err := parser.ParseAccessToken(token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		// The token may outlive a deactivation; re-check the account.
		active, err := userRepo.GetStatus(c.Request.Context(), identity.UserID)
		if err == apperrors.ErrNotFound || (err == nil && !active) {
			abortUnauthorized(c, "Account is deactivated")
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Something went wrong",
			})
			return
		}

		c.Set(identityKey, *identity)
		c.Next()
	}
}

// RequireAdmin rejects non-admin identities. Must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok || !identity.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Admin access required",
			})
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the authenticated identity set by Authenticate.
func IdentityFrom(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}
