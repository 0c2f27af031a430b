package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smartkart/smartkart/internal/domain/model"
	pkgAuth "github.com/smartkart/smartkart/internal/pkg/auth"
)

const (
	// PrincipalContextKey is a gin context key for the authenticated principal.
	PrincipalContextKey = "principal"
	authCookieName      = "smartkart_token"
)

// TokenParser validates a bearer token into a principal.
type TokenParser interface {
	ParseToken(token string) (model.Principal, error)
}

// AuthRequired ensures the caller is authenticated before reaching handlers.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		principal, err := parser.ParseToken(token)
		if err != nil {
			if err == pkgAuth.ErrInvalidToken {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(PrincipalContextKey, principal)
		c.Next()
	}
}

// RoleRequired rejects authenticated callers with the wrong role. Must run
// after AuthRequired.
func RoleRequired(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := c.Get(PrincipalContextKey)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		principal, _ := val.(model.Principal)
		if principal.Role != role {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
