package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/CoolVinz/village-shop-sub001/internal/domain"
	"github.com/CoolVinz/village-shop-sub001/internal/dto"
	"github.com/CoolVinz/village-shop-sub001/internal/service"
)

const identityKey = "identity"

// extractToken locates the session credential: the auth-token cookie,
// or a Bearer header for non-browser clients.
func extractToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}

// SessionMiddleware resolves the request's credential into an identity
// and aborts with 401 when there is none or it does not verify. The
// resolution is stateless and re-derived on every request.
func SessionMiddleware(authService service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "missing session token",
			})
			c.Abort()
			return
		}

		identity, err := authService.ResolveSession(c.Request.Context(), token)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireRoles gates a route group on role membership. It runs after
// SessionMiddleware and delegates to the authorization gate.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.Authorize(identityFrom(c), roles, ""); err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

func identityFrom(c *gin.Context) *service.Identity {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, _ := v.(*service.Identity)
	return identity
}
