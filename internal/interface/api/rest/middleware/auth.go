package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"user-account-api/internal/domain/user"
	"user-account-api/internal/infrastructure/jwt"
)

const ctxActor = "actor"

// Actor is the authenticated caller of a mutating route.
type Actor struct {
	UserID string
	Role   user.Role
}

// AuthMiddleware admits requests carrying a valid bearer token whose role is
// one of the known user roles, and stores the caller as the request Actor.
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			msg := "invalid token format"
			if c.GetHeader("Authorization") == "" {
				msg = "missing Authorization header"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil || !user.Role(claims.Role).Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ctxActor, Actor{UserID: claims.UserID, Role: user.Role(claims.Role)})

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return "", false
	}
	return token, true
}

// ActorFrom returns the caller stored by AuthMiddleware.
func ActorFrom(c *gin.Context) (Actor, bool) {
	v, ok := c.Get(ctxActor)
	if !ok {
		return Actor{}, false
	}
	a, ok := v.(Actor)
	return a, ok
}

// HasRole reports whether the authenticated caller holds one of roles.
func HasRole(c *gin.Context, roles ...user.Role) bool {
	a, ok := ActorFrom(c)
	return ok && slices.Contains(roles, a.Role)
}

// RequireRole rejects callers outside roles with 403. It must run after
// AuthMiddleware.
func RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !HasRole(c, roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}
