package middleware

import (
	"net/http"
	"strings"

	"cleanslate/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuth.
const (
	ActorIDKey   = "actorID"
	ActorRoleKey = "actorRole"
	ActorNameKey = "actorName"
)

// JWTAuth validates the bearer token and, when roles are given, requires one of them.
func JWTAuth(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ParseClaims(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid token", err.Error())
			return
		}
		if len(roles) > 0 && !hasRole(claims.Role, roles) {
			utils.JSONError(c, http.StatusForbidden, "Insufficient role", "requires one of: "+strings.Join(roles, ", "))
			return
		}

		c.Set(ActorIDKey, claims.Subject)
		c.Set(ActorRoleKey, claims.Role)
		c.Set(ActorNameKey, claims.Name)
		c.Next()
	}
}

func hasRole(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// OptionalJWTAuth sets the actor keys when a valid bearer token is present
// and lets anonymous requests through untouched.
func OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			if claims, err := utils.ParseClaims(strings.TrimPrefix(authHeader, "Bearer ")); err == nil {
				c.Set(ActorIDKey, claims.Subject)
				c.Set(ActorRoleKey, claims.Role)
				c.Set(ActorNameKey, claims.Name)
			}
		}
		c.Next()
	}
}
