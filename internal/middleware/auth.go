package middleware

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/conference-service/internal/auth"
	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "user_role"
)

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// TokenParser is satisfied by auth.TokenManager.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Auth validates the bearer token and stores the caller identity on the context.
func Auth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if header == "" || !ok || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{
				Message: "Authorization header is required",
				Code:    "UNAUTHORIZED",
			})
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{
				Message: "Invalid or expired token",
				Code:    "UNAUTHORIZED",
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole lets the request through only for the given roles.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Message: "Not authenticated", Code: "UNAUTHORIZED"})
			return
		}
		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, errorBody{Message: "Insufficient permissions", Code: "FORBIDDEN"})
	}
}

func ActorFromContext(c *gin.Context) (models.Actor, bool) {
	id, ok := c.Get(ContextUserID)
	if !ok {
		return models.Actor{}, false
	}
	role, ok := c.Get(ContextRole)
	if !ok {
		return models.Actor{}, false
	}
	return models.Actor{UserID: id.(uint), Role: role.(models.UserRole)}, true
}
