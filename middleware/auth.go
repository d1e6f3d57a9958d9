package middleware

import (
	"strings"

	"newsroom-cms/helper"
	"newsroom-cms/models"
	"newsroom-cms/services"

	"github.com/gin-gonic/gin"
)

const (
	actorKey     = "actor"
	APIKeyHeader = "X-API-Key"
	APIKeyQuery  = "api_key"
)

// Authenticate resolves the caller from an API key or a bearer token and
// stores it as the request actor. A request carrying neither stays
// anonymous. A key or token that is present but invalid is rejected.
func Authenticate(auth services.AuthService, clients services.ApiClientService, h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}
		if key != "" {
			actor, err := clients.Authenticate(ctx, key)
			if err != nil {
				h.SendError(c, err)
				c.Abort()
				return
			}
			c.Set(actorKey, actor)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			h.SendUnauthorizedError(c, "Bearer token required", h.EmptyJsonMap())
			c.Abort()
			return
		}

		actor, err := auth.Authenticate(ctx, tokenString)
		if err != nil {
			h.SendError(c, err)
			c.Abort()
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// CurrentActor returns the authenticated caller, or nil when anonymous.
func CurrentActor(c *gin.Context) *models.Actor {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	actor, _ := v.(*models.Actor)
	return actor
}

func RequireAuth(h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentActor(c) == nil {
			h.SendUnauthorizedError(c, "Authentication required", h.EmptyJsonMap())
			c.Abort()
			return
		}
		c.Next()
	}
}

func RequireRole(h *helper.HTTPHelper, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := CurrentActor(c)
		if actor == nil {
			h.SendUnauthorizedError(c, "Authentication required", h.EmptyJsonMap())
			c.Abort()
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		h.SendForbiddenError(c, "Insufficient permissions", h.EmptyJsonMap())
		c.Abort()
	}
}

// RestrictAPIClients keeps API key callers out of every route it guards.
func RestrictAPIClients(h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentActor(c).ViaAPIClient() {
			h.SendForbiddenError(c, "API clients may only read the subscribed feed", h.EmptyJsonMap())
			c.Abort()
			return
		}
		c.Next()
	}
}
