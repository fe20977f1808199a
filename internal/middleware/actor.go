package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const actorKey = contextKey("actor")

// ActorHeader names the request header carrying the acting user's identity.
// Authentication happens upstream; the engine only records who acted.
const ActorHeader = "X-Actor"

// ActorMiddleware copies the actor identity from the request header into the
// request context so handlers can pass it explicitly into mutating operations.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor := c.GetHeader(ActorHeader); actor != "" {
			ctx := context.WithValue(c.Request.Context(), actorKey, actor)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// GetActorFromContext retrieves the acting user's identity. The boolean is
// false when the request carried no actor header.
func GetActorFromContext(c *gin.Context) (string, bool) {
	actor, ok := c.Request.Context().Value(actorKey).(string)
	if !ok || actor == "" {
		return "", false
	}
	return actor, true
}
