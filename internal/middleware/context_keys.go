package middleware

import "github.com/gin-gonic/gin"

// actorKey is the key used to store the acting user's identifier in the
// context. There is no authentication layer; the actor is taken from the
// X-Actor-ID header purely for audit fields.
const actorKey = contextKey("actorID")

// DefaultActor is recorded when no actor header is present.
const DefaultActor = "system"

// ActorMiddleware stores the caller-supplied actor identifier for audit
// trails.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader("X-Actor-ID")
		if actor == "" {
			actor = DefaultActor
		}
		c.Set(string(actorKey), actor)
		c.Next()
	}
}

// GetActorFromContext retrieves the acting user identifier from the Gin
// context.
func GetActorFromContext(c *gin.Context) string {
	actorVal, exists := c.Get(string(actorKey))
	if !exists {
		return DefaultActor
	}
	actor, ok := actorVal.(string)
	if !ok || actor == "" {
		return DefaultActor
	}
	return actor
}
