package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey types the keys this package stores in request contexts.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey   = contextKey("logger")
	userIDKey      = contextKey("userID")
	workplaceIDKey = contextKey("workplaceID")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, userIDKey)
}

// GetWorkplaceIDFromContext retrieves the workplace the request is scoped to.
func GetWorkplaceIDFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, workplaceIDKey)
}

func stringFromContext(c *gin.Context, key contextKey) (string, bool) {
	if v, exists := c.Get(string(key)); exists {
		s, ok := v.(string)
		return s, ok && s != ""
	}
	// check in the request context as well
	s, ok := c.Request.Context().Value(key).(string)
	return s, ok && s != ""
}

// WithIdentity returns ctx carrying the user and workplace ids. Used by the auth
// middleware and by code that calls services outside of HTTP (CLI seeding).
func WithIdentity(ctx context.Context, userID, workplaceID string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, workplaceIDKey, workplaceID)
}
