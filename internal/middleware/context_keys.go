package middleware

import (
	"context"

	"github.com/SscSPs/athena_ledger/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey prevents collisions with keys set by other packages.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	scopeKey     = contextKey("scope")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetScopeFromContext retrieves the ledger scope resolved by AuthMiddleware.
func GetScopeFromContext(c *gin.Context) (domain.Scope, bool) {
	return ScopeFromCtx(c.Request.Context())
}

// ScopeFromCtx retrieves the ledger scope from a standard context.
func ScopeFromCtx(ctx context.Context) (domain.Scope, bool) {
	scope, ok := ctx.Value(scopeKey).(domain.Scope)
	return scope, ok
}

// WithIdentity returns ctx carrying the user id and scope, as AuthMiddleware stores them.
func WithIdentity(ctx context.Context, userID string, scope domain.Scope) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, scopeKey, scope)
}
