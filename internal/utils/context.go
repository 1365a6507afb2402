// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, opaque token
// generation, HTTP response writing, HTTP client initialization and trace
// ID generation.
package utils

import (
	"context"
)

// contextKey keeps request-scoped keys out of the plain string key space.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey holds the authenticated user's ID, set by the token
// middleware.
var UserIDCtxKey = contextKey("userID")

// GetUserIDFromContext returns the authenticated user's ID. ok is false for
// anonymous requests.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
