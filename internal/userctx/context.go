// Package userctx carries the authenticated user through request contexts.
// It lives outside internal/auth so feature packages can read the user
// without importing the auth machinery.
package userctx

import "context"

type contextKey string

const userIDContextKey contextKey = "user_id"

// WithUserID returns a child context tagged with the user.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// GetUserID reports the user set by the auth middleware, if any.
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	return userID, ok
}
