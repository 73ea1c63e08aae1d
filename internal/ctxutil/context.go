// Package ctxutil provides type-safe context value management.
// Uses private key types to prevent collisions.
package ctxutil

import (
	"context"
)

type contextKey string

const (
	requestIDKey contextKey = "ctxutil.requestID"
	userIDKey    contextKey = "ctxutil.userID"
)

// WithRequestID adds a request ID to the context for log correlation.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	return requestID, ok && requestID != ""
}

// WithUserID adds a chat user ID (LINE source user) to the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID retrieves the user ID from the context, or "" if absent.
func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(userIDKey).(string); ok {
		return userID
	}
	return ""
}

// PreserveTracing returns a fresh background context carrying only the
// tracing values of ctx. Use it for work that outlives the request, such as
// webhook events processed after the HTTP response was sent.
func PreserveTracing(ctx context.Context) context.Context {
	newCtx := context.Background()
	if requestID, ok := GetRequestID(ctx); ok {
		newCtx = WithRequestID(newCtx, requestID)
	}
	if userID := GetUserID(ctx); userID != "" {
		newCtx = WithUserID(newCtx, userID)
	}
	return newCtx
}
