// Package middleware provides HTTP middleware components for the API
// server: request ids, structured request logging, bearer-token auth,
// rate limiting, and prometheus metrics.
package middleware

import "context"

// requestIDKey is the context key for request ID.
type requestIDKey struct{}

// userKey is the context key for the authenticated user.
type userKey struct{}

// errorCodeKey is the context key for error code.
type errorCodeKey struct{}

// SetUser stores the authenticated user subject in the context. Called by
// the auth middleware after validating the token.
func SetUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser retrieves the user subject from context. Returns empty string
// if not present.
func GetUser(ctx context.Context) string {
	if user, ok := ctx.Value(userKey{}).(string); ok {
		return user
	}
	return ""
}

// SetErrorCode stores an error code in the context. Called by handlers
// when returning error responses so the logging middleware can record it.
func SetErrorCode(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, errorCodeKey{}, code)
}

// GetErrorCode retrieves the error code from context. Returns empty
// string if not present.
func GetErrorCode(ctx context.Context) string {
	if code, ok := ctx.Value(errorCodeKey{}).(string); ok {
		return code
	}
	return ""
}
