package ctxutil

import "context"

type ctxKey string

const (
	userIDKey     ctxKey = "user_id"
	sessionKeyKey ctxKey = "session_key"
	tokenKey      ctxKey = "access_token"
	requestIDKey  ctxKey = "request_id"
)

// WithUserID stores the user ID in the context.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx extracts the user ID from the context.
// Returns "" and false if the value is missing, empty, or wrong type.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// WithSessionKey stores the dictionary session key in the context.
func WithSessionKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, sessionKeyKey, key)
}

// SessionKeyFromCtx extracts the dictionary session key from the context.
func SessionKeyFromCtx(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(sessionKeyKey).(string)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// WithAccessToken stores the caller's raw bearer token so outbound calls to
// the backend can forward it.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// AccessTokenFromCtx extracts the raw bearer token. Returns "" if absent.
func AccessTokenFromCtx(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
