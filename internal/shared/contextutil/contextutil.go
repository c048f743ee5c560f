package contextutil

import "context"

// contextKey is unexported so keys cannot collide with other packages
type contextKey string

const (
	requestIDKey contextKey = "request_id"
	accountIDKey contextKey = "account_id"
)

// WithRequestID injects the request id into the context
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

// GetRequestID reads the request id from the context
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// WithAccountID injects the authenticated account id into the context
func WithAccountID(ctx context.Context, aid string) context.Context {
	return context.WithValue(ctx, accountIDKey, aid)
}

// GetAccountID reads the authenticated account id from the context
func GetAccountID(ctx context.Context) string {
	if aid, ok := ctx.Value(accountIDKey).(string); ok {
		return aid
	}
	return ""
}
