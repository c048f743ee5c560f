package bootstrap

import "context"

// AuditLog is a single operational audit entry, distinct from the
// structured debug/info logging the services do.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
