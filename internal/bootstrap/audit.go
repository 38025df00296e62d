package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records operational and business audit entries. Logging an
// entry must never fail the caller.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
