package domain

import "context"

type CtxKey string

const (
	KeyRequestID  CtxKey = "RequestID"
	KeyEmployerID CtxKey = "EmployerID"
)

// EmployerIDFrom returns the employer id set by the auth middleware.
func EmployerIDFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(KeyEmployerID).(int64)
	return id, ok && id > 0
}
