package requestctx

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const operationIDKey ctxKey = "operation_id"

func WithOperationID(ctx context.Context, operationID string) context.Context {
	return context.WithValue(ctx, operationIDKey, operationID)
}

// EnsureOperationID returns ctx unchanged when it already carries an
// operation id, otherwise a child context with a fresh one.
func EnsureOperationID(ctx context.Context) context.Context {
	if GetOperationID(ctx) != "" {
		return ctx
	}
	return WithOperationID(ctx, uuid.NewString())
}

func GetOperationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if value, ok := ctx.Value(operationIDKey).(string); ok {
		return value
	}
	return ""
}
