// Package persistence holds cross-adapter plumbing: the transaction-in-context
// convention that lets repositories join an ambient transaction without the
// application layer knowing about database handles.
package persistence

import (
	"context"

	"gorm.io/gorm"
)

type contextKey string

const (
	txKey        contextKey = "persistence:tx"
	requestIDKey contextKey = "persistence:request_id"
)

// ContextWithTx returns a context carrying an open transaction. Repositories
// called with this context execute against it instead of the base connection.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// TxFromContext extracts the ambient transaction, if any.
func TxFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	return tx, ok
}

// ContextWithRequestID attaches the request correlation id used by logging.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext extracts the request correlation id, or "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
