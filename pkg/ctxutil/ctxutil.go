package ctxutil

import (
	"context"

	"github.com/finsl/signbank-backend/internal/domain"
)

type ctxKey string

const (
	viewerKey    ctxKey = "viewer"
	requestIDKey ctxKey = "request_id"
)

// WithViewer stores the request viewer in the context.
func WithViewer(ctx context.Context, v domain.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, v)
}

// ViewerFromCtx extracts the viewer from the context. A missing or mistyped
// value yields the zero Viewer, which is anonymous.
func ViewerFromCtx(ctx context.Context) domain.Viewer {
	v, _ := ctx.Value(viewerKey).(domain.Viewer)
	return v
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
