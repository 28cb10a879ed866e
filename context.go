package dispatcher

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type dispatchIDCtx struct{}

// WithDispatchID attaches a dispatch ID to the context.
func WithDispatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, dispatchIDCtx{}, id)
}

// DispatchID extracts the dispatch ID from the context.
// Returns empty string if not present.
func DispatchID(ctx context.Context) string {
	if id, ok := ctx.Value(dispatchIDCtx{}).(string); ok {
		return id
	}
	return ""
}

type dispatchTimeCtx struct{}

// WithDispatchTime attaches the dispatch start time to the context.
func WithDispatchTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, dispatchTimeCtx{}, t)
}

// DispatchTime extracts the dispatch start time from the context.
// Returns zero time if not present.
func DispatchTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(dispatchTimeCtx{}).(time.Time); ok {
		return t
	}
	return time.Time{}
}

// withDispatchMeta stamps a fresh dispatch ID and start time onto the
// context every callback of one dispatch observes.
func withDispatchMeta(ctx context.Context) context.Context {
	ctx = WithDispatchID(ctx, uuid.New().String())
	ctx = WithDispatchTime(ctx, time.Now())
	return ctx
}
