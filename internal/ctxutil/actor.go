// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package depends only on models to avoid import cycles.
package ctxutil

import (
	"context"

	"github.com/example/parley/internal/models"
)

// ActorKey is the context key for the acting participant.
// Exported so it can be used consistently across packages.
type ActorKey struct{}

// RequestIDKey is the context key for the transport request id.
type RequestIDKey struct{}

// WithActor returns a context with the acting participant embedded.
func WithActor(ctx context.Context, actor models.ParticipantRef) context.Context {
	return context.WithValue(ctx, ActorKey{}, actor)
}

// ActorFromContext returns the acting participant, or false if not set.
func ActorFromContext(ctx context.Context) (models.ParticipantRef, bool) {
	actor, ok := ctx.Value(ActorKey{}).(models.ParticipantRef)
	return actor, ok
}

// WithRequestID returns a context carrying a request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey{}, id)
}

// RequestIDFromContext returns the request id, or empty string if not set.
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(RequestIDKey{}).(string); ok {
		return v
	}
	return ""
}
