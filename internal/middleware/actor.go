package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// ActorIDKey is the context key for the calling occupant's ID.
const ActorIDKey contextKey = "actor_id"

// ActorHeader carries the calling occupant's ID. It is trusted as given.
const ActorHeader = "X-Occupant-Id"

// GetActorID extracts the actor ID from the context.
// Returns empty string if not found.
func GetActorID(ctx context.Context) string {
	actorID, _ := ctx.Value(ActorIDKey).(string)
	return actorID
}

// WithActorID returns a copy of ctx carrying actorID.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, ActorIDKey, actorID)
}

// ActorInterceptor copies the X-Occupant-Id header into the context so
// handlers can stamp audit fields. It enforces nothing: requests without the
// header proceed with an empty actor.
func ActorInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if actorID := strings.TrimSpace(req.Header().Get(ActorHeader)); actorID != "" {
				ctx = WithActorID(ctx, actorID)
			}
			return next(ctx, req)
		}
	}
}
