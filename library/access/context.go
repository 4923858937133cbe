package access

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

type contextKey string

const actorKey contextKey = "access.actor"

// WithActor returns a context carrying the actor.
func WithActor(ctx context.Context, actor core.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFrom returns the actor of the context, or the anonymous actor if there is none.
func ActorFrom(ctx context.Context) core.Actor {
	if actor, ok := ctx.Value(actorKey).(core.Actor); ok {
		return actor
	}

	return core.Actor{}
}
