package middleware

import "context"

type contextKey string

const (
	ctxActorID    contextKey = "actor_id"
	ctxActorEmail contextKey = "actor_email"
	ctxActorRole  contextKey = "actor_role"
)

func ActorIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxActorID).(string); ok {
		return v
	}
	return ""
}

func ActorEmailFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxActorEmail).(string); ok {
		return v
	}
	return ""
}

func ActorRoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxActorRole).(string); ok {
		return v
	}
	return ""
}

// WithActor injects the acting identity into the context for downstream handlers.
func WithActor(ctx context.Context, actorID, email, role string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxActorID, actorID)
	ctx = context.WithValue(ctx, ctxActorEmail, email)
	return context.WithValue(ctx, ctxActorRole, role)
}
