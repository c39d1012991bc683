package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/avifonte/ledgerdesk-backend/api/responses"
	"github.com/avifonte/ledgerdesk-backend/pkg/enums"
	pkgerrors "github.com/avifonte/ledgerdesk-backend/pkg/errors"
	"github.com/avifonte/ledgerdesk-backend/pkg/logger"
)

const (
	actorIDHeader    = "X-Actor-Id"
	actorEmailHeader = "X-Actor-Email"
	actorRoleHeader  = "X-Actor-Role"
)

// RequireActor extracts the acting identity the gateway forwards on every
// request. Session handling happens upstream; this layer only trusts and
// validates the forwarded headers.
func RequireActor(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			actorID := strings.TrimSpace(r.Header.Get(actorIDHeader))
			if actorID == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor identity missing"))
				return
			}
			if _, err := uuid.Parse(actorID); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor identity malformed"))
				return
			}

			role := strings.TrimSpace(r.Header.Get(actorRoleHeader))
			parsedRole, err := enums.ParseActorRole(role)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "unknown actor role"))
				return
			}

			email := strings.TrimSpace(r.Header.Get(actorEmailHeader))

			ctx = WithActor(ctx, actorID, email, string(parsedRole))
			if logg != nil {
				ctx = logg.WithActorRole(ctx, string(parsedRole))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
