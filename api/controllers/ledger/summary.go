package ledger

import (
	"net/http"

	"github.com/avifonte/ledgerdesk-backend/api/responses"
	"github.com/avifonte/ledgerdesk-backend/api/validators"
	"github.com/avifonte/ledgerdesk-backend/internal/balance"
	internalledger "github.com/avifonte/ledgerdesk-backend/internal/ledger"
	"github.com/avifonte/ledgerdesk-backend/pkg/logger"
)

// Summary returns the derived payment summary for one order.
func Summary(svc balance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.ComputeSummary(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// Recalculate forces a fresh derivation and records an audit note.
func Recalculate(svc internalledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Recalculate(r.Context(), orderID, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

