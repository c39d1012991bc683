package reconciliation

import (
	"net/http"
	"time"

	"github.com/avifonte/ledgerdesk-backend/api/responses"
	"github.com/avifonte/ledgerdesk-backend/api/validators"
	internalrecon "github.com/avifonte/ledgerdesk-backend/internal/reconciliation"
	pkgerrors "github.com/avifonte/ledgerdesk-backend/pkg/errors"
	"github.com/avifonte/ledgerdesk-backend/pkg/logger"
)

// defaultLookback bounds a run when the caller omits the window start.
const defaultLookback = 30 * 24 * time.Hour

// Run executes an on-demand reconciliation over the requested window and
// returns the full report.
func Run(svc internalrecon.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, err := validators.ParseQueryTime(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.ParseQueryTime(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		window := internalrecon.Window{}
		if to != nil {
			window.To = *to
		} else {
			window.To = time.Now().UTC()
		}
		if from != nil {
			window.From = *from
		} else {
			window.From = window.To.Add(-defaultLookback)
		}
		if !window.From.Before(window.To) {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "from must precede to"))
			return
		}

		report, err := svc.Run(r.Context(), window)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
