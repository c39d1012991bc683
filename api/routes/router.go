package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avifonte/ledgerdesk-backend/api/controllers"
	ledgercontrollers "github.com/avifonte/ledgerdesk-backend/api/controllers/ledger"
	reconcontrollers "github.com/avifonte/ledgerdesk-backend/api/controllers/reconciliation"
	"github.com/avifonte/ledgerdesk-backend/api/middleware"
	"github.com/avifonte/ledgerdesk-backend/internal/audit"
	"github.com/avifonte/ledgerdesk-backend/internal/balance"
	internalledger "github.com/avifonte/ledgerdesk-backend/internal/ledger"
	internalrecon "github.com/avifonte/ledgerdesk-backend/internal/reconciliation"
	"github.com/avifonte/ledgerdesk-backend/pkg/config"
	"github.com/avifonte/ledgerdesk-backend/pkg/logger"
	"github.com/avifonte/ledgerdesk-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger controllers.Pinger,
	redisClient *redis.Client,
	ledgerService internalledger.Service,
	balanceService balance.Service,
	auditService audit.Service,
	reconService internalrecon.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbPinger, redisClient, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireActor(logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/orders/{orderID}", func(r chi.Router) {
			r.Get("/summary", ledgercontrollers.Summary(balanceService, logg))
			r.Post("/recalculate", ledgercontrollers.Recalculate(ledgerService, logg))
			r.Get("/entries", ledgercontrollers.ListEntries(ledgerService, logg))
			r.Post("/entries", ledgercontrollers.CreateEntry(ledgerService, logg))
			r.Get("/entries/export", ledgercontrollers.ExportEntries(ledgerService, logg))
		})

		r.Route("/entries/{entryID}", func(r chi.Router) {
			r.Post("/approve", ledgercontrollers.ApproveEntry(ledgerService, logg))
			r.Post("/void", ledgercontrollers.VoidEntry(ledgerService, logg))
			r.Get("/audit", ledgercontrollers.EntryAudit(auditService, logg))
		})

		r.Post("/reconciliation/run", reconcontrollers.Run(reconService, logg))
	})

	return r
}
