package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/avifonte/ledgerdesk-backend/api/routes"
	"github.com/avifonte/ledgerdesk-backend/internal/audit"
	"github.com/avifonte/ledgerdesk-backend/internal/balance"
	"github.com/avifonte/ledgerdesk-backend/internal/changeorders"
	"github.com/avifonte/ledgerdesk-backend/internal/ledger"
	"github.com/avifonte/ledgerdesk-backend/internal/orders"
	"github.com/avifonte/ledgerdesk-backend/internal/reconciliation"
	"github.com/avifonte/ledgerdesk-backend/pkg/config"
	"github.com/avifonte/ledgerdesk-backend/pkg/db"
	"github.com/avifonte/ledgerdesk-backend/pkg/logger"
	"github.com/avifonte/ledgerdesk-backend/pkg/migrate"
	"github.com/avifonte/ledgerdesk-backend/pkg/redis"
	"github.com/avifonte/ledgerdesk-backend/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap stripe", err)
		os.Exit(1)
	}

	ordersRepo := orders.NewRepository(dbClient.DB())
	changeOrdersRepo := changeorders.NewRepository(dbClient.DB())
	ledgerRepo := ledger.NewRepository(dbClient.DB())
	auditRepo := audit.NewRepository(dbClient.DB())

	auditService, err := audit.NewService(auditRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create audit service", err)
		os.Exit(1)
	}

	balanceService, err := balance.NewService(balance.ServiceParams{
		Orders:       ordersRepo,
		ChangeOrders: changeOrdersRepo,
		Entries:      ledgerRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create balance service", err)
		os.Exit(1)
	}

	ledgerService, err := ledger.NewService(ledger.ServiceParams{
		Repo:    ledgerRepo,
		Orders:  ordersRepo,
		Audit:   auditService,
		Balance: balanceService,
		Tx:      dbClient,
		Policy:  ledger.NewApprovalPolicy(cfg.Approval),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create ledger service", err)
		os.Exit(1)
	}

	stripeSource, err := reconciliation.NewStripeSource(stripeClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create stripe source", err)
		os.Exit(1)
	}
	reconService, err := reconciliation.NewService(reconciliation.ServiceParams{
		Entries: ledgerRepo,
		Source:  stripeSource,
		Logger:  logg,
		Limit:   cfg.Reconcile.Limit,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reconciliation service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			ledgerService,
			balanceService,
			auditService,
			reconService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
