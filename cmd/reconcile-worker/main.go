package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avifonte/ledgerdesk-backend/internal/ledger"
	"github.com/avifonte/ledgerdesk-backend/internal/reconciliation"
	"github.com/avifonte/ledgerdesk-backend/pkg/config"
	"github.com/avifonte/ledgerdesk-backend/pkg/db"
	"github.com/avifonte/ledgerdesk-backend/pkg/logger"
	"github.com/avifonte/ledgerdesk-backend/pkg/metrics"
	"github.com/avifonte/ledgerdesk-backend/pkg/migrate"
	"github.com/avifonte/ledgerdesk-backend/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "reconcile-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	cfg.Service.Kind = "reconcile-worker"

	logg = logger.New(logger.Options{
		ServiceName: "reconcile-worker",
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

	stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap stripe", err)
		os.Exit(1)
	}
	source, err := reconciliation.NewStripeSource(stripeClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create stripe source", err)
		os.Exit(1)
	}

	reconService, err := reconciliation.NewService(reconciliation.ServiceParams{
		Entries: ledger.NewRepository(dbClient.DB()),
		Source:  source,
		Logger:  logg,
		Limit:   cfg.Reconcile.Limit,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reconciliation service", err)
		os.Exit(1)
	}

	collector := metrics.NewReconcileMetrics(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"interval": cfg.Reconcile.Interval.String(),
		"lookback": cfg.Reconcile.Lookback.String(),
	})

	metricsServer := startMetricsServer(ctx, cfg.Reconcile.MetricsPort, logg)
	defer shutdownMetricsServer(metricsServer, logg)

	logg.Info(ctx, "starting reconcile worker")

	runOnce(ctx, reconService, collector, cfg.Reconcile.Lookback, logg)

	ticker := time.NewTicker(cfg.Reconcile.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logg.Info(ctx, "reconcile worker shutting down gracefully")
			return
		case <-ticker.C:
			runOnce(ctx, reconService, collector, cfg.Reconcile.Lookback, logg)
		}
	}
}

func runOnce(ctx context.Context, svc reconciliation.Service, collector *metrics.ReconcileMetrics, lookback time.Duration, logg *logger.Logger) {
	now := time.Now().UTC()
	window := reconciliation.Window{From: now.Add(-lookback), To: now}

	start := time.Now()
	report, err := svc.Run(ctx, window)
	collector.ObserveDuration("stripe", time.Since(start))
	if err != nil {
		collector.IncFailure("stripe")
		logg.Error(ctx, "reconciliation run failed", err)
		return
	}

	collector.IncSuccess(report.Source)
	discrepancy, _ := report.TotalDiscrepancy.Float64()
	collector.SetDiscrepancy(discrepancy)
	collector.SetUnmatched(report.Unmatched())
}

func startMetricsServer(ctx context.Context, port string, logg *logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: ":" + port, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "metrics server stopped unexpectedly", err)
		}
	}()
	return server
}

func shutdownMetricsServer(server *http.Server, logg *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logg.Error(ctx, "error shutting down metrics server", err)
	}
}
