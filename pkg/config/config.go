package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "ledgerdesk"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Stripe       StripeConfig
	Approval     ApprovalConfig
	Reconcile    ReconcileConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LEDGERDESK_APP_ENV" required:"true"`
	Port         string `envconfig:"LEDGERDESK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LEDGERDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LEDGERDESK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"LEDGERDESK_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"LEDGERDESK_DB_DSN"`
	Driver string `envconfig:"LEDGERDESK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LEDGERDESK_DB_HOST"`
	LegacyPort     int    `envconfig:"LEDGERDESK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LEDGERDESK_DB_USER"`
	LegacyPassword string `envconfig:"LEDGERDESK_DB_PASSWORD"`
	LegacyName     string `envconfig:"LEDGERDESK_DB_NAME"`
	LegacySSLMode  string `envconfig:"LEDGERDESK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LEDGERDESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LEDGERDESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LEDGERDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LEDGERDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if strings.TrimSpace(d.DSN) != "" {
		return nil
	}
	if d.LegacyHost == "" || d.LegacyUser == "" || d.LegacyName == "" {
		return fmt.Errorf("either LEDGERDESK_DB_DSN or host/user/name parts are required")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.LegacyUser, d.LegacyPassword),
		Host:   fmt.Sprintf("%s:%d", d.LegacyHost, d.LegacyPort),
		Path:   d.LegacyName,
	}
	q := u.Query()
	q.Set("sslmode", d.LegacySSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"LEDGERDESK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LEDGERDESK_REDIS_ADDR"`
	Password     string        `envconfig:"LEDGERDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"LEDGERDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LEDGERDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LEDGERDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LEDGERDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LEDGERDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LEDGERDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type StripeConfig struct {
	APIKey string `envconfig:"LEDGERDESK_STRIPE_API_KEY"`
	Env    string `envconfig:"LEDGERDESK_STRIPE_ENV" default:"test"`
}

func (s StripeConfig) Environment() string {
	return s.Env
}

// ApprovalConfig drives the manual-approval policy for ledger entries.
type ApprovalConfig struct {
	// Code is the shared approval code a non-elevated actor must supply.
	Code string `envconfig:"LEDGERDESK_APPROVAL_CODE"`
}

type ReconcileConfig struct {
	// Lookback bounds the default reconciliation window when the caller
	// does not supply one.
	Lookback time.Duration `envconfig:"LEDGERDESK_RECONCILE_LOOKBACK" default:"720h"`
	Interval time.Duration `envconfig:"LEDGERDESK_RECONCILE_INTERVAL" default:"6h"`
	Limit    int           `envconfig:"LEDGERDESK_RECONCILE_LIMIT" default:"5000"`
	// MetricsPort serves the prometheus endpoint on the reconcile worker.
	MetricsPort string `envconfig:"LEDGERDESK_RECONCILE_METRICS_PORT" default:"9090"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LEDGERDESK_FEATURE_AUTO_MIGRATE" default:"false"`
}
