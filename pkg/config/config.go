package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatflowers/crm/internal/models"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

var (
	ErrMissingStripeSecret = errors.New("missing stripe secret")
	ErrInvalidStore        = errors.New("invalid ledger store")
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// CORSOrigins lists the dashboard origins allowed to call the API.
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type DBConfig struct {
	DSN string `mapstructure:"dsn"`
}

type StoreKind string

const (
	StoreMemory   StoreKind = "memory"
	StorePostgres StoreKind = "postgres"
)

type LedgerConfig struct {
	Store StoreKind `mapstructure:"store"`
}

type StripeConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	// LookupTimeout bounds customer lookups made while handling a webhook.
	LookupTimeout time.Duration `mapstructure:"lookup_timeout"`
	// WebhookTolerance is the accepted age of a webhook signature timestamp.
	WebhookTolerance time.Duration `mapstructure:"webhook_tolerance"`
	// APIURL overrides the Stripe API base, e.g. for stripe-mock.
	APIURL string `mapstructure:"api_url"`
}

type Env string

const (
	EnvDev  Env = "dev"
	EnvProd Env = "prod"
)

type Config struct {
	Env         Env          `mapstructure:"env"`
	Server      ServerConfig `mapstructure:"server"`
	Database    DBConfig     `mapstructure:"database"`
	Ledger      LedgerConfig `mapstructure:"ledger"`
	Stripe      StripeConfig `mapstructure:"stripe"`
	MetricsAddr string       `mapstructure:"metrics_addr"`
	// Customers seeds the in-memory customer repository when no database is configured.
	Customers []*models.Customer `mapstructure:"customers"`
}

// Validate reports configuration the service cannot run without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Stripe.SecretKey) == "" {
		return fmt.Errorf("%w: set STRIPE_SECRET_KEY or stripe.secret_key", ErrMissingStripeSecret)
	}
	if strings.TrimSpace(c.Stripe.WebhookSecret) == "" {
		return fmt.Errorf("%w: set STRIPE_WEBHOOK_SECRET or stripe.webhook_secret", ErrMissingStripeSecret)
	}
	switch c.Ledger.Store {
	case StoreMemory:
	case StorePostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("%w: postgres ledger requires database.dsn", ErrInvalidStore)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStore, c.Ledger.Store)
	}
	return nil
}

func New() (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	v := viper.New()
	// Allow overriding config file via env:
	// - APP_CONFIG_FILE: absolute or relative file path (e.g., /etc/app/prod.yaml)
	// - APP_CONFIG_NAME: config base name without extension (default: "config")
	if file := os.Getenv("APP_CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
	} else {
		cfgName := os.Getenv("APP_CONFIG_NAME")
		if cfgName == "" {
			cfgName = "config"
		}
		v.SetConfigName(cfgName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Stripe's conventional variable names.
	_ = v.BindEnv("stripe.secret_key", "APP_STRIPE_SECRET_KEY", "STRIPE_SECRET_KEY")
	_ = v.BindEnv("stripe.webhook_secret", "APP_STRIPE_WEBHOOK_SECRET", "STRIPE_WEBHOOK_SECRET")
	_ = v.BindEnv("server.port", "APP_SERVER_PORT", "PORT")

	// Defaults
	v.SetDefault("env", "dev")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000", "http://127.0.0.1:3000"})
	v.SetDefault("database.dsn", "")
	v.SetDefault("ledger.store", string(StoreMemory))
	v.SetDefault("stripe.lookup_timeout", 5*time.Second)
	v.SetDefault("stripe.webhook_tolerance", 5*time.Minute)
	v.SetDefault("metrics_addr", ":9090")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var c Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&c, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

var Module = fx.Options(
	fx.Provide(New),
)
