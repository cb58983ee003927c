package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Ledger: LedgerConfig{Store: StoreMemory},
		Stripe: StripeConfig{SecretKey: "sk_test_123", WebhookSecret: "whsec_123"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "valid memory ledger", mutate: func(c *Config) {}},
		{name: "missing secret key", mutate: func(c *Config) { c.Stripe.SecretKey = "" }, wantErr: ErrMissingStripeSecret},
		{name: "blank webhook secret", mutate: func(c *Config) { c.Stripe.WebhookSecret = "  " }, wantErr: ErrMissingStripeSecret},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Ledger.Store = StorePostgres }, wantErr: ErrInvalidStore},
		{name: "postgres with dsn", mutate: func(c *Config) {
			c.Ledger.Store = StorePostgres
			c.Database.DSN = "postgres://localhost/crm"
		}},
		{name: "unknown store", mutate: func(c *Config) { c.Ledger.Store = "redis" }, wantErr: ErrInvalidStore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNew_FailsWithoutStripeSecrets(t *testing.T) {
	t.Setenv("APP_CONFIG_FILE", "")
	t.Setenv("APP_CONFIG_NAME", "config-that-does-not-exist")
	t.Setenv("STRIPE_SECRET_KEY", "")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "")
	t.Setenv("APP_STRIPE_SECRET_KEY", "")
	t.Setenv("APP_STRIPE_WEBHOOK_SECRET", "")

	_, err := New()
	require.ErrorIs(t, err, ErrMissingStripeSecret)
}

func TestNew_ReadsStripeEnv(t *testing.T) {
	t.Setenv("APP_CONFIG_FILE", "")
	t.Setenv("APP_CONFIG_NAME", "config-that-does-not-exist")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_env")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_env")

	c, err := New()
	require.NoError(t, err)
	require.Equal(t, "sk_test_env", c.Stripe.SecretKey)
	require.Equal(t, "whsec_env", c.Stripe.WebhookSecret)
	require.Equal(t, StoreMemory, c.Ledger.Store)
	require.Equal(t, 8080, c.Server.Port)
}
