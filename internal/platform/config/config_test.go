package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "AUD", cfg.DefaultCurrency)
	assert.True(t, cfg.IsCurrencyAllowed("USD"))
	assert.False(t, cfg.IsCurrencyAllowed("usd"))
	assert.Equal(t, "100-M", cfg.RateLimit)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	viper.Reset()
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("LEDGER_DEFAULT_CURRENCY", "usd")
	t.Setenv("LEDGER_ALLOWED_CURRENCIES", "usd, eur")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, "USD", cfg.DefaultCurrency)
	assert.Equal(t, []string{"USD", "EUR"}, cfg.AllowedCurrencies)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown store", map[string]string{"STORE_DRIVER": "sqlite"}},
		{"bad currency", map[string]string{"LEDGER_ALLOWED_CURRENCIES": "AUD,DOLLARS"}},
		{"default not allowed", map[string]string{"LEDGER_DEFAULT_CURRENCY": "CHF", "LEDGER_ALLOWED_CURRENCIES": "AUD"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
