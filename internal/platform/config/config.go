package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/SscSPs/athena_ledger/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StoreDriver    string // postgres or memory
	MigrationsPath string
	JWTSecret      string
	JWTIssuer      string
	RateLimit      string // ulule formatted rate, e.g. "100-M"
	CORSOrigins    []string

	DefaultCurrency   string
	AllowedCurrencies []string
}

// IsCurrencyAllowed reports whether code is in the configured allow-list.
func (c *Config) IsCurrencyAllowed(code string) bool {
	for _, allowed := range c.AllowedCurrencies {
		if allowed == code {
			return true
		}
	}
	return false
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "athena-ledger")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("LEDGER_DEFAULT_CURRENCY", "AUD")
	viper.SetDefault("LEDGER_ALLOWED_CURRENCIES", "AUD,USD,EUR,GBP,NZD,JPY,CAD,SGD,INR")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:       viper.GetString("PGSQL_URL"),
		Port:              viper.GetString("PORT"),
		IsProduction:      viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:     viper.GetBool("ENABLE_DB_CHECK"),
		StoreDriver:       strings.ToLower(strings.TrimSpace(viper.GetString("STORE_DRIVER"))),
		MigrationsPath:    viper.GetString("MIGRATIONS_PATH"),
		JWTSecret:         viper.GetString("JWT_SECRET"),
		JWTIssuer:         viper.GetString("JWT_ISSUER"),
		RateLimit:         viper.GetString("RATE_LIMIT"),
		CORSOrigins:       splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		DefaultCurrency:   strings.ToUpper(strings.TrimSpace(viper.GetString("LEDGER_DEFAULT_CURRENCY"))),
		AllowedCurrencies: splitList(strings.ToUpper(viper.GetString("LEDGER_ALLOWED_CURRENCIES"))),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StoreDriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", cfg.StoreDriver, StoreDriverPostgres, StoreDriverMemory)
	}

	if cfg.IsProduction && cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET is the default insecure key. THIS IS NOT FOR PRODUCTION.")
	}

	if err := cfg.validateCurrencies(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validateCurrencies() error {
	if len(c.AllowedCurrencies) == 0 {
		return fmt.Errorf("LEDGER_ALLOWED_CURRENCIES must list at least one currency")
	}
	for _, code := range c.AllowedCurrencies {
		if !domain.IsCurrencyCode(code) {
			return fmt.Errorf("LEDGER_ALLOWED_CURRENCIES: %q is not a three-letter currency code", code)
		}
	}
	if !c.IsCurrencyAllowed(c.DefaultCurrency) {
		return fmt.Errorf("LEDGER_DEFAULT_CURRENCY %q is not in LEDGER_ALLOWED_CURRENCIES", c.DefaultCurrency)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
