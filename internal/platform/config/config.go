package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	StoreDriverFile     = "file"
	StoreDriverPostgres = "postgres"
)

// Run modes.
const (
	ModeServe = "serve"
	ModeDemo  = "demo"
)

// Config holds application configuration.
type Config struct {
	Mode         string
	Port         string
	IsProduction bool
	LogLevel     slog.Level

	StoreDriver   string
	StorePath     string
	DatabaseURL   string
	EnableDBCheck bool

	SessionCacheSize  int
	ReplayAuditOnLoad bool

	RateLimit          string // limiter format, e.g. "100-M"
	CORSAllowedOrigins []string
}

// flag name -> viper key
var flagKeys = map[string]string{
	"mode":         "MODE",
	"port":         "PORT",
	"log-level":    "LOG_LEVEL",
	"store-driver": "STORE_DRIVER",
	"store-path":   "STORE_PATH",
	"replay-audit": "REPLAY_AUDIT_ON_LOAD",
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("demerit_registry", pflag.ContinueOnError)
	fs.String("mode", ModeServe, "run mode: serve or demo")
	fs.String("port", "8080", "HTTP listen port")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.String("store-driver", StoreDriverFile, "record store: file or postgres")
	fs.String("store-path", "persons.txt", "flat store file path")
	fs.Bool("replay-audit", false, "rebuild ledgers from the audit trail when loading a person")
	return fs
}

// LoadConfig loads configuration from command-line args, environment variables
// and a .env file if present, in that order of precedence.
func LoadConfig(args []string) (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("MODE", ModeServe)
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", StoreDriverFile)
	v.SetDefault("STORE_PATH", "persons.txt")
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("SESSION_CACHE_SIZE", 1024)
	v.SetDefault("REPLAY_AUDIT_ON_LOAD", false)
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.AutomaticEnv()

	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	cfg := &Config{
		Mode:               strings.ToLower(v.GetString("MODE")),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		StoreDriver:        strings.ToLower(v.GetString("STORE_DRIVER")),
		StorePath:          v.GetString("STORE_PATH"),
		DatabaseURL:        v.GetString("PGSQL_URL"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		SessionCacheSize:   v.GetInt("SESSION_CACHE_SIZE"),
		ReplayAuditOnLoad:  v.GetBool("REPLAY_AUDIT_ON_LOAD"),
		RateLimit:          v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", v.GetString("LOG_LEVEL"), err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Mode {
	case ModeServe, ModeDemo:
	default:
		return fmt.Errorf("invalid MODE %q: want %s or %s", c.Mode, ModeServe, ModeDemo)
	}
	switch c.StoreDriver {
	case StoreDriverFile:
		if c.StorePath == "" {
			return fmt.Errorf("STORE_PATH is required for the %s store", StoreDriverFile)
		}
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("PGSQL_URL is required for the %s store", StoreDriverPostgres)
		}
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: want %s or %s", c.StoreDriver, StoreDriverFile, StoreDriverPostgres)
	}
	if c.SessionCacheSize <= 0 {
		return fmt.Errorf("SESSION_CACHE_SIZE must be positive, got %d", c.SessionCacheSize)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
