package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var (
	ErrStoreProviderUnknown     = errors.New("sitecms config: store provider is invalid")
	ErrStoreDSNRequired         = errors.New("sitecms config: store dsn is required for sql providers")
	ErrFirestoreProjectRequired = errors.New("sitecms config: firestore project id is required")
	ErrMongoURIRequired         = errors.New("sitecms config: mongo uri and database are required")
	ErrAuthProviderUnknown      = errors.New("sitecms config: auth provider is invalid")
	ErrAdminEmailsRequired      = errors.New("sitecms config: at least one admin email is required")
	ErrStaticTokenRequired      = errors.New("sitecms config: static auth provider requires a token")
	ErrHTTPAddressRequired      = errors.New("sitecms config: http address is required")
	ErrLoggingProviderUnknown   = errors.New("sitecms config: logging provider is invalid")
	ErrLoggingLevelInvalid      = errors.New("sitecms config: logging level is invalid")
	ErrLoggingFormatInvalid     = errors.New("sitecms config: logging format is invalid")
	ErrCacheTTLInvalid          = errors.New("sitecms config: cache ttl must be positive when cache is enabled")
)

// Store providers.
const (
	StoreMemory    = "memory"
	StoreSQLite    = "sqlite"
	StorePostgres  = "postgres"
	StoreFirestore = "firestore"
	StoreMongo     = "mongo"
)

// Auth providers.
const (
	AuthFirebase = "firebase"
	AuthStatic   = "static"
)

// Config is the runtime configuration of the site backend. Every field can
// be overridden from the environment, see Load.
type Config struct {
	AppName    string           `env:"APP_NAME"`
	Store      StoreConfig      `envPrefix:"STORE_"`
	Cache      CacheConfig      `envPrefix:"CACHE_"`
	Revalidate RevalidateConfig `envPrefix:"REVALIDATE_"`
	Auth       AuthConfig       `envPrefix:"AUTH_"`
	Payments   PaymentsConfig   `envPrefix:"PAYMENTS_"`
	Mail       MailConfig       `envPrefix:"MAIL_"`
	MetaGen    MetaGenConfig    `envPrefix:"METAGEN_"`
	HTTP       HTTPConfig       `envPrefix:"HTTP_"`
	Logging    LoggingConfig    `envPrefix:"LOG_"`
}

type StoreConfig struct {
	Provider          string `env:"PROVIDER"`
	DSN               string `env:"DSN"`
	FirestoreProject  string `env:"FIRESTORE_PROJECT_ID"`
	MongoURI          string `env:"MONGO_URI"`
	MongoDatabase     string `env:"MONGO_DATABASE"`
	MongoTransactions bool   `env:"MONGO_TRANSACTIONS"`
}

// CacheConfig controls the read-through cache of the sql store.
type CacheConfig struct {
	Enabled bool          `env:"ENABLED"`
	TTL     time.Duration `env:"TTL"`
}

// RevalidateConfig points the dispatcher at the rendering frontend.
type RevalidateConfig struct {
	WebhookURL    string        `env:"WEBHOOK_URL"`
	Secret        string        `env:"SECRET"`
	Timeout       time.Duration `env:"TIMEOUT"`
	RecorderLimit int           `env:"RECORDER_LIMIT"`
}

type AuthConfig struct {
	Provider         string   `env:"PROVIDER"`
	AdminEmails      []string `env:"ADMIN_EMAILS" envSeparator:","`
	FirebaseProject  string   `env:"FIREBASE_PROJECT_ID"`
	StaticToken      string   `env:"STATIC_TOKEN"`
	StaticTokenEmail string   `env:"STATIC_TOKEN_EMAIL"`
}

type PaymentsConfig struct {
	GatewayBaseURL string        `env:"GATEWAY_BASE_URL"`
	Timeout        time.Duration `env:"TIMEOUT"`
}

type MailConfig struct {
	Enabled bool `env:"ENABLED"`
}

type MetaGenConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL"`
	BaseURL string `env:"BASE_URL"`
}

type HTTPConfig struct {
	Address         string        `env:"ADDRESS"`
	PublicBaseURL   string        `env:"PUBLIC_BASE_URL"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

type LoggingConfig struct {
	Provider  string   `env:"PROVIDER"`
	Level     string   `env:"LEVEL"`
	Format    string   `env:"FORMAT"`
	AddSource bool     `env:"ADD_SOURCE"`
	Focus     []string `env:"FOCUS" envSeparator:","`
}

// DefaultConfig runs against an in-memory store with static auth disabled
// until a token is configured.
func DefaultConfig() Config {
	return Config{
		AppName: "",
		Store: StoreConfig{
			Provider:          StoreMemory,
			MongoTransactions: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Minute,
		},
		Revalidate: RevalidateConfig{
			Timeout:       5 * time.Second,
			RecorderLimit: 100,
		},
		Auth: AuthConfig{
			Provider:    AuthFirebase,
			AdminEmails: []string{"wecanfix.in@gmail.com"},
		},
		Payments: PaymentsConfig{
			Timeout: 15 * time.Second,
		},
		Mail: MailConfig{Enabled: true},
		HTTP: HTTPConfig{
			Address:         ":8080",
			PublicBaseURL:   "http://localhost:3000",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "json",
		},
	}
}

// Load reads the optional dotenv files, then overlays the environment on
// DefaultConfig and validates the result. Missing dotenv files are ignored.
func Load(files ...string) (Config, error) {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return Config{}, fmt.Errorf("sitecms config: load env files: %w", err)
		}
	}
	cfg := DefaultConfig()
	if err := env.Parse(&cfg, env.Options{Prefix: "SITECMS_"}); err != nil {
		return Config{}, fmt.Errorf("sitecms config: parse environment: %w", err)
	}
	cfg.Auth.AdminEmails = compact(cfg.Auth.AdminEmails)
	return cfg, cfg.Validate()
}

// Validate performs consistency checks.
func (cfg Config) Validate() error {
	switch normalize(cfg.Store.Provider) {
	case StoreMemory:
	case StoreSQLite, StorePostgres:
		if strings.TrimSpace(cfg.Store.DSN) == "" {
			return ErrStoreDSNRequired
		}
	case StoreFirestore:
		if strings.TrimSpace(cfg.Store.FirestoreProject) == "" {
			return ErrFirestoreProjectRequired
		}
	case StoreMongo:
		if strings.TrimSpace(cfg.Store.MongoURI) == "" || strings.TrimSpace(cfg.Store.MongoDatabase) == "" {
			return ErrMongoURIRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStoreProviderUnknown, cfg.Store.Provider)
	}

	if cfg.Cache.Enabled && cfg.Cache.TTL <= 0 {
		return ErrCacheTTLInvalid
	}

	switch normalize(cfg.Auth.Provider) {
	case AuthFirebase:
	case AuthStatic:
		if strings.TrimSpace(cfg.Auth.StaticToken) == "" {
			return ErrStaticTokenRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrAuthProviderUnknown, cfg.Auth.Provider)
	}
	if len(compact(cfg.Auth.AdminEmails)) == 0 {
		return ErrAdminEmailsRequired
	}

	if strings.TrimSpace(cfg.HTTP.Address) == "" {
		return ErrHTTPAddressRequired
	}

	provider := normalize(cfg.Logging.Provider)
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "gologger", "noop":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
