package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Catalog sources.
const (
	CatalogSourceStatic   = "static"
	CatalogSourceDatabase = "database"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Session  SessionConfig
	Promo    PromoConfig
	Wizard   WizardConfig
	Catalog  CatalogConfig
	Exports  ExportsConfig
	Metrics  MetricsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SessionConfig governs the enrollment session clock and reaper.
type SessionConfig struct {
	Duration     time.Duration
	ExpiryGrace  time.Duration
	ReapInterval time.Duration
	AnchorPrefix string
}

// PromoConfig drives the simulated promocode lookup.
type PromoConfig struct {
	MinLength       int
	ApplyDelay      time.Duration
	Code            string
	DiscountPercent int
	Label           string
}

// WizardConfig models the deliberate UX delays around step transitions.
type WizardConfig struct {
	StepDelay   time.Duration
	SubmitDelay time.Duration
}

// CatalogConfig selects the reference data source and its cache tuning.
type CatalogConfig struct {
	Source    string
	PackageID string
	CacheTTL  time.Duration
}

// ExportsConfig controls summary export storage and signed downloads.
type ExportsConfig struct {
	Enabled         bool
	StorageDir      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
}

// MetricsConfig gates Prometheus exposure.
type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Session = SessionConfig{
		Duration:     parseDuration(v.GetString("SESSION_DURATION"), time.Hour),
		ExpiryGrace:  parseDuration(v.GetString("SESSION_EXPIRY_GRACE"), 2*time.Second),
		ReapInterval: parseDuration(v.GetString("SESSION_REAP_INTERVAL"), time.Second),
		AnchorPrefix: v.GetString("SESSION_ANCHOR_PREFIX"),
	}

	cfg.Promo = PromoConfig{
		MinLength:       v.GetInt("PROMO_MIN_LENGTH"),
		ApplyDelay:      parseDuration(v.GetString("PROMO_APPLY_DELAY"), 1200*time.Millisecond),
		Code:            v.GetString("PROMO_CODE"),
		DiscountPercent: v.GetInt("PROMO_DISCOUNT_PERCENT"),
		Label:           v.GetString("PROMO_LABEL"),
	}

	cfg.Wizard = WizardConfig{
		StepDelay:   parseDuration(v.GetString("WIZARD_STEP_DELAY"), 800*time.Millisecond),
		SubmitDelay: parseDuration(v.GetString("WIZARD_SUBMIT_DELAY"), 1500*time.Millisecond),
	}

	cfg.Catalog = CatalogConfig{
		Source:    v.GetString("CATALOG_SOURCE"),
		PackageID: v.GetString("CATALOG_PACKAGE_ID"),
		CacheTTL:  parseDuration(v.GetString("CATALOG_CACHE_TTL"), 10*time.Minute),
	}

	cfg.Exports = ExportsConfig{
		Enabled:         v.GetBool("ENABLE_EXPORTS"),
		StorageDir:      v.GetString("EXPORTS_STORAGE_DIR"),
		SignedURLSecret: v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), 30*time.Minute),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "enroll_flow")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SESSION_DURATION", "60m")
	v.SetDefault("SESSION_EXPIRY_GRACE", "2s")
	v.SetDefault("SESSION_REAP_INTERVAL", "1s")
	v.SetDefault("SESSION_ANCHOR_PREFIX", "enroll:anchor:")

	v.SetDefault("PROMO_MIN_LENGTH", 5)
	v.SetDefault("PROMO_APPLY_DELAY", "1200ms")
	v.SetDefault("PROMO_CODE", "SAVE20")
	v.SetDefault("PROMO_DISCOUNT_PERCENT", 20)
	v.SetDefault("PROMO_LABEL", "20% Off Promocode Applied")

	v.SetDefault("WIZARD_STEP_DELAY", "800ms")
	v.SetDefault("WIZARD_SUBMIT_DELAY", "1500ms")

	v.SetDefault("CATALOG_SOURCE", CatalogSourceStatic)
	v.SetDefault("CATALOG_PACKAGE_ID", "pkg-001")
	v.SetDefault("CATALOG_CACHE_TTL", "10m")

	v.SetDefault("ENABLE_EXPORTS", false)
	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "30m")

	v.SetDefault("ENABLE_METRICS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
