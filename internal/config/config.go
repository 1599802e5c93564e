// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"

	defaultTurnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"
)

// Config holds all configuration for the application
type Config struct {
	Env       string
	BaseURL   string
	Server    ServerConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	Media     MediaConfig
	SMTP      SMTPConfig
	Turnstile TurnstileConfig
	Quote     QuoteConfig
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port       int
	TrustProxy bool
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver     string
	SQLitePath string
	Host       string
	Port       int
	User       string
	Password   string
	DBName     string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// MediaConfig holds media indexer settings
type MediaConfig struct {
	Dir        string
	CacheTTL   time.Duration
	RefreshKey string
}

// SMTPConfig holds outbound mail settings
type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	From        string
	NotifyEmail string
}

// Enabled reports whether enough settings are present to send mail
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

// TurnstileConfig holds challenge verification settings
type TurnstileConfig struct {
	Secret    string
	VerifyURL string
}

// Enabled reports whether challenge verification is turned on
func (c TurnstileConfig) Enabled() bool {
	return c.Secret != ""
}

// QuoteConfig holds quote request intake settings
type QuoteConfig struct {
	RateLimit  int
	RateWindow time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	cfg.Env = getEnv("APP_ENV", "development")
	cfg.BaseURL = strings.TrimRight(getEnv("BASE_URL", "https://stilessandgravel.com"), "/")

	// Server configuration
	port, err := strconv.Atoi(getEnv("PORT", "3000"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	cfg.Server.Port = port

	trustProxy, err := strconv.ParseBool(getEnv("TRUST_PROXY", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRUST_PROXY: %w", err)
	}
	cfg.Server.TrustProxy = trustProxy

	// Logging configuration
	cfg.Logging.Level = getEnv("LOG_LEVEL", "info")

	// CORS configuration
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ORIGIN"))

	// Media configuration
	cfg.Media.Dir = getEnv("MEDIA_DIR", "./media")
	cacheTTL, err := time.ParseDuration(getEnv("MEDIA_CACHE_TTL", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid MEDIA_CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return nil, fmt.Errorf("MEDIA_CACHE_TTL must be positive")
	}
	cfg.Media.CacheTTL = cacheTTL
	cfg.Media.RefreshKey = os.Getenv("MEDIA_REFRESH_KEY")

	// Database configuration
	if err := loadDatabase(cfg); err != nil {
		return nil, err
	}

	// SMTP configuration (optional, notifications are skipped without it)
	cfg.SMTP.Host = os.Getenv("SMTP_HOST")
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	cfg.SMTP.Port = smtpPort
	cfg.SMTP.Username = os.Getenv("SMTP_USER")
	cfg.SMTP.Password = os.Getenv("SMTP_PASS")
	cfg.SMTP.From = getEnv("SMTP_FROM", "no-reply@stilessandgravel.com")
	cfg.SMTP.NotifyEmail = getEnv("NOTIFY_EMAIL", "info@stilessandgravel.com")

	// Turnstile configuration (optional, verification is skipped without a secret)
	cfg.Turnstile.Secret = os.Getenv("TURNSTILE_SECRET")
	cfg.Turnstile.VerifyURL = getEnv("TURNSTILE_VERIFY_URL", defaultTurnstileVerifyURL)

	// Quote intake configuration
	rateLimit, err := strconv.Atoi(getEnv("QUOTE_RATE_LIMIT", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid QUOTE_RATE_LIMIT: %w", err)
	}
	if rateLimit <= 0 {
		return nil, fmt.Errorf("QUOTE_RATE_LIMIT must be positive")
	}
	cfg.Quote.RateLimit = rateLimit

	rateWindow, err := time.ParseDuration(getEnv("QUOTE_RATE_WINDOW", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid QUOTE_RATE_WINDOW: %w", err)
	}
	if rateWindow <= 0 {
		return nil, fmt.Errorf("QUOTE_RATE_WINDOW must be positive")
	}
	cfg.Quote.RateWindow = rateWindow

	return cfg, nil
}

func loadDatabase(cfg *Config) error {
	cfg.Database.Driver = getEnv("DB_DRIVER", DriverSQLite)

	switch cfg.Database.Driver {
	case DriverSQLite:
		cfg.Database.SQLitePath = getEnv("SQLITE_PATH", "./data/quotes.db")
		return nil
	case DriverMySQL:
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s, must be '%s' or '%s'", cfg.Database.Driver, DriverSQLite, DriverMySQL)
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	cfg.Database.Host = dbHost

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "3306"))
	if err != nil {
		return fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		return fmt.Errorf("DB_USER is required")
	}
	cfg.Database.User = dbUser

	cfg.Database.Password = os.Getenv("DB_PASSWORD")

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	cfg.Database.DBName = dbName

	return nil
}

// DSN returns the database connection string for the configured driver
func (c *Config) DSN() string {
	if c.Database.Driver == DriverMySQL {
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
			c.Database.User,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.DBName,
		)
	}
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", c.Database.SQLitePath)
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// parseOrigins splits a comma-separated origin list, defaulting to all origins
func parseOrigins(raw string) []string {
	if raw == "" {
		return []string{"*"}
	}

	origins := strings.Split(raw, ",")
	allowed := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed = append(allowed, origin)
		}
	}
	if len(allowed) == 0 {
		return []string{"*"}
	}
	return allowed
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
