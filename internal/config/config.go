package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	HSN       HSNConfig
	S3        S3Config
	Log       LogConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
	MaxLineItems    int           `mapstructure:"max_line_items"`
}

// IsProduction reports whether the server runs in production mode.
func (s *ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// HSNConfig controls where HSN/SAC rates come from.
// Source "postgres" loads the master at startup; "none" disables rate
// resolution, so every line item must carry its own rate.
type HSNConfig struct {
	Source string `mapstructure:"source"`
}

// S3Config holds AWS S3 settings used to fetch the HSN master workbook.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig holds per-client request limits.
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerSecond int  `mapstructure:"requests_per_second"`
	Burst             int  `mapstructure:"burst"`
}

// Load reads configuration from environment variables with the INVONEST_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVONEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_line_items", 500)

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "invonest")
	v.SetDefault("db.password", "invonest_secret")
	v.SetDefault("db.name", "invonest_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	v.SetDefault("hsn.source", "postgres")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Rate limit defaults
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 20)
	v.SetDefault("rate_limit.burst", 40)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "INVONEST_SERVER_PORT",
		"server.read_timeout":            "INVONEST_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "INVONEST_SERVER_WRITE_TIMEOUT",
		"server.shutdown_timeout":        "INVONEST_SERVER_SHUTDOWN_TIMEOUT",
		"server.environment":             "INVONEST_SERVER_ENVIRONMENT",
		"server.max_line_items":          "INVONEST_SERVER_MAX_LINE_ITEMS",
		"db.host":                        "INVONEST_DB_HOST",
		"db.port":                        "INVONEST_DB_PORT",
		"db.user":                        "INVONEST_DB_USER",
		"db.password":                    "INVONEST_DB_PASSWORD",
		"db.name":                        "INVONEST_DB_NAME",
		"db.sslmode":                     "INVONEST_DB_SSLMODE",
		"db.max_open":                    "INVONEST_DB_MAX_OPEN",
		"db.max_idle":                    "INVONEST_DB_MAX_IDLE",
		"hsn.source":                     "INVONEST_HSN_SOURCE",
		"s3.region":                      "INVONEST_S3_REGION",
		"s3.endpoint":                    "INVONEST_S3_ENDPOINT",
		"s3.access_key":                  "INVONEST_S3_ACCESS_KEY",
		"s3.secret_key":                  "INVONEST_S3_SECRET_KEY",
		"log.level":                      "INVONEST_LOG_LEVEL",
		"log.format":                     "INVONEST_LOG_FORMAT",
		"cors.allowed_origins":           "INVONEST_CORS_ALLOWED_ORIGINS",
		"rate_limit.enabled":             "INVONEST_RATE_LIMIT_ENABLED",
		"rate_limit.requests_per_second": "INVONEST_RATE_LIMIT_REQUESTS_PER_SECOND",
		"rate_limit.burst":               "INVONEST_RATE_LIMIT_BURST",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INVONEST_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVONEST_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
		MaxLineItems:    v.GetInt("server.max_line_items"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.HSN = HSNConfig{
		Source: strings.ToLower(v.GetString("hsn.source")),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}
	cfg.RateLimit = RateLimitConfig{
		Enabled:           v.GetBool("rate_limit.enabled"),
		RequestsPerSecond: v.GetInt("rate_limit.requests_per_second"),
		Burst:             v.GetInt("rate_limit.burst"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.HSN.Source {
	case "postgres", "none":
	default:
		return fmt.Errorf("invalid hsn.source %q: must be postgres or none", c.HSN.Source)
	}
	if c.Server.MaxLineItems <= 0 {
		return fmt.Errorf("server.max_line_items must be positive, got %d", c.Server.MaxLineItems)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate_limit requires positive requests_per_second and burst")
	}
	return nil
}
