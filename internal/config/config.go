package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	App      AppConfig      `yaml:"app"`
}

type DatabaseConfig struct {
	Driver             string        `yaml:"driver"`
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SSLMode            string        `yaml:"ssl_mode"`
	SQLitePath         string        `yaml:"sqlite_path"`
	MaxConns           int           `yaml:"max_conns"`
	MinConns           int           `yaml:"min_conns"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	AutoMigrate        bool          `yaml:"auto_migrate"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Expiration string `yaml:"expiration"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Port         int      `yaml:"port"`
	Env          string   `yaml:"env"`
	LogLevel     string   `yaml:"log_level"`
	Timezone     string   `yaml:"timezone"`
	DefaultActor string   `yaml:"default_actor"`
	CORSOrigins  []string `yaml:"cors_origins"`

	location *time.Location
}

func defaults() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:     "postgres",
			Host:       "localhost",
			Port:       5432,
			User:       "postgres",
			Name:       "attendance",
			SSLMode:    "disable",
			SQLitePath: "data/attendance.db",
		},
		JWT: JWTConfig{
			Expiration: "12h",
		},
		App: AppConfig{
			Port:         8080,
			Env:          "development",
			LogLevel:     "info",
			Timezone:     "UTC",
			DefaultActor: "Admin",
			CORSOrigins:  []string{"http://localhost:3000"},
		},
	}
}

// Load reads .env (if present), then the YAML file named by CONFIG_FILE (if
// set), then environment variables. Later sources override earlier ones.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	config := defaults()

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if err := config.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("config: parse yaml: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var err error

	// Database configuration
	c.Database.Driver = strings.ToLower(getEnv("STORE_DRIVER", c.Database.Driver))
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	if c.Database.Port, err = getEnvInt("DB_PORT", c.Database.Port); err != nil {
		return err
	}
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnv("DB_SSL_MODE", c.Database.SSLMode)
	c.Database.SQLitePath = getEnv("SQLITE_PATH", c.Database.SQLitePath)
	if c.Database.MaxConns, err = getEnvInt("DB_MAX_CONNS", c.Database.MaxConns); err != nil {
		return err
	}
	if c.Database.MinConns, err = getEnvInt("DB_MIN_CONNS", c.Database.MinConns); err != nil {
		return err
	}
	c.Database.ConnMaxLifetimeRaw = getEnv("DB_CONN_MAX_LIFETIME", c.Database.ConnMaxLifetimeRaw)
	c.Database.ConnMaxIdleTimeRaw = getEnv("DB_CONN_MAX_IDLE_TIME", c.Database.ConnMaxIdleTimeRaw)
	if c.Database.AutoMigrate, err = getEnvBool("DB_AUTO_MIGRATE", c.Database.AutoMigrate); err != nil {
		return err
	}

	// Application configuration
	if c.App.Port, err = getEnvInt("APP_PORT", c.App.Port); err != nil {
		return err
	}
	c.App.Env = getEnv("APP_ENV", c.App.Env)
	c.App.LogLevel = getEnv("LOG_LEVEL", c.App.LogLevel)
	c.App.Timezone = getEnv("APP_TIMEZONE", c.App.Timezone)
	c.App.DefaultActor = getEnv("APP_DEFAULT_ACTOR", c.App.DefaultActor)
	c.App.CORSOrigins = getEnvSlice("CORS_ALLOWED_ORIGINS", c.App.CORSOrigins)

	// JWT configuration
	c.JWT.Secret = getEnv("JWT_SECRET_KEY", c.JWT.Secret)
	c.JWT.Expiration = getEnv("JWT_EXPIRATION_TIME", c.JWT.Expiration)

	return nil
}

// Validate validates the configuration and resolves derived values.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Port == 0 {
			return fmt.Errorf("DB_PORT is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("DB_USER is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	case "sqlite":
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Database.Driver)
	}

	lifetime, err := parseDurationAllowEmpty(c.Database.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("DB_CONN_MAX_LIFETIME: %w", err)
	}
	c.Database.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(c.Database.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("DB_CONN_MAX_IDLE_TIME: %w", err)
	}
	c.Database.ConnMaxIdleTime = idleTime

	if _, err := time.ParseDuration(c.JWT.Expiration); err != nil {
		return fmt.Errorf("JWT_EXPIRATION_TIME: %w", err)
	}
	if c.App.Env == "production" && c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required in production")
	}
	if strings.TrimSpace(c.App.DefaultActor) == "" {
		return fmt.Errorf("APP_DEFAULT_ACTOR must not be empty")
	}

	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return fmt.Errorf("APP_TIMEZONE: %w", err)
	}
	c.App.location = loc

	return nil
}

// TokenTTL returns the parsed token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	ttl, _ := time.ParseDuration(j.Expiration)
	return ttl
}

// Location returns the timezone that defines "today".
func (a AppConfig) Location() *time.Location {
	if a.location == nil {
		return time.UTC
	}
	return a.location
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (a AppConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: url.Values{"sslmode": {c.Database.SSLMode}}.Encode(),
	}
	return u.String()
}

// StoreDSN returns the connection target for the configured driver.
func (c *Config) StoreDSN() string {
	if c.Database.Driver == "sqlite" {
		return c.Database.SQLitePath
	}
	return c.DatabaseURL()
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	return time.ParseDuration(raw)
}
