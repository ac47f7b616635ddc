package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Config holds runtime configuration. Values come from defaults, then an
// optional YAML file named by CONFIG_FILE, then environment variables.
type Config struct {
	Port          string        `yaml:"port"`
	StoreDriver   string        `yaml:"store_driver"`
	DatabaseURL   string        `yaml:"database_url"`
	MongoURI      string        `yaml:"mongo_uri"`
	MongoDatabase string        `yaml:"mongo_database"`
	SecretKey     string        `yaml:"secret_key"`
	JWTIssuer     string        `yaml:"jwt_issuer"`
	UserTokenTTL  time.Duration `yaml:"user_token_ttl"`
	AdminTokenTTL time.Duration `yaml:"admin_token_ttl"`
	CORSOrigins   []string      `yaml:"cors_allowed_origins"`
	LogLevel      string        `yaml:"log_level"`
	LogFormat     string        `yaml:"log_format"`
}

// Defaults returns a configuration that only lacks a secret and a store location.
func Defaults() Config {
	return Config{
		Port:          "8080",
		StoreDriver:   DriverPostgres,
		MongoDatabase: "jobboard",
		JWTIssuer:     "jobboard-backend",
		UserTokenTTL:  24 * time.Hour,
		AdminTokenTTL: time.Hour,
		CORSOrigins:   []string{"*"},
		LogLevel:      "info",
		LogFormat:     "json",
	}
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Defaults()
	if path := strings.TrimSpace(getenv("CONFIG_FILE")); path != "" {
		if err := overlayYAML(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	cfg.Port = fallback(getenv("PORT"), cfg.Port)
	cfg.StoreDriver = strings.ToLower(fallback(getenv("STORE_DRIVER"), cfg.StoreDriver))
	cfg.DatabaseURL = fallback(getenv("DATABASE_URL"), cfg.DatabaseURL)
	cfg.MongoURI = fallback(getenv("MONGO_URI"), cfg.MongoURI)
	cfg.MongoDatabase = fallback(getenv("MONGO_DATABASE"), cfg.MongoDatabase)
	cfg.SecretKey = fallback(getenv("SECRET_KEY"), fallback(getenv("JWT_SECRET"), cfg.SecretKey))
	cfg.JWTIssuer = fallback(getenv("JWT_ISSUER"), cfg.JWTIssuer)
	cfg.UserTokenTTL = minutes(getenv("USER_TOKEN_TTL_MINUTES"), cfg.UserTokenTTL)
	cfg.AdminTokenTTL = minutes(getenv("ADMIN_TOKEN_TTL_MINUTES"), cfg.AdminTokenTTL)
	if origins := getenv("CORS_ALLOWED_ORIGINS"); strings.TrimSpace(origins) != "" {
		cfg.CORSOrigins = parseCSV(origins)
	}
	cfg.LogLevel = fallback(getenv("LOG_LEVEL"), cfg.LogLevel)
	cfg.LogFormat = fallback(getenv("LOG_FORMAT"), cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the selected store has its connection settings.
func (c Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY is required")
	}
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.UserTokenTTL <= 0 || c.AdminTokenTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	return nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// overlayYAML decodes path over cfg. A missing file leaves cfg untouched.
func overlayYAML(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func minutes(value string, def time.Duration) time.Duration {
	if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
		return time.Duration(n) * time.Minute
	}
	return def
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
