package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	AI       AIConfig
}

type ServerConfig struct {
	Host          string
	Port          int
	Secure        bool   // Send HSTS
	Environment   string // "development", "production", "test"
	Debug         bool
	LogLevel      string // debug, info, warn, error; DEBUG=true forces debug
	MigrationsDir string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// AuthConfig describes how callers are identified. AnonKey is the public key every
// client sends in the apikey header; JWTSecret verifies the bearer access tokens.
type AuthConfig struct {
	AnonKey   string
	JWTSecret string
	Issuer    string
}

type AIConfig struct {
	GeminiAPIKey string
	GeminiModel  string
	Stub         bool
	RateLimit    int // Generations per user per hour; 0 disables the limiter
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:          getEnv("SERVER_HOST", "0.0.0.0"),
			Port:          getEnvInt("SERVER_PORT", 8080),
			Secure:        getEnvBool("SERVER_SECURE", false),
			Environment:   getEnv("APP_ENV", "development"),
			Debug:         getEnvBool("DEBUG", false),
			LogLevel:      getEnv("LOG_LEVEL", "info"),
			MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "startup"),
			Password: getEnv("DB_PASSWORD", "startup"),
			DBName:   getEnv("DB_NAME", "microstartup"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 10),
			MinConns: getEnvInt("DB_MIN_CONNS", 2),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			PoolSize: getEnvInt("REDIS_POOL_SIZE", 10),
		},
		Auth: AuthConfig{
			AnonKey:   getEnv("STORE_ANON_KEY", ""),
			JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
			Issuer:    getEnv("AUTH_ISSUER", "microstartup"),
		},
		AI: AIConfig{
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash-lite"),
			Stub:         getEnvBool("AI_STUB", false),
			RateLimit:    getEnvInt("AI_RATE_LIMIT", 20),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects configurations the server cannot authenticate requests with.
// A missing Gemini key is not an error here: generate calls fail per request instead.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}
	if c.Auth.AnonKey == "" {
		return fmt.Errorf("STORE_ANON_KEY is required")
	}
	if c.Database.MaxConns < 1 || c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS and DB_MAX_CONNS must satisfy 0 <= min <= max, max >= 1")
	}
	if c.AI.RateLimit < 0 {
		return fmt.Errorf("AI_RATE_LIMIT must not be negative")
	}
	if c.Server.Environment == "production" && c.AI.Stub {
		return fmt.Errorf("AI_STUB cannot be enabled in production")
	}
	return nil
}

// LoadDotEnv copies KEY=VALUE pairs from path into the environment for local runs.
// Variables that are already set keep their values. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
