package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port     string
	Backend  string
	Env      string
	Postgres PostgresConfig
	Redis    RedisConfig
	Mongo    MongoConfig
}

// PostgresConfig holds the relational store connection and pool settings.
type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// RedisConfig holds the balance cache connection settings.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	PoolSize int
}

// MongoConfig holds the document store connection settings.
type MongoConfig struct {
	URI      string
	Database string
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found", "error", err)
	}
}

// Load reads the configuration from the environment, after LoadEnv.
func Load() Config {
	LoadEnv()

	return Config{
		Port:    GetEnv("PORT", "9999"),
		Backend: GetEnv("DATABASE_BACKEND", "cached"),
		Env:     GetEnv("ENV", "development"),
		Postgres: PostgresConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "ledger"),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),
			PoolSize: GetIntEnv("REDIS_POOL_SIZE", 10),
		},
		Mongo: MongoConfig{
			URI:      GetEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: GetEnv("MONGO_DATABASE", "ledger"),
		},
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
		slog.Warn("invalid integer in environment, using default", "key", key, "default", defaultVal)
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		slog.Warn("invalid duration in environment, using default", "key", key, "default", defaultVal)
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
