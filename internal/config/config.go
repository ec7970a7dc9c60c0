// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the application's full configuration tree.
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	API       APIConfig
	Scheduler SchedulerConfig
	Metrics   MetricsConfig
}

// AppConfig is the base process configuration.
type AppConfig struct {
	Name     string
	Env      string
	Port     int
	LogLevel string
}

// DatabaseConfig configures the Postgres schedule-history store.
type DatabaseConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN returns the libpq connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// APIConfig configures the thin HTTP wrapper.
type APIConfig struct {
	Timeout time.Duration
}

// SchedulerConfig configures the solve core's defaults.
type SchedulerConfig struct {
	DefaultTimeout    time.Duration
	NumCandidates     int
	SolutionPoolSize  int
	OptimizationLevel int // 1=fast, 2=balanced, 3=thorough
}

// MetricsConfig configures the /metrics endpoint.
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration from environment variables, falling back
// to documented defaults.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:     getEnv("APP_NAME", "weekshift"),
			Env:      getEnv("APP_ENV", "development"),
			Port:     getEnvInt("APP_PORT", 7012),
			LogLevel: getEnv("APP_LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "weekshift"),
			User:            getEnv("DB_USER", "weekshift"),
			Password:        getEnv("DB_PASSWORD", "weekshift"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		API: APIConfig{
			Timeout: getEnvDuration("API_TIMEOUT", 30*time.Second),
		},
		Scheduler: SchedulerConfig{
			DefaultTimeout:    getEnvDuration("SCHEDULER_TIMEOUT", 30*time.Second),
			NumCandidates:     getEnvInt("SCHEDULER_NUM_CANDIDATES", 15),
			SolutionPoolSize:  getEnvInt("SCHEDULER_SOLUTION_POOL_SIZE", 3),
			OptimizationLevel: getEnvInt("SCHEDULER_OPTIMIZATION_LEVEL", 2),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c *Config) IsTest() bool {
	return c.App.Env == "test"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
