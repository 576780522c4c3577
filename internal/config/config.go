package config

import (
	"fmt"
	"os"
	"strconv"
)

// Storage drivers. Memory mode runs the whole subsystem without a database,
// which is how the app operates in the field before it can sync.
const (
	StorageMySQL  = "mysql"
	StorageMemory = "memory"
)

// Config holds all configuration for the service.
type Config struct {
	Port        string
	Origin      string
	Environment string
	JWTSecret   string

	StorageDriver    string
	Database         DatabaseConfig
	Redis            RedisConfig
	Log              LogConfig
	AlertBuffer      int
	ProviderSeedFile string
}

// DatabaseConfig holds database connection details.
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// RedisConfig holds the alert-publish transport settings. An empty Addr
// disables the Redis transport and alerts go to the service log instead.
type RedisConfig struct {
	Addr     string
	Password string
	Channel  string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "health_ai"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	alertBuffer, err := strconv.Atoi(getEnv("ALERT_BUFFER", "64"))
	if err != nil {
		return nil, fmt.Errorf("invalid ALERT_BUFFER: %w", err)
	}

	driver := getEnv("STORAGE_DRIVER", StorageMySQL)
	if driver != StorageMySQL && driver != StorageMemory {
		return nil, fmt.Errorf("invalid STORAGE_DRIVER %q", driver)
	}

	return &Config{
		Port:          getEnv("PORT", "3001"),
		Origin:        getEnv("ORIGIN", "http://localhost:4200"),
		Environment:   getEnv("APP_ENV", "development"),
		JWTSecret:     getEnv("JWT_SECRET", "default_jwt_secret"),
		StorageDriver: driver,
		Database:      dbConfig,
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			Channel:  getEnv("REDIS_ALERT_CHANNEL", "health-ai:risk-alerts"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		AlertBuffer:      alertBuffer,
		ProviderSeedFile: getEnv("PROVIDER_SEED_FILE", ""),
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
