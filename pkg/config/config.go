package config

import (
	"fmt"
	"os"
	"strconv"
)

// HistoryBackendFile stores prediction history in per-user CSV files.
const HistoryBackendFile = "file"

// HistoryBackendPostgres stores prediction history in Postgres tables.
const HistoryBackendPostgres = "postgres"

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Model     ModelConfig
	History   HistoryConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Typesense TypesenseConfig
	Nutrition NutritionConfig
	Advice    AdviceConfig
	OTEL      OTELConfig
	Env       string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// ModelConfig holds classifier artifact configuration
type ModelConfig struct {
	// Path to the JSON-exported random forest artifact
	Path string
	// Path to the background dataset used by the explainer and performance metrics
	BackgroundDataPath string
}

// HistoryConfig selects and configures the history storage backend
type HistoryConfig struct {
	// Backend is either "file" or "postgres"
	Backend string
	// UserDataDir is where the file backend keeps per-user logs
	UserDataDir string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// TypesenseConfig holds Typesense configuration
type TypesenseConfig struct {
	URL    string
	APIKey string
}

// NutritionConfig holds USDA FoodData Central configuration
type NutritionConfig struct {
	Provider string
	APIKey   string
}

// AdviceConfig holds advice generation (Gemini) configuration
type AdviceConfig struct {
	APIKey         string
	Model          string
	TimeoutSeconds int
	RateLimitRPM   int
	RateLimitBurst int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Model: ModelConfig{
			Path:               getEnv("MODEL_PATH", "datasets/diabetes_model.json"),
			BackgroundDataPath: getEnv("BACKGROUND_DATA_PATH", "datasets/diabetes.csv"),
		},
		History: HistoryConfig{
			Backend:     getEnv("HISTORY_BACKEND", HistoryBackendFile),
			UserDataDir: getEnv("USER_DATA_DIR", "user_data"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "diabetes_assistance"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Typesense: TypesenseConfig{
			URL:    getEnv("TYPESENSE_URL", "http://localhost:8108"),
			APIKey: getEnv("TYPESENSE_API_KEY", "xyz"),
		},
		Nutrition: NutritionConfig{
			Provider: getEnv("NUTRITION_PROVIDER", "mock"),
			APIKey:   getEnv("USDA_API_KEY", ""),
		},
		Advice: AdviceConfig{
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			Model:          getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			TimeoutSeconds: getEnvAsInt("ADVICE_TIMEOUT_SECONDS", 20),
			RateLimitRPM:   getEnvAsInt("ADVICE_RATE_LIMIT_RPM", 60),
			RateLimitBurst: getEnvAsInt("ADVICE_RATE_LIMIT_BURST", 5),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "diabetes-assistance"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Env: getEnv("APP_ENV", "development"),
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
