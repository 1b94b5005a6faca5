package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the civic report service.
type Config struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Server configuration
	Port string

	// Classifier configuration
	ModelPath string

	// Generative text configuration; an empty key disables the remote
	// strategy and every letter comes from the local template.
	GeminiAPIKey string
	GeminiModel  string

	// Reverse geocoding
	NominatimBaseURL string

	// Uploaded image storage
	UploadDir string

	// RabbitMQ submitted-report events
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string

	// Spatial query defaults
	DefaultRadiusKm float64

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		// Database defaults
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "server"),
		DBPassword: getEnv("DB_PASSWORD", "secret_app"),
		DBName:     getEnv("DB_NAME", "nagrik_nivedan"),

		// Server defaults
		Port: getEnv("PORT", "8080"),

		// Classifier defaults
		ModelPath: getEnv("MODEL_PATH", "civic_issue_classifier.json"),

		// Generative text defaults
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		// Geocoding defaults
		NominatimBaseURL: getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),

		// Upload defaults
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),

		// RabbitMQ defaults; empty URL disables publishing
		AMQPURL:        getEnv("AMQP_URL", ""),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "civic_reports"),
		AMQPRoutingKey: getEnv("AMQP_ROUTING_KEY", "report.submitted"),

		// Spatial defaults
		DefaultRadiusKm: getFloatEnv("DEFAULT_RADIUS_KM", 5),

		// Logging defaults
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getFloatEnv gets a float environment variable or returns a default
// value.
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
