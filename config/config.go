package config

import (
	"log/slog"
	"os"
)

type Config struct {
	// MongoDB configuration
	MongoURI     string
	DatabaseName string

	// Token signing secret. The default is insecure and only exists so the
	// app can boot in local development.
	JWTSecret string

	// Server configuration
	Port string
	Env  string
}

func LoadConfig() *Config {
	cfg := &Config{
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName: getEnv("MONGO_DB_NAME", "ids_dashboard"),
		JWTSecret:    getEnv("JWT_SECRET", "fallback_secret"),
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("APP_ENV", "development"),
	}

	if os.Getenv("JWT_SECRET") == "" {
		slog.Warn("JWT_SECRET not set, using insecure default")
	}

	return cfg
}

// IsProduction reports whether the app runs with production settings.
// Controls the Secure flag on the auth cookie.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
