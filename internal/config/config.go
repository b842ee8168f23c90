package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"      // For environment variables
	"strings" // For parsing the origin list

	"github.com/joho/godotenv"   // For loading .env files
	"github.com/sirupsen/logrus" // Logging library
)

// Config holds the application configuration
type Config struct {
	AppPort        string   // Application port
	DBPath         string   // Path to the SQLite database file
	JWTSecret      string   // Secret key for signing session tokens
	AllowedOrigins []string // Origins allowed to make cross-origin requests
	IsProd         bool     // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	cfg := &Config{
		AppPort:        getEnv("APP_PORT", "8080"),     // Application port
		DBPath:         getEnv("DB_PATH", "pixels.db"), // SQLite database file
		JWTSecret:      os.Getenv("JWT_SECRET"),        // Session token secret
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "https://serverboi.org,http://localhost:3000")),
		IsProd:         os.Getenv("IS_PROD") == "true", // Is production environment
	}
	// Fall back to a random per-process secret when none is configured;
	// existing sessions are invalidated on restart in that case.
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = randomSecret()
		logrus.Warn("JWT_SECRET not set, using a random per-process secret")
	}
	return cfg
}

// getEnv returns the value of the environment variable or a fallback default
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseOrigins splits a comma-separated origin list, trimming whitespace
func parseOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// randomSecret generates a random 16-byte hex-encoded secret
func randomSecret() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		logrus.Fatalf("failed to generate session secret: %v", err)
	}
	return hex.EncodeToString(b)
}
