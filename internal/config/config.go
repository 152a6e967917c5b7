package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the process reads from the environment.
// A .env file is honored when present, same as the node-era deployments.
type Config struct {
	HTTPPort    string
	DatabaseURL string
	SQLitePath  string

	JWTSecret    string
	JWTExpiresIn time.Duration

	// Timezone anchors the expiry computation and create_date rendering.
	Timezone string

	AdminEmail    string
	AdminPassword string

	VonageAPIKey    string
	VonageAPISecret string
	SMSFrom         string
	SMSTo           string

	StaticDir string
	LogLevel  string
}

func Load() Config {
	_ = godotenv.Load()
	return Config{
		HTTPPort:        getenv("HTTP_PORT", "8000"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SQLitePath:      getenv("SQLITE_PATH", "sims.db"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTExpiresIn:    getDuration("JWT_EXPIRES_IN", 24*time.Hour),
		Timezone:        getenv("TIMEZONE", "America/Los_Angeles"),
		AdminEmail:      os.Getenv("ADMIN_EMAIL"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		VonageAPIKey:    os.Getenv("VONAGE_ACCESS_KEY_ID"),
		VonageAPISecret: os.Getenv("VONAGE_SECRET_KEY"),
		SMSFrom:         os.Getenv("SMS_FROM"),
		SMSTo:           os.Getenv("SMS_TO"),
		StaticDir:       os.Getenv("STATIC_DIR"),
		LogLevel:        os.Getenv("LOG_LEVEL"),
	}
}

// Location resolves the configured time zone, falling back to UTC when the
// name does not resolve on the host.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if s := os.Getenv(key); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
	}
	return fallback
}
