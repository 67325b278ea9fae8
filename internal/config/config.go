package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBConn    string
	LogLevel  string
	JWTSecret string

	// Forecast defaults applied when a request omits them
	ForecastBuffer    float64
	ForecastMonths    int
	ForecastMaxMonths int

	// SMTP settings for buffer alerts
	AlertsEnabled bool
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SenderEmail   string

	// Cron schedules
	RecurringSchedule string
	AlertSchedule     string
}

// NewConfig loads configuration from environment variables. A .env file in
// the working directory is read first when present.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DBConn:            getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=budget sslmode=disable"),
		LogLevel:          getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:         getEnv("JWT_SECRET", "secret"),
		AlertsEnabled:     getEnv("ALERTS_ENABLED", "false") == "true",
		SMTPHost:          getEnv("SMTP_HOST", "localhost"),
		SMTPPort:          getEnv("SMTP_PORT", "587"),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		SenderEmail:       getEnv("SENDER_EMAIL", "budget@localhost"),
		RecurringSchedule: getEnv("RECURRING_SCHEDULE", "0 5 * * *"),
		AlertSchedule:     getEnv("ALERT_SCHEDULE", "0 7 * * *"),
	}

	var err error
	if cfg.ForecastBuffer, err = strconv.ParseFloat(getEnv("FORECAST_BUFFER", "100"), 64); err != nil {
		return nil, fmt.Errorf("invalid FORECAST_BUFFER: %w", err)
	}
	if cfg.ForecastMonths, err = strconv.Atoi(getEnv("FORECAST_MONTHS", "3")); err != nil {
		return nil, fmt.Errorf("invalid FORECAST_MONTHS: %w", err)
	}
	if cfg.ForecastMaxMonths, err = strconv.Atoi(getEnv("FORECAST_MAX_MONTHS", "60")); err != nil {
		return nil, fmt.Errorf("invalid FORECAST_MAX_MONTHS: %w", err)
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.ForecastBuffer < 0 {
		return nil, fmt.Errorf("FORECAST_BUFFER must not be negative")
	}
	if cfg.ForecastMonths < 0 || cfg.ForecastMaxMonths < cfg.ForecastMonths {
		return nil, fmt.Errorf("FORECAST_MONTHS must be between 0 and FORECAST_MAX_MONTHS")
	}
	if cfg.AlertsEnabled && cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP_HOST is required when ALERTS_ENABLED is set")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
