package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	YNABAPIToken string
	YNABBudgetID string
	YNABBaseURL  string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string
	EmailTo      string

	// ThresholdPercent marks a category as Warning once this share of
	// its budget is spent.
	ThresholdPercent float64
	// UpcomingDaysAhead bounds the upcoming-scheduled window of the
	// weekly recap.
	UpcomingDaysAhead int
	// WeeklyLookbackDays and UncategorizedLookbackDays size the
	// transaction fetch windows.
	WeeklyLookbackDays        int
	UncategorizedLookbackDays int

	Port     string
	LogLevel string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		YNABAPIToken: getEnv("YNAB_API_TOKEN", ""),
		YNABBudgetID: getEnv("YNAB_BUDGET_ID", "default"),
		YNABBaseURL:  getEnv("YNAB_BASE_URL", "https://api.ynab.com/v1"),

		SMTPHost:     getEnv("SMTP_SERVER", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		EmailFrom:    getEnv("EMAIL_FROM", ""),
		EmailTo:      getEnv("EMAIL_TO", ""),

		ThresholdPercent:          getEnvFloat("CATEGORY_SPENT_THRESHOLD", 80),
		UpcomingDaysAhead:         getEnvInt("UPCOMING_DAYS_AHEAD", 14),
		WeeklyLookbackDays:        getEnvInt("WEEKLY_LOOKBACK_DAYS", 7),
		UncategorizedLookbackDays: getEnvInt("UNCATEGORIZED_LOOKBACK_DAYS", 30),

		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),
	}

	if cfg.YNABAPIToken == "" {
		return nil, fmt.Errorf("YNAB_API_TOKEN is required")
	}
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP_SERVER is required")
	}
	if cfg.EmailFrom == "" {
		return nil, fmt.Errorf("EMAIL_FROM is required")
	}
	if cfg.EmailTo == "" {
		return nil, fmt.Errorf("EMAIL_TO is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
