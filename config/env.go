package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries the platform-wide settings that the WP-era option store used
// to hold. It is built once at startup and passed into component constructors;
// core logic never reads the environment directly.
type Config struct {
	Port        string
	CompanyName string

	// Visit cadence.
	VisitIntervalDays int
	// Threshold (in days) used by the daily reminder sweep.
	ReminderThresholdDays int
	// Threshold used for the dashboard due list.
	DashboardThresholdDays int
	// Hour of day (0-23, server local time) the reminder sweep fires.
	ReminderHour int

	// Default number of approved reports included in a school trend.
	TrendLimit int

	// Object storage for report photos.
	GCSBucket string

	// Bounded timeout, in seconds, for calls to external collaborators
	// (notification sender, AI summary generator).
	ExternalTimeoutSeconds int
}

const (
	DefaultVisitIntervalDays = 90
	DefaultTrendLimit        = 10
)

func LoadConfig() Config {
	// Load env from .env when present; real deployments set env directly.
	godotenv.Load()

	return Config{
		Port:                   envOr("PORT", "8080"),
		CompanyName:            envOr("CQA_COMPANY_NAME", "Chroma Early Learning"),
		VisitIntervalDays:      envIntOr("CQA_VISIT_INTERVAL_DAYS", DefaultVisitIntervalDays),
		ReminderThresholdDays:  envIntOr("CQA_REMINDER_THRESHOLD_DAYS", 14),
		DashboardThresholdDays: envIntOr("CQA_DASHBOARD_THRESHOLD_DAYS", 30),
		ReminderHour:           envIntOr("CQA_REMINDER_HOUR", 6),
		TrendLimit:             envIntOr("CQA_TREND_LIMIT", DefaultTrendLimit),
		GCSBucket:              os.Getenv("GCS_BUCKET"),
		ExternalTimeoutSeconds: envIntOr("CQA_EXTERNAL_TIMEOUT_SECONDS", 10),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
