package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr             string
	DatabaseURL      string
	Environment      string
	OutputDir        string
	UploadDir        string
	HourLimit        int64
	GMRHourLimit     int64
	WriteAnalysis    bool
	MonitorSourceDir string
	MonitorDestDir   string
	StabilityPolls   int
	StabilityDelay   time.Duration
	RunMigrations    bool
	MaxBodyBytes     int64
}

func Load() Config {
	return Config{
		Addr:             getEnv("APP_ADDR", ":8080"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		Environment:      getEnv("APP_ENV", "development"),
		OutputDir:        getEnv("OUTPUT_DIR", "."),
		UploadDir:        getEnv("UPLOAD_DIR", os.TempDir()),
		HourLimit:        int64(getEnvInt("HOUR_LIMIT", 192)),
		GMRHourLimit:     int64(getEnvInt("GMR_HOUR_LIMIT", 48)),
		WriteAnalysis:    getEnvBool("WRITE_ANALYSIS", true),
		MonitorSourceDir: getEnv("MONITOR_SOURCE_DIR", ""),
		MonitorDestDir:   getEnv("MONITOR_DEST_DIR", ""),
		StabilityPolls:   getEnvInt("MONITOR_STABILITY_POLLS", 10),
		StabilityDelay:   getEnvDuration("MONITOR_STABILITY_DELAY", 500*time.Millisecond),
		RunMigrations:    getEnvBool("RUN_MIGRATIONS", true),
		MaxBodyBytes:     int64(getEnvInt("MAX_BODY_BYTES", 33554432)),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("OUTPUT_DIR must not be empty")
	}
	if c.HourLimit <= 0 {
		return fmt.Errorf("HOUR_LIMIT must be positive")
	}
	if c.GMRHourLimit <= 0 {
		return fmt.Errorf("GMR_HOUR_LIMIT must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if (c.MonitorSourceDir == "") != (c.MonitorDestDir == "") {
		return fmt.Errorf("MONITOR_SOURCE_DIR and MONITOR_DEST_DIR must be set together")
	}
	if c.StabilityPolls <= 0 {
		return fmt.Errorf("MONITOR_STABILITY_POLLS must be positive")
	}
	return nil
}
