package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// DB
	Env    string // "dev" | "prod"
	DBPath string // e.g. "./data/timeclock.db"

	// Export
	ExportPath       string // overrides USB-mount discovery when set
	ExportPassphrase string // empty = exports written unencrypted

	// Kiosk input
	ScanDebounce time.Duration // repeated scans of the same badge within this window are ignored
}

func FromEnv() Config {
	env := strings.ToLower(getenvDefault("TIMECLOCK_ENV", "dev"))
	if env != "dev" && env != "prod" {
		// fail-soft: treat unknown as dev
		env = "dev"
	}

	dbPath := getenvDefault("TIMECLOCK_DB_PATH", "./data/timeclock.db")

	debounceMs := getenvInt("TIMECLOCK_SCAN_DEBOUNCE_MS", 1200)

	return Config{
		Env:    env,
		DBPath: dbPath,

		ExportPath:       os.Getenv("TIMECLOCK_EXPORT_PATH"),
		ExportPassphrase: os.Getenv("TIMECLOCK_EXPORT_PASSPHRASE"),

		ScanDebounce: time.Duration(debounceMs) * time.Millisecond,
	}
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
