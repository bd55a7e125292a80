package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	UploadDir       string
	ExportDir       string
	GhostscriptBin  string
	OCRLanguages    []string
	OCRTimeout      time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of a local env file for dev convenience.
	_ = godotenv.Load()

	return Config{
		Port:            getEnv("PORT", "3000"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		UploadDir:       getEnv("UPLOAD_DIR", "./uploads"),
		ExportDir:       getEnv("EXPORT_DIR", "./exports"),
		GhostscriptBin:  getEnv("GS_BIN", "gs"),
		OCRLanguages:    splitAndTrim(getEnv("OCR_LANGUAGES", "eng,heb")),
		OCRTimeout:      secondsEnv("OCR_TIMEOUT_SECONDS", 120),
	}
}

// EnsureDirs creates the upload and export working directories so the service
// never accepts traffic before they exist.
func (c Config) EnsureDirs() error {
	for _, dir := range []string{c.UploadDir, c.ExportDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}
	return nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func secondsEnv(key string, def int) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return time.Duration(def) * time.Second
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return time.Duration(def) * time.Second
	}
	return time.Duration(n) * time.Second
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "dev"
	}
}
