package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Search defaults
	Folder     string
	Extensions string
	Workers    int

	// HTTP server
	Port        string
	APIKey      string
	ReadTimeout time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Folder:     envOr("MDSEARCH_FOLDER", "."),
		Extensions: envOr("MDSEARCH_EXTENSIONS", ".md"),
		Workers:    envInt("MDSEARCH_WORKERS", 10),

		Port:        envOr("PORT", "8090"),
		APIKey:      os.Getenv("MDSEARCH_API_KEY"),
		ReadTimeout: envDuration("MDSEARCH_READ_TIMEOUT", 30*time.Second),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.Workers <= 0 {
		cfg.Workers = 10
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 30 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Port)
	}
	if c.Folder == "" {
		return fmt.Errorf("MDSEARCH_FOLDER must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
