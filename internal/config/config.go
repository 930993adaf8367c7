// internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration, loaded from the
// environment (optionally seeded from a .env file).
type Config struct {
	DatabaseURL   string
	ListenAddr    string
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
	FromEmail     string
	SweepSchedule string // cron expression for the unattended due sweep
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on OS environment variables")
	}

	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		ListenAddr:    os.Getenv("LISTEN_ADDR"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		FromEmail:     os.Getenv("FROM_EMAIL"),
		SweepSchedule: os.Getenv("SWEEP_SCHEDULE"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.SweepSchedule == "" {
		// every minute; the delivery engine's own window check decides
		// what actually gets sent
		cfg.SweepSchedule = "* * * * *"
	}

	port := os.Getenv("SMTP_PORT")
	if port == "" {
		cfg.SMTPPort = 587
	} else {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", port, err)
		}
		cfg.SMTPPort = p
	}

	return cfg, nil
}
