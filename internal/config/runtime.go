package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultJWTAccessTTL    = "24h"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultMaxCourtPerSlot = "20"
	defaultSlotTimes       = "09:00,14:00"
	defaultCheckoutTTL     = "30m"
	defaultReceiptMailer   = "true"
)

// RuntimeConfig carries everything the API process reads from the
// environment. Slot times are the fixed daily catalog of bookable
// times; they are not stored per course.
type RuntimeConfig struct {
	AppEnv          string
	DatabaseURL     string
	JWTSecret       string
	JWTAccessTTL    time.Duration
	MaxCourtPerSlot int
	SlotTimes       []string
	CheckoutTTL     time.Duration
	ReceiptMailerOn bool
}

func LoadRuntimeConfig() (*RuntimeConfig, error) {
	cfg := &RuntimeConfig{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", "courtbook.db"))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.CheckoutTTL, err = parseDurationEnv("CHECKOUT_TTL", defaultCheckoutTTL)
	if err != nil {
		return nil, err
	}

	cfg.MaxCourtPerSlot, err = parseIntEnv("MAX_COURT_PER_SLOT", defaultMaxCourtPerSlot)
	if err != nil {
		return nil, err
	}
	if cfg.MaxCourtPerSlot <= 0 {
		return nil, fmt.Errorf("MAX_COURT_PER_SLOT must be positive, got %d", cfg.MaxCourtPerSlot)
	}

	cfg.SlotTimes, err = parseSlotTimesEnv("SLOT_TIMES", defaultSlotTimes)
	if err != nil {
		return nil, err
	}

	cfg.ReceiptMailerOn = strings.EqualFold(getEnv("RECEIPT_MAILER", defaultReceiptMailer), "true")

	return cfg, nil
}

func getEnv(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(name, def string) (time.Duration, error) {
	raw := getEnv(name, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}

func parseIntEnv(name, def string) (int, error) {
	raw := getEnv(name, def)
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return n, nil
}

func parseSlotTimesEnv(name, def string) ([]string, error) {
	raw := getEnv(name, def)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, err := time.Parse("15:04", p); err != nil {
			return nil, fmt.Errorf("invalid %s entry %q: %w", name, p, err)
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s must contain at least one HH:MM slot", name)
	}
	return out, nil
}
