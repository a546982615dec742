// Package config loads server-wide settings from the environment,
// following the reference main.go's strings.TrimSpace(os.Getenv(...))
// plus default-fallback idiom.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"cashtable/internal/engine"
)

// Config is the process-wide configuration: listen address, CORS
// policy, and the table's starting parameters.
type Config struct {
	ServerAddr     string
	AllowedOrigins []string
	Table          engine.Config
}

// FromEnv loads Config from the environment, applying spec.md §6's
// stated defaults wherever a variable is unset.
func FromEnv() (Config, error) {
	cfg := Config{
		ServerAddr:     envOrDefault("SERVER_ADDR", ":18080"),
		AllowedOrigins: splitCSV(envOrDefault("ALLOWED_ORIGINS", "*")),
		Table:          engine.DefaultConfig(),
	}

	var err error
	if cfg.Table.SmallBlind, err = envInt64OrDefault("SMALL_BLIND", cfg.Table.SmallBlind); err != nil {
		return Config{}, err
	}
	if cfg.Table.BigBlind, err = envInt64OrDefault("BIG_BLIND", cfg.Table.BigBlind); err != nil {
		return Config{}, err
	}
	if cfg.Table.BuyIn, err = envInt64OrDefault("BUY_IN", cfg.Table.BuyIn); err != nil {
		return Config{}, err
	}
	if cfg.Table.AutoTopupAmount, err = envInt64OrDefault("AUTO_TOPUP", cfg.Table.AutoTopupAmount); err != nil {
		return Config{}, err
	}
	maxPlayers, err := envIntOrDefault("MAX_PLAYERS", cfg.Table.MaxPlayers)
	if err != nil {
		return Config{}, err
	}
	cfg.Table.MaxPlayers = maxPlayers

	// engine.NewTable revalidates this Config; config.FromEnv doesn't
	// duplicate that check since engine.Config.validate is unexported.
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt64OrDefault(key string, fallback int64) (int64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s=%q: %w", key, raw, err)
	}
	return v, nil
}

func envIntOrDefault(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s=%q: %w", key, raw, err)
	}
	return v, nil
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
