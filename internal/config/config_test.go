package config

import "testing"

func withEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.ServerAddr != ":18080" {
		t.Errorf("expected default ServerAddr, got %q", cfg.ServerAddr)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("expected default allow-all origins, got %v", cfg.AllowedOrigins)
	}
	if cfg.Table.SmallBlind != 1 || cfg.Table.BigBlind != 3 {
		t.Errorf("expected default blinds 1/3, got %d/%d", cfg.Table.SmallBlind, cfg.Table.BigBlind)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	withEnv(t, map[string]string{
		"SERVER_ADDR":     ":9000",
		"ALLOWED_ORIGINS": "https://a.example, https://b.example",
		"SMALL_BLIND":     "5",
		"BIG_BLIND":       "10",
		"BUY_IN":          "1000",
		"AUTO_TOPUP":      "1000",
		"MAX_PLAYERS":     "9",
	})

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.ServerAddr != ":9000" {
		t.Errorf("expected overridden ServerAddr, got %q", cfg.ServerAddr)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://a.example" {
		t.Errorf("expected parsed CSV origins, got %v", cfg.AllowedOrigins)
	}
	if cfg.Table.SmallBlind != 5 || cfg.Table.BigBlind != 10 {
		t.Errorf("expected overridden blinds, got %d/%d", cfg.Table.SmallBlind, cfg.Table.BigBlind)
	}
	if cfg.Table.MaxPlayers != 9 {
		t.Errorf("expected MaxPlayers=9, got %d", cfg.Table.MaxPlayers)
	}
}

func TestFromEnvInvalidInt(t *testing.T) {
	withEnv(t, map[string]string{"MAX_PLAYERS": "not-a-number"})
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected an error for a malformed MAX_PLAYERS value")
	}
}
