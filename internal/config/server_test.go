package config

import "testing"

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.SmallBlind != 10 || cfg.BigBlind != 20 {
		t.Fatalf("blinds = %d/%d, want 10/20", cfg.SmallBlind, cfg.BigBlind)
	}
	if cfg.DefaultBuyIn != 1000 {
		t.Fatalf("DefaultBuyIn = %d, want 1000", cfg.DefaultBuyIn)
	}
	if cfg.ActionTimeoutMS != 0 {
		t.Fatalf("ActionTimeoutMS = %d, want 0", cfg.ActionTimeoutMS)
	}
	if cfg.PostgresDSN != "" {
		t.Fatalf("PostgresDSN = %q, want empty", cfg.PostgresDSN)
	}
}

func TestLoadServerParseTypes(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("SMALL_BLIND", "25")
	t.Setenv("BIG_BLIND", "50")
	t.Setenv("DEFAULT_BUYIN", "5000")
	t.Setenv("ACTION_TIMEOUT_MS", "15000")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":9000" {
		t.Fatalf("HTTPAddr = %q, want :9000", cfg.HTTPAddr)
	}
	if cfg.SmallBlind != 25 || cfg.BigBlind != 50 {
		t.Fatalf("blinds = %d/%d, want 25/50", cfg.SmallBlind, cfg.BigBlind)
	}
	if cfg.DefaultBuyIn != 5000 {
		t.Fatalf("DefaultBuyIn = %d, want 5000", cfg.DefaultBuyIn)
	}
	if cfg.ActionTimeoutMS != 15000 {
		t.Fatalf("ActionTimeoutMS = %d, want 15000", cfg.ActionTimeoutMS)
	}
}
