package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "BOARD_WIDTH", "BOARD_HEIGHT", "COMPUTER_MOVE_DELAY_MS", "COMPUTER_POLICY", "ALLOWED_ORIGINS", "FRONTEND_URL"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.BoardWidth != 7 || cfg.BoardHeight != 6 {
		t.Errorf("board = %dx%d, want 7x6", cfg.BoardWidth, cfg.BoardHeight)
	}
	if cfg.ComputerMoveDelay != 800*time.Millisecond {
		t.Errorf("ComputerMoveDelay = %v", cfg.ComputerMoveDelay)
	}
	if cfg.ComputerPolicy != "open" {
		t.Errorf("ComputerPolicy = %q", cfg.ComputerPolicy)
	}
	if AppConfig != cfg {
		t.Error("AppConfig not set")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BOARD_WIDTH", "9")
	t.Setenv("BOARD_HEIGHT", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := LoadConfig()
	if cfg.Port != "9090" || cfg.BoardWidth != 9 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.BoardHeight != 6 {
		t.Errorf("invalid BOARD_HEIGHT should fall back to 6, got %d", cfg.BoardHeight)
	}

	want := []string{"http://localhost:9090", "http://localhost:5173", "https://a.example", "https://b.example"}
	if len(cfg.AllowedOrigins) != len(want) {
		t.Fatalf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
	for i := range want {
		if cfg.AllowedOrigins[i] != want[i] {
			t.Errorf("AllowedOrigins[%d] = %q, want %q", i, cfg.AllowedOrigins[i], want[i])
		}
	}
}
