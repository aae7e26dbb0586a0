package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("CLIENT_URL", "")
	t.Setenv("ARK_TIMEOUT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("UPLOAD_MAX_BYTES", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":5000" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}
	if cfg.Server.ClientOrigin != "http://localhost:5173" {
		t.Fatalf("unexpected client origin %q", cfg.Server.ClientOrigin)
	}
	if cfg.AI.Timeout != 30*time.Second {
		t.Fatalf("unexpected AI timeout %v", cfg.AI.Timeout)
	}
	if cfg.Upload.MaxBytes != 10<<20 {
		t.Fatalf("unexpected upload limit %d", cfg.Upload.MaxBytes)
	}
	if cfg.Database.Enabled() {
		t.Fatal("database should be disabled without DATABASE_URL")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestLoadAddrPassthrough(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "127.0.0.1:8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ARK_TIMEOUT", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid ARK_TIMEOUT")
	}
}

func TestAIConfigEnabled(t *testing.T) {
	if (AIConfig{}).Enabled() {
		t.Fatal("empty config should be disabled")
	}
	if !(AIConfig{Model: "m", APIKey: "k"}).Enabled() {
		t.Fatal("api key + model should enable")
	}
	if !(AIConfig{Model: "m", AccessKey: "a", SecretKey: "s"}).Enabled() {
		t.Fatal("ak/sk + model should enable")
	}
	if (AIConfig{Model: "m"}).Enabled() {
		t.Fatal("model without credentials should be disabled")
	}
}
