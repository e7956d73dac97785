package config

import (
	"testing"
)

func TestLoadRejectsOutOfRangeBcryptCost(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	t.Setenv("BCRYPT_COST", "40")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for cost above bcrypt maximum")
	}

	t.Setenv("BCRYPT_COST", "2")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for cost below bcrypt minimum")
	}

	t.Setenv("BCRYPT_COST", "not-a-number")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric cost")
	}
}

func TestLoadAcceptsValidBcryptCost(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("BCRYPT_COST", "12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("expected cost 12, got %d", cfg.BcryptCost)
	}
}

func TestLoadDefaultsBcryptCost(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("BCRYPT_COST", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BcryptCost != defaultBcryptCost {
		t.Fatalf("expected default cost %d, got %d", defaultBcryptCost, cfg.BcryptCost)
	}
}
