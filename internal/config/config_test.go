// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"strings"
	"testing"
)

// strongSecret has three character classes and sufficient length.
const strongSecret = "Abcdefghij1234567890klmnopqrstuv"

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("FC_SESSION_SECRET", "")
	if _, err := Load(); err == nil {
		t.Error("Load succeeded without FC_SESSION_SECRET")
	}
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("FC_SESSION_SECRET", "too-short")
	_, err := Load()
	if err == nil {
		t.Fatal("Load accepted a short secret")
	}
	if !strings.Contains(err.Error(), "at least") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadRejectsKnownWeakSecret(t *testing.T) {
	t.Setenv("FC_SESSION_SECRET", "change-me-to-32-byte-secret-key!")
	if _, err := Load(); err == nil {
		t.Error("Load accepted a known weak secret")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FC_SESSION_SECRET", strongSecret)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want 8080", cfg.ServerPort)
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
	if !cfg.LocalizeContent {
		t.Error("LocalizeContent should default to true")
	}
	if cfg.UseRedisCache() {
		t.Error("redis cache should be off by default")
	}
	if got := cfg.ServerAddr(); got != "localhost:8080" {
		t.Errorf("ServerAddr = %q", got)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FC_SESSION_SECRET", strongSecret)
	t.Setenv("FC_SERVER_PORT", "9000")
	t.Setenv("FC_ENV", "production")
	t.Setenv("FC_LOCALIZE_CONTENT", "false")
	t.Setenv("FC_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerPort != 9000 || cfg.IsDevelopment() || cfg.LocalizeContent {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache = false with FC_REDIS_URL set")
	}
}
