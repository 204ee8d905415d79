// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Sessions table layout required by sqlite3store.
	_, err = db.Exec(`
		CREATE TABLE sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
		CREATE INDEX sessions_expiry_idx ON sessions(expiry);
	`)
	if err != nil {
		t.Fatalf("failed to create sessions table: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew_DevMode(t *testing.T) {
	db := setupTestDB(t)

	sm := New(db, true)

	if sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = false in dev mode")
	}
	if sm.Cookie.Name == "__Host-session" {
		t.Error("expected default cookie name in dev mode")
	}
}

func TestNew_ProductionMode(t *testing.T) {
	db := setupTestDB(t)

	sm := New(db, false)

	if !sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = true in production mode")
	}
	if sm.Cookie.Name != "__Host-session" {
		t.Errorf("expected __Host-session cookie name, got %q", sm.Cookie.Name)
	}
	if sm.Cookie.Path != "/" {
		t.Errorf("expected Cookie.Path = '/', got %q", sm.Cookie.Path)
	}
}

func TestNew_SessionSettings(t *testing.T) {
	db := setupTestDB(t)

	sm := New(db, true)

	if sm.Lifetime != 24*time.Hour {
		t.Errorf("Lifetime = %v, want 24h", sm.Lifetime)
	}
	if !sm.Cookie.HttpOnly {
		t.Error("expected Cookie.HttpOnly = true")
	}
	if sm.Cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite = Lax, got %v", sm.Cookie.SameSite)
	}
	if sm.Store == nil {
		t.Error("expected Store to be initialized")
	}
}

func TestFlash(t *testing.T) {
	db := setupTestDB(t)
	sm := New(db, true)

	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to load session: %v", err)
	}

	SetFlash(ctx, sm, "success", "записът е създаден")
	kind, msg := PopFlash(ctx, sm)
	if kind != "success" || msg != "записът е създаден" {
		t.Errorf("PopFlash = (%q, %q), want (success, записът е създаден)", kind, msg)
	}

	// Flash is one-shot.
	kind, msg = PopFlash(ctx, sm)
	if kind != "" || msg != "" {
		t.Errorf("second PopFlash = (%q, %q), want empty", kind, msg)
	}
}

func TestFormToken(t *testing.T) {
	db := setupTestDB(t)
	sm := New(db, true)

	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to load session: %v", err)
	}

	token := NewFormToken(ctx, sm)
	if token == "" {
		t.Fatal("expected non-empty form token")
	}

	if !ConsumeFormToken(ctx, sm, token) {
		t.Error("expected fresh token to be accepted")
	}
	if ConsumeFormToken(ctx, sm, token) {
		t.Error("expected reused token to be rejected")
	}
	if ConsumeFormToken(ctx, sm, "") {
		t.Error("expected empty token to be rejected")
	}
}

func TestFormToken_Mismatch(t *testing.T) {
	db := setupTestDB(t)
	sm := New(db, true)

	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to load session: %v", err)
	}

	NewFormToken(ctx, sm)
	if ConsumeFormToken(ctx, sm, "other-token") {
		t.Error("expected mismatched token to be rejected")
	}
	// The stored token was cleared by the failed attempt.
	if ConsumeFormToken(ctx, sm, "other-token") {
		t.Error("expected token to stay rejected")
	}
}
