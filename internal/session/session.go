// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session wires the scs session manager to the SQLite-backed store
// and holds the session key conventions used across the admin area.
package session

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
)

// Session keys.
const (
	KeyUserID    = "user_id"
	KeyFlash     = "flash"
	KeyFlashKind = "flash_kind"
	KeyReturnTo  = "return_to"
	keyFormToken = "form_token"
)

// New creates a session manager backed by the sessions table.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)
	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev
	if !isDev {
		sm.Cookie.Name = "__Host-session"
		sm.Cookie.Path = "/"
	}
	return sm
}

// SetFlash stores a one-shot notification message for the next rendered page.
func SetFlash(ctx context.Context, sm *scs.SessionManager, kind, message string) {
	sm.Put(ctx, KeyFlash, message)
	sm.Put(ctx, KeyFlashKind, kind)
}

// PopFlash retrieves and clears the pending flash message, if any.
func PopFlash(ctx context.Context, sm *scs.SessionManager) (kind, message string) {
	message = sm.PopString(ctx, KeyFlash)
	kind = sm.PopString(ctx, KeyFlashKind)
	if kind == "" && message != "" {
		kind = "info"
	}
	return kind, message
}

// NewFormToken issues a one-time token bound to the session. Forms embed it
// as a hidden field; consuming it on submit rejects duplicate submissions.
func NewFormToken(ctx context.Context, sm *scs.SessionManager) string {
	token := uuid.NewString()
	sm.Put(ctx, keyFormToken, token)
	return token
}

// ConsumeFormToken checks a submitted token against the stored one and
// clears it. Returns false for a missing, stale, or reused token.
func ConsumeFormToken(ctx context.Context, sm *scs.SessionManager, token string) bool {
	stored := sm.PopString(ctx, keyFormToken)
	return token != "" && token == stored
}
