// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginProtection_AccountLockout(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       1000,
		IPBurst:           1000,
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})

	email := "admin@fiscalcouncil.bg"

	locked, _ := lp.RecordFailedAttempt(email)
	assert.False(t, locked)
	locked, _ = lp.RecordFailedAttempt(email)
	assert.False(t, locked)

	locked, duration := lp.RecordFailedAttempt(email)
	assert.True(t, locked)
	assert.Equal(t, time.Minute, duration)

	isLocked, remaining := lp.IsAccountLocked(email)
	assert.True(t, isLocked)
	assert.Positive(t, remaining)
}

func TestLoginProtection_SuccessClearsAttempts(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		MaxFailedAttempts: 3,
		IPRateLimit:       1000,
		IPBurst:           1000,
	})

	email := "editor@fiscalcouncil.bg"
	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	lp.RecordSuccessfulLogin(email)

	// Counter restarted, so two more failures do not lock.
	locked, _ := lp.RecordFailedAttempt(email)
	assert.False(t, locked)
	locked, _ = lp.RecordFailedAttempt(email)
	assert.False(t, locked)
}

func TestLoginProtection_UnknownAccountNotLocked(t *testing.T) {
	lp := NewLoginProtection(DefaultLoginProtectionConfig())
	locked, _ := lp.IsAccountLocked("nobody@example.bg")
	assert.False(t, locked)
}

func TestLoginProtection_Middleware(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit: 0.001, // effectively one request per window
		IPBurst:     1,
	})
	handler := lp.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// GET is never rate limited.
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	// First POST passes, second is throttled.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
