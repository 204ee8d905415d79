// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/fiscalcouncil-bg/fcsite/internal/auth"
	"github.com/fiscalcouncil-bg/fcsite/internal/i18n"
	"github.com/fiscalcouncil-bg/fcsite/internal/middleware"
	"github.com/fiscalcouncil-bg/fcsite/internal/render"
	"github.com/fiscalcouncil-bg/fcsite/internal/session"
	"github.com/fiscalcouncil-bg/fcsite/internal/store"
)

// AuthHandler handles the login and logout routes.
type AuthHandler struct {
	queries         *store.Queries
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(queries *store.Queries, renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		queries:         queries,
		renderer:        renderer,
		sessionManager:  sm,
		loginProtection: lp,
	}
}

// LoginForm renders the login page. Authenticated users go straight to the
// admin dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if userID := h.sessionManager.GetInt64(r.Context(), session.KeyUserID); userID > 0 {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}

	lang := middleware.GetLanguage(r)
	err := h.renderer.Render(w, r, "auth/login", render.TemplateData{
		Title: i18n.T(lang, "auth.login"),
		Lang:  lang,
	})
	if err != nil {
		logAndInternalError(w, "failed to render login page", "error", err)
	}
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)

	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.sessionManager, redirectLogin, i18n.T(lang, "auth.invalid_form_data"))
		return
	}

	email := formValue(r, "email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		flashError(w, r, h.sessionManager, redirectLogin, i18n.T(lang, "auth.email_password_required"))
		return
	}

	if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
		flashError(w, r, h.sessionManager, redirectLogin,
			i18n.T(lang, "auth.account_locked", formatDuration(remaining)))
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Debug("login attempt for non-existent user", "email", email)
		} else {
			slog.Error("database error during login", "error", err)
		}
		// Record the failure even for unknown accounts to prevent
		// user enumeration by timing.
		h.recordFailure(w, r, lang, email)
		return
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil || !valid {
		if err != nil {
			slog.Error("password check error", "error", err)
		}
		h.recordFailure(w, r, lang, email)
		return
	}

	h.loginProtection.RecordSuccessfulLogin(email)

	// Re-hash if stored parameters are stale.
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), user.ID, newHash); err != nil {
				slog.Error("failed to re-hash password", "error", err, "user_id", user.ID)
			}
		}
	}

	if err := h.queries.UpdateUserLastLogin(r.Context(), user.ID); err != nil {
		slog.Error("failed to update last login time", "error", err, "user_id", user.ID)
	}

	// Renew the token to prevent session fixation.
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), session.KeyUserID, user.ID)

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)

	returnTo := h.sessionManager.PopString(r.Context(), session.KeyReturnTo)
	if returnTo == "" || returnTo[0] != '/' {
		returnTo = redirectAdmin
	}
	flashSuccess(w, r, h.sessionManager, returnTo, i18n.T(lang, "auth.welcome_back", user.Name))
}

func (h *AuthHandler) recordFailure(w http.ResponseWriter, r *http.Request, lang i18n.Lang, email string) {
	if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
		flashError(w, r, h.sessionManager, redirectLogin,
			i18n.T(lang, "auth.too_many_attempts", formatDuration(lockDuration)))
		return
	}
	flashError(w, r, h.sessionManager, redirectLogin, i18n.T(lang, "auth.invalid_credentials"))
}

// Logout destroys the session and returns to the public homepage.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetInt64(r.Context(), session.KeyUserID)

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}
	slog.Info("user logged out", "user_id", userID)

	lang := middleware.GetLanguage(r)
	flashAndRedirect(w, r, h.sessionManager, redirectHome, "info", i18n.T(lang, "auth.logged_out"))
}

// formatDuration renders a lockout duration for flash messages.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d s", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%d min", int(d.Minutes()))
	}
	return fmt.Sprintf("%.1f h", d.Hours())
}
