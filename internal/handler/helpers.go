// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the HTTP handlers for the public site and the
// admin panel.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/fiscalcouncil-bg/fcsite/internal/session"
)

// parseID extracts and validates the {id} URL parameter.
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// flashAndRedirect stores a flash message and redirects.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, sm *scs.SessionManager, url, kind, message string) {
	session.SetFlash(r.Context(), sm, kind, message)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// flashError stores an error flash and redirects.
func flashError(w http.ResponseWriter, r *http.Request, sm *scs.SessionManager, url, message string) {
	flashAndRedirect(w, r, sm, url, "error", message)
}

// flashSuccess stores a success flash and redirects.
func flashSuccess(w http.ResponseWriter, r *http.Request, sm *scs.SessionManager, url, message string) {
	flashAndRedirect(w, r, sm, url, "success", message)
}

// logAndInternalError logs an error and responds with a 500. Reserved for
// render failures; store failures in the admin panels go through
// logAndFlashError so the admin stays in the panel.
func logAndInternalError(w http.ResponseWriter, msg string, args ...any) {
	slog.Error(msg, args...)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// logAndFlashError logs a failed store call, stores an error flash, and
// redirects back into the admin panel.
func logAndFlashError(w http.ResponseWriter, r *http.Request, sm *scs.SessionManager, url, message, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	flashError(w, r, sm, url, message)
}

// formValue returns a trimmed form value.
func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// checkbox reports whether a checkbox form field was checked.
func checkbox(r *http.Request, key string) bool {
	v := r.FormValue(key)
	return v == "on" || v == "true" || v == "1"
}
