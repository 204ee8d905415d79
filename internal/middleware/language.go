// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"

	"github.com/fiscalcouncil-bg/fcsite/internal/i18n"
)

// ContextKeyLanguage carries the resolved display language.
const ContextKeyLanguage ContextKey = "language"

// LanguageCookieName is the cookie name for the language preference.
const LanguageCookieName = "fc_lang"

// Language resolves the display language for a request and stores it in the
// context. Priority order:
//  1. Query parameter ?lang=XX (explicit switch, updates the cookie)
//  2. Cookie preference
//  3. Accept-Language header
//  4. Bulgarian
func Language(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := resolveLanguage(w, r)
		ctx := context.WithValue(r.Context(), ContextKeyLanguage, lang)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func resolveLanguage(w http.ResponseWriter, r *http.Request) i18n.Lang {
	if q := r.URL.Query().Get("lang"); q != "" && i18n.IsSupported(q) {
		lang := i18n.ParseLang(q)
		SetLanguageCookie(w, lang)
		return lang
	}

	if cookie, err := r.Cookie(LanguageCookieName); err == nil && i18n.IsSupported(cookie.Value) {
		return i18n.ParseLang(cookie.Value)
	}

	if accept := r.Header.Get("Accept-Language"); accept != "" {
		if matched := i18n.MatchLanguage(accept); matched != "" {
			return matched
		}
	}

	return i18n.LangBG
}

// GetLanguage retrieves the display language from the request context,
// defaulting to Bulgarian.
func GetLanguage(r *http.Request) i18n.Lang {
	lang, ok := r.Context().Value(ContextKeyLanguage).(i18n.Lang)
	if !ok {
		return i18n.LangBG
	}
	return lang
}

// SetLanguageCookie persists the language preference for a year.
func SetLanguageCookie(w http.ResponseWriter, lang i18n.Lang) {
	http.SetCookie(w, &http.Cookie{
		Name:     LanguageCookieName,
		Value:    string(lang),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
