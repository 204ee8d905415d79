// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fiscalcouncil-bg/fcsite/internal/i18n"
)

func languageProbe(got *i18n.Lang) http.Handler {
	return Language(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = GetLanguage(r)
	}))
}

func TestLanguage_DefaultsToBulgarian(t *testing.T) {
	var got i18n.Lang
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	languageProbe(&got).ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, i18n.LangBG, got)
}

func TestLanguage_QueryParam(t *testing.T) {
	var got i18n.Lang
	req := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
	rec := httptest.NewRecorder()
	languageProbe(&got).ServeHTTP(rec, req)

	assert.Equal(t, i18n.LangEN, got)

	// The explicit switch persists a cookie.
	cookies := rec.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == LanguageCookieName {
			found = true
			assert.Equal(t, "en", c.Value)
		}
	}
	assert.True(t, found, "expected language cookie to be set")
}

func TestLanguage_InvalidQueryIgnored(t *testing.T) {
	var got i18n.Lang
	req := httptest.NewRequest(http.MethodGet, "/?lang=de", nil)
	languageProbe(&got).ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, i18n.LangBG, got)
}

func TestLanguage_Cookie(t *testing.T) {
	var got i18n.Lang
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: LanguageCookieName, Value: "en"})
	languageProbe(&got).ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, i18n.LangEN, got)
}

func TestLanguage_AcceptLanguageHeader(t *testing.T) {
	var got i18n.Lang
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	languageProbe(&got).ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, i18n.LangEN, got)
}

func TestLanguage_QueryBeatsCookie(t *testing.T) {
	var got i18n.Lang
	req := httptest.NewRequest(http.MethodGet, "/?lang=bg", nil)
	req.AddCookie(&http.Cookie{Name: LanguageCookieName, Value: "en"})
	languageProbe(&got).ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, i18n.LangBG, got)
}

func TestGetLanguage_NoContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, i18n.LangBG, GetLanguage(req))
}
