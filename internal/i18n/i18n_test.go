// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"sync"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		lang Lang
		bg   string
		en   string
		want string
	}{
		{"bg selected returns bg", LangBG, "Начало", "Home", "Начало"},
		{"en selected with en present", LangEN, "Начало", "Home", "Home"},
		{"en selected with en empty falls back", LangEN, "Начало", "", "Начало"},
		{"bg selected ignores en", LangBG, "Начало", "Home", "Начало"},
		{"both empty", LangEN, "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.lang, tt.bg, tt.en); got != tt.want {
				t.Errorf("Resolve(%q, %q, %q) = %q, want %q", tt.lang, tt.bg, tt.en, got, tt.want)
			}
		})
	}
}

func TestResolveReferentialTransparency(t *testing.T) {
	// Same inputs must always produce the same output.
	for i := 0; i < 3; i++ {
		if got := Resolve(LangEN, "бг", "en"); got != "en" {
			t.Fatalf("call %d: Resolve = %q, want %q", i, got, "en")
		}
	}
}

func TestParseLang(t *testing.T) {
	tests := []struct {
		input string
		want  Lang
	}{
		{"bg", LangBG},
		{"en", LangEN},
		{"EN", LangEN},
		{"", LangBG},
		{"de", LangBG},
	}
	for _, tt := range tests {
		if got := ParseLang(tt.input); got != tt.want {
			t.Errorf("ParseLang(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCatalog(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if TranslationCount(LangBG) == 0 {
		t.Error("no Bulgarian translations loaded")
	}
	if TranslationCount(LangEN) == 0 {
		t.Error("no English translations loaded")
	}

	if got := T(LangEN, "nav.news"); got != "News" {
		t.Errorf("T(en, nav.news) = %q, want %q", got, "News")
	}
	if got := T(LangBG, "nav.news"); got != "Новини" {
		t.Errorf("T(bg, nav.news) = %q, want %q", got, "Новини")
	}

	// Unknown key falls through to the key itself.
	if got := T(LangEN, "does.not.exist"); got != "does.not.exist" {
		t.Errorf("T of unknown key = %q, want key", got)
	}

	// Formatted message.
	if got := T(LangEN, "common.shown_of", 3, 10); got != "Showing 3 of 10 results" {
		t.Errorf("T with args = %q", got)
	}
}

func TestMatchLanguageWithoutInit(t *testing.T) {
	// Lookups in packages that never call Init load the embedded catalog
	// on first use.
	catalog = nil
	catalogOnce = sync.Once{}
	if got := MatchLanguage("en-US,en;q=0.9"); got != LangEN {
		t.Errorf("MatchLanguage before Init = %q, want %q", got, LangEN)
	}
	if got := T(LangEN, "nav.home"); got == "nav.home" {
		t.Errorf("T before Init returned the key, catalog not loaded")
	}
}

func TestMatchLanguage(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}

	tests := []struct {
		accept string
		want   Lang
	}{
		{"bg-BG,bg;q=0.9", LangBG},
		{"en-US,en;q=0.9", LangEN},
		{"en", LangEN},
	}
	for _, tt := range tests {
		if got := MatchLanguage(tt.accept); got != tt.want {
			t.Errorf("MatchLanguage(%q) = %q, want %q", tt.accept, got, tt.want)
		}
	}
}
