// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"cyrillic", "Годишен доклад", "godishen-doklad"},
		{"mixed", "Доклад 2024", "doklad-2024"},
		{"accents", "Crème brûlée", "creme-brulee"},
		{"multiple spaces", "a  b   c", "a-b-c"},
		{"special chars", "what?! (really)", "what-really"},
		{"leading trailing", " -trim me- ", "trim-me"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"a", "abc", "a-b-c", "doklad-2024", "x1"}
	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "-abc", "abc-", "a--b", "ABC", "с-кирилица", "a b"}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}
