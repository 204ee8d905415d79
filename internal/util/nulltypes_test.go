// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestNullStringFromValue(t *testing.T) {
	if ns := NullStringFromValue("hello"); !ns.Valid || ns.String != "hello" {
		t.Errorf("NullStringFromValue(\"hello\") = %+v, want valid \"hello\"", ns)
	}
	if ns := NullStringFromValue(""); ns.Valid {
		t.Errorf("NullStringFromValue(\"\") should be invalid, got %+v", ns)
	}
}

func TestParseIntDefault(t *testing.T) {
	tests := []struct {
		input string
		def   int
		want  int
	}{
		{"5", 1, 5},
		{"", 1, 1},
		{"abc", 1, 1},
		{"-3", 1, -3},
		{"2.5", 7, 7},
	}
	for _, tt := range tests {
		if got := ParseIntDefault(tt.input, tt.def); got != tt.want {
			t.Errorf("ParseIntDefault(%q, %d) = %d, want %d", tt.input, tt.def, got, tt.want)
		}
	}
}
