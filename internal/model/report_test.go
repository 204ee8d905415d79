// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"reflect"
	"testing"
)

func TestSplitKeywords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"trims and drops empties", "a, b , ,c", []string{"a", "b", "c"}},
		{"preserves insertion order", "фискална политика, бюджет, дълг", []string{"фискална политика", "бюджет", "дълг"}},
		{"single keyword", "бюджет", []string{"бюджет"}},
		{"empty input", "", nil},
		{"whitespace only", "   ", nil},
		{"commas only", ", ,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitKeywords(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitKeywords(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitKeywordsBlankIsAbsent(t *testing.T) {
	// A blank input must resolve to an absent value, not an empty list.
	if got := SplitKeywords("  "); got != nil {
		t.Errorf("SplitKeywords of blank input = %#v, want nil", got)
	}
}

func TestJoinKeywords(t *testing.T) {
	if got := JoinKeywords([]string{"a", "b", "c"}); got != "a, b, c" {
		t.Errorf("JoinKeywords = %q", got)
	}
	if got := JoinKeywords(nil); got != "" {
		t.Errorf("JoinKeywords(nil) = %q, want empty", got)
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	in := []string{"фискална политика", "бюджет"}
	if got := SplitKeywords(JoinKeywords(in)); !reflect.DeepEqual(got, in) {
		t.Errorf("round trip = %#v, want %#v", got, in)
	}
}

func TestIsValidReportType(t *testing.T) {
	for _, rt := range ReportTypes {
		if !IsValidReportType(rt) {
			t.Errorf("IsValidReportType(%q) = false", rt)
		}
	}
	if IsValidReportType("несъществуващ") {
		t.Error("IsValidReportType accepted an unknown type")
	}
}
