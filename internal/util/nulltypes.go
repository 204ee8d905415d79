// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions.
package util

import (
	"database/sql"
	"strconv"
)

// NullStringFromValue creates a sql.NullString from a string value.
// Returns a valid NullString if the string is non-empty, otherwise returns an invalid one.
// Optional bilingual fields use this so that an empty form input stores NULL, not "".
func NullStringFromValue(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ParseIntDefault parses a string into an int, falling back to def when the
// input is empty or not numeric. Member order_index inputs coerce through this.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if val, err := strconv.Atoi(s); err == nil {
		return val
	}
	return def
}
