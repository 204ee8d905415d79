// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"

	"github.com/fiscalcouncil-bg/fcsite/internal/i18n"
)

// Member categories.
const (
	MemberCategoryMember = "member"
	MemberCategoryExpert = "expert"
)

// MemberCategories contains the valid member categories.
var MemberCategories = []string{MemberCategoryMember, MemberCategoryExpert}

// DefaultOrderIndex is the ordering hint assigned when none is given or the
// input cannot be parsed.
const DefaultOrderIndex = 1

// Member represents a council member or external expert record.
// Listing queries sort by category, then order_index ascending.
type Member struct {
	ID          int64          `json:"id"`
	NameBG      string         `json:"name_bg"`
	NameEN      sql.NullString `json:"name_en,omitempty"`
	PositionBG  string         `json:"position_bg"`
	PositionEN  sql.NullString `json:"position_en,omitempty"`
	BiographyBG sql.NullString `json:"biography_bg,omitempty"`
	BiographyEN sql.NullString `json:"biography_en,omitempty"`
	PhotoURL    sql.NullString `json:"photo_url,omitempty"`
	Category    string         `json:"category"`
	OrderIndex  int64          `json:"order_index"`
	Active      bool           `json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Name resolves the display name for the given language.
func (m *Member) Name(lang i18n.Lang) string {
	return i18n.Resolve(lang, m.NameBG, m.NameEN.String)
}

// Position resolves the display position for the given language.
func (m *Member) Position(lang i18n.Lang) string {
	return i18n.Resolve(lang, m.PositionBG, m.PositionEN.String)
}

// Biography resolves the display biography for the given language.
func (m *Member) Biography(lang i18n.Lang) string {
	return i18n.Resolve(lang, m.BiographyBG.String, m.BiographyEN.String)
}

// IsExpert returns true for expert-council records.
func (m *Member) IsExpert() bool {
	return m.Category == MemberCategoryExpert
}

// IsValidMemberCategory checks whether a category value is one of the known set.
func IsValidMemberCategory(category string) bool {
	return category == MemberCategoryMember || category == MemberCategoryExpert
}
