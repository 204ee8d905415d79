// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"

	"github.com/fiscalcouncil-bg/fcsite/internal/i18n"
)

// News categories. The Bulgarian values are stored verbatim; "новини" is the
// form default.
const (
	NewsCategoryNews     = "новини"
	NewsCategoryReport   = "доклад"
	NewsCategoryOpinion  = "становище"
	NewsCategoryAnalysis = "анализ"
	NewsCategoryPress    = "прессъобщение"
)

// NewsCategories contains all valid news categories in form order.
var NewsCategories = []string{
	NewsCategoryNews,
	NewsCategoryReport,
	NewsCategoryOpinion,
	NewsCategoryAnalysis,
	NewsCategoryPress,
}

// News represents a news item. Bulgarian fields are the primary language;
// English fields are optional.
type News struct {
	ID        int64          `json:"id"`
	TitleBG   string         `json:"title_bg"`
	TitleEN   sql.NullString `json:"title_en,omitempty"`
	ContentBG string         `json:"content_bg"`
	ContentEN sql.NullString `json:"content_en,omitempty"`
	ExcerptBG sql.NullString `json:"excerpt_bg,omitempty"`
	ExcerptEN sql.NullString `json:"excerpt_en,omitempty"`
	Category  string         `json:"category"`
	ImageURL  sql.NullString `json:"image_url,omitempty"`
	Slug      string         `json:"slug"`
	Published bool           `json:"published"`
	Featured  bool           `json:"featured"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Title resolves the display title for the given language.
func (n *News) Title(lang i18n.Lang) string {
	return i18n.Resolve(lang, n.TitleBG, n.TitleEN.String)
}

// Content resolves the display content for the given language.
func (n *News) Content(lang i18n.Lang) string {
	return i18n.Resolve(lang, n.ContentBG, n.ContentEN.String)
}

// Excerpt resolves the display excerpt for the given language.
func (n *News) Excerpt(lang i18n.Lang) string {
	return i18n.Resolve(lang, n.ExcerptBG.String, n.ExcerptEN.String)
}

// IsValidNewsCategory checks whether a category value is one of the known set.
func IsValidNewsCategory(category string) bool {
	for _, c := range NewsCategories {
		if c == category {
			return true
		}
	}
	return false
}
