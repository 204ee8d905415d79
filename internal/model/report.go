// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"strings"
	"time"

	"github.com/fiscalcouncil-bg/fcsite/internal/i18n"
)

// Report types. "Доклад" is the form default.
const (
	ReportTypeReport   = "Доклад"
	ReportTypeOpinion  = "Становище"
	ReportTypeAnalysis = "Анализ"
	ReportTypeAnnual   = "Годишен доклад"
	ReportTypeSpecial  = "Специален доклад"
)

// ReportTypes contains all valid report types in form order.
var ReportTypes = []string{
	ReportTypeReport,
	ReportTypeOpinion,
	ReportTypeAnalysis,
	ReportTypeAnnual,
	ReportTypeSpecial,
}

// Report represents a report or opinion document record.
type Report struct {
	ID            int64          `json:"id"`
	TitleBG       string         `json:"title_bg"`
	TitleEN       sql.NullString `json:"title_en,omitempty"`
	DescriptionBG sql.NullString `json:"description_bg,omitempty"`
	DescriptionEN sql.NullString `json:"description_en,omitempty"`
	ReportType    string         `json:"report_type"`
	KeywordsBG    []string       `json:"keywords_bg,omitempty"`
	KeywordsEN    []string       `json:"keywords_en,omitempty"`
	DocumentURL   sql.NullString `json:"document_url,omitempty"`
	Published     bool           `json:"published"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Title resolves the display title for the given language.
func (r *Report) Title(lang i18n.Lang) string {
	return i18n.Resolve(lang, r.TitleBG, r.TitleEN.String)
}

// Description resolves the display description for the given language.
func (r *Report) Description(lang i18n.Lang) string {
	return i18n.Resolve(lang, r.DescriptionBG.String, r.DescriptionEN.String)
}

// Keywords resolves the display keyword list for the given language.
func (r *Report) Keywords(lang i18n.Lang) []string {
	if lang == i18n.LangEN && len(r.KeywordsEN) > 0 {
		return r.KeywordsEN
	}
	return r.KeywordsBG
}

// SplitKeywords derives an ordered keyword list from a comma-separated input
// string. Entries are trimmed and empties discarded; insertion order is
// preserved. A blank or whitespace-only input yields nil, not an empty list.
func SplitKeywords(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	var keywords []string
	for _, part := range strings.Split(input, ",") {
		if k := strings.TrimSpace(part); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

// JoinKeywords renders a keyword list back into its comma-separated form
// for editing.
func JoinKeywords(keywords []string) string {
	return strings.Join(keywords, ", ")
}

// IsValidReportType checks whether a report type is one of the known set.
func IsValidReportType(reportType string) bool {
	for _, t := range ReportTypes {
		if t == reportType {
			return true
		}
	}
	return false
}
