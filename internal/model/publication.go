// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"

	"github.com/fiscalcouncil-bg/fcsite/internal/i18n"
)

// Publication types. "публикация" is the form default.
const (
	PublicationTypeGeneral  = "публикация"
	PublicationTypeReport   = "доклад"
	PublicationTypeAnalysis = "анализ"
	PublicationTypeStudy    = "изследване"
	PublicationTypeAdvice   = "препоръки"
)

// PublicationTypes contains all valid publication types in form order.
var PublicationTypes = []string{
	PublicationTypeGeneral,
	PublicationTypeReport,
	PublicationTypeAnalysis,
	PublicationTypeStudy,
	PublicationTypeAdvice,
}

// Publication represents a publication record.
type Publication struct {
	ID              int64          `json:"id"`
	TitleBG         string         `json:"title_bg"`
	TitleEN         sql.NullString `json:"title_en,omitempty"`
	DescriptionBG   sql.NullString `json:"description_bg,omitempty"`
	DescriptionEN   sql.NullString `json:"description_en,omitempty"`
	ContentBG       sql.NullString `json:"content_bg,omitempty"`
	ContentEN       sql.NullString `json:"content_en,omitempty"`
	PublicationType string         `json:"publication_type"`
	DocumentURL     sql.NullString `json:"document_url,omitempty"`
	Published       bool           `json:"published"`
	Featured        bool           `json:"featured"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Title resolves the display title for the given language.
func (p *Publication) Title(lang i18n.Lang) string {
	return i18n.Resolve(lang, p.TitleBG, p.TitleEN.String)
}

// Description resolves the display description for the given language.
func (p *Publication) Description(lang i18n.Lang) string {
	return i18n.Resolve(lang, p.DescriptionBG.String, p.DescriptionEN.String)
}

// Content resolves the display content for the given language.
func (p *Publication) Content(lang i18n.Lang) string {
	return i18n.Resolve(lang, p.ContentBG.String, p.ContentEN.String)
}

// IsValidPublicationType checks whether a publication type is one of the known set.
func IsValidPublicationType(publicationType string) bool {
	for _, t := range PublicationTypes {
		if t == publicationType {
			return true
		}
	}
	return false
}
