// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/fiscalcouncil-bg/fcsite/internal/i18n"
	"github.com/fiscalcouncil-bg/fcsite/internal/middleware"
	"github.com/fiscalcouncil-bg/fcsite/internal/model"
	"github.com/fiscalcouncil-bg/fcsite/internal/render"
	"github.com/fiscalcouncil-bg/fcsite/internal/session"
	"github.com/fiscalcouncil-bg/fcsite/internal/store"
	"github.com/fiscalcouncil-bg/fcsite/internal/util"
)

// ReportHandler serves the admin reports management panel.
type ReportHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(queries *store.Queries, renderer *render.Renderer, sm *scs.SessionManager) *ReportHandler {
	return &ReportHandler{queries: queries, renderer: renderer, sessionManager: sm}
}

// ReportFormData carries the report form page payload.
type ReportFormData struct {
	Item  *model.Report
	Types []string
}

// List renders all reports, drafts included.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	items, err := h.queries.ListReports(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list reports", "error", err)
		return
	}
	err = h.renderer.Render(w, r, "admin/report_list", render.TemplateData{
		Title: i18n.T(lang, "admin.reports"),
		Lang:  lang,
		User:  middleware.GetUser(r),
		Data:  items,
	})
	if err != nil {
		logAndInternalError(w, "failed to render report list", "error", err)
	}
}

// NewForm renders an empty report form.
func (h *ReportHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil, nil, nil)
}

// Create validates the submitted form and inserts a report.
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.sessionManager, redirectReports, i18n.T(lang, "auth.invalid_form_data"))
		return
	}
	if !session.ConsumeFormToken(r.Context(), h.sessionManager, formValue(r, "form_token")) {
		flashError(w, r, h.sessionManager, redirectReports, i18n.T(lang, "flash.duplicate_submit"))
		return
	}

	form, formErrors := h.parseReportForm(r, lang)
	if len(formErrors) > 0 {
		h.renderForm(w, r, nil, formErrors, formMap(r))
		return
	}

	if _, err := h.queries.CreateReport(r.Context(), *form); err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectReports, i18n.T(lang, "flash.save_error"), "failed to create report", "error", err)
		return
	}
	flashSuccess(w, r, h.sessionManager, redirectReports, i18n.T(lang, "flash.created"))
}

// EditForm renders the form pre-filled with an existing report.
func (h *ReportHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	id, err := parseID(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectReports, i18n.T(lang, "flash.not_found"))
		return
	}
	item, err := h.queries.GetReportByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		flashError(w, r, h.sessionManager, redirectReports, i18n.T(lang, "flash.not_found"))
		return
	}
	if err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectReports, i18n.T(lang, "flash.load_error"), "failed to load report", "id", id, "error", err)
		return
	}
	h.renderForm(w, r, &item, nil, nil)
}

// Update validates the submitted form and updates an existing report.
func (h *ReportHandler) Update(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	id, err := parseID(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectReports, i18n.T(lang, "flash.not_found"))
		return
	}
	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.sessionManager, redirectReports, i18n.T(lang, "auth.invalid_form_data"))
		return
	}
	if !session.ConsumeFormToken(r.Context(), h.sessionManager, formValue(r, "form_token")) {
		flashError(w, r, h.sessionManager, redirectReports, i18n.T(lang, "flash.duplicate_submit"))
		return
	}

	current, err := h.queries.GetReportByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		flashError(w, r, h.sessionManager, redirectReports, i18n.T(lang, "flash.not_found"))
		return
	}
	if err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectReports, i18n.T(lang, "flash.load_error"), "failed to load report", "id", id, "error", err)
		return
	}

	form, formErrors := h.parseReportForm(r, lang)
	if len(formErrors) > 0 {
		h.renderForm(w, r, &current, formErrors, formMap(r))
		return
	}

	err = h.queries.UpdateReport(r.Context(), store.UpdateReportParams{
		ID:            id,
		TitleBG:       form.TitleBG,
		TitleEN:       form.TitleEN,
		DescriptionBG: form.DescriptionBG,
		DescriptionEN: form.DescriptionEN,
		ReportType:    form.ReportType,
		KeywordsBG:    form.KeywordsBG,
		KeywordsEN:    form.KeywordsEN,
		DocumentURL:   form.DocumentURL,
		Published:     form.Published,
	})
	if err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectReports, i18n.T(lang, "flash.save_error"), "failed to update report", "id", id, "error", err)
		return
	}
	flashSuccess(w, r, h.sessionManager, redirectReports, i18n.T(lang, "flash.updated"))
}

// Delete removes a report.
func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	id, err := parseID(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectReports, i18n.T(lang, "flash.not_found"))
		return
	}
	if err := h.queries.DeleteReport(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			flashError(w, r, h.sessionManager, redirectReports, i18n.T(lang, "flash.not_found"))
			return
		}
		logAndFlashError(w, r, h.sessionManager, redirectReports, i18n.T(lang, "flash.delete_error"), "failed to delete report", "id", id, "error", err)
		return
	}
	flashSuccess(w, r, h.sessionManager, redirectReports, i18n.T(lang, "flash.deleted"))
}

// TogglePublish flips the published flag of a report.
func (h *ReportHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	id, err := parseID(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectReports, i18n.T(lang, "flash.not_found"))
		return
	}
	item, err := h.queries.GetReportByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		flashError(w, r, h.sessionManager, redirectReports, i18n.T(lang, "flash.not_found"))
		return
	}
	if err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectReports, i18n.T(lang, "flash.load_error"), "failed to load report", "id", id, "error", err)
		return
	}
	if err := h.queries.SetReportPublished(r.Context(), id, !item.Published); err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectReports, i18n.T(lang, "flash.save_error"), "failed to toggle report", "id", id, "error", err)
		return
	}
	key := "flash.published"
	if item.Published {
		key = "flash.unpublished"
	}
	flashSuccess(w, r, h.sessionManager, redirectReports, i18n.T(lang, key))
}

func (h *ReportHandler) renderForm(w http.ResponseWriter, r *http.Request, item *model.Report, formErrors, form map[string]string) {
	lang := middleware.GetLanguage(r)
	err := h.renderer.Render(w, r, "admin/report_form", render.TemplateData{
		Title:     i18n.T(lang, "admin.reports"),
		Lang:      lang,
		User:      middleware.GetUser(r),
		Data:      ReportFormData{Item: item, Types: model.ReportTypes},
		Errors:    formErrors,
		Form:      form,
		FormToken: session.NewFormToken(r.Context(), h.sessionManager),
	})
	if err != nil {
		logAndInternalError(w, "failed to render report form", "error", err)
	}
}

// parseReportForm extracts and validates the report fields from a parsed form.
// Keywords arrive as comma-separated text in each language.
func (h *ReportHandler) parseReportForm(r *http.Request, lang i18n.Lang) (*store.CreateReportParams, map[string]string) {
	formErrors := make(map[string]string)

	titleBG := formValue(r, "title_bg")
	if titleBG == "" {
		formErrors["title_bg"] = i18n.T(lang, "validate.title_bg_required")
	}
	reportType := formValue(r, "report_type")
	if !model.IsValidReportType(reportType) {
		reportType = model.ReportTypeReport
	}
	if len(formErrors) > 0 {
		return nil, formErrors
	}

	return &store.CreateReportParams{
		TitleBG:       titleBG,
		TitleEN:       util.NullStringFromValue(formValue(r, "title_en")),
		DescriptionBG: util.NullStringFromValue(formValue(r, "description_bg")),
		DescriptionEN: util.NullStringFromValue(formValue(r, "description_en")),
		ReportType:    reportType,
		KeywordsBG:    model.SplitKeywords(formValue(r, "keywords_bg")),
		KeywordsEN:    model.SplitKeywords(formValue(r, "keywords_en")),
		DocumentURL:   util.NullStringFromValue(formValue(r, "document_url")),
		Published:     checkbox(r, "published"),
	}, nil
}
