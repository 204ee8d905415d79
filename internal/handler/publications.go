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

// PublicationHandler serves the admin publications management panel.
type PublicationHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewPublicationHandler creates a PublicationHandler.
func NewPublicationHandler(queries *store.Queries, renderer *render.Renderer, sm *scs.SessionManager) *PublicationHandler {
	return &PublicationHandler{queries: queries, renderer: renderer, sessionManager: sm}
}

// PublicationFormData carries the publication form page payload.
type PublicationFormData struct {
	Item  *model.Publication
	Types []string
}

// List renders all publications, drafts included.
func (h *PublicationHandler) List(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	items, err := h.queries.ListPublications(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list publications", "error", err)
		return
	}
	err = h.renderer.Render(w, r, "admin/publication_list", render.TemplateData{
		Title: i18n.T(lang, "admin.publications"),
		Lang:  lang,
		User:  middleware.GetUser(r),
		Data:  items,
	})
	if err != nil {
		logAndInternalError(w, "failed to render publication list", "error", err)
	}
}

// NewForm renders an empty publication form.
func (h *PublicationHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil, nil, nil)
}

// Create validates the submitted form and inserts a publication.
func (h *PublicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.sessionManager, redirectPublications, i18n.T(lang, "auth.invalid_form_data"))
		return
	}
	if !session.ConsumeFormToken(r.Context(), h.sessionManager, formValue(r, "form_token")) {
		flashError(w, r, h.sessionManager, redirectPublications, i18n.T(lang, "flash.duplicate_submit"))
		return
	}

	form, formErrors := h.parsePublicationForm(r, lang)
	if len(formErrors) > 0 {
		h.renderForm(w, r, nil, formErrors, formMap(r))
		return
	}

	if _, err := h.queries.CreatePublication(r.Context(), *form); err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectPublications, i18n.T(lang, "flash.save_error"), "failed to create publication", "error", err)
		return
	}
	flashSuccess(w, r, h.sessionManager, redirectPublications, i18n.T(lang, "flash.created"))
}

// EditForm renders the form pre-filled with an existing publication.
func (h *PublicationHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	id, err := parseID(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectPublications, i18n.T(lang, "flash.not_found"))
		return
	}
	item, err := h.queries.GetPublicationByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		flashError(w, r, h.sessionManager, redirectPublications, i18n.T(lang, "flash.not_found"))
		return
	}
	if err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectPublications, i18n.T(lang, "flash.load_error"), "failed to load publication", "id", id, "error", err)
		return
	}
	h.renderForm(w, r, &item, nil, nil)
}

// Update validates the submitted form and updates an existing publication.
func (h *PublicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	id, err := parseID(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectPublications, i18n.T(lang, "flash.not_found"))
		return
	}
	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.sessionManager, redirectPublications, i18n.T(lang, "auth.invalid_form_data"))
		return
	}
	if !session.ConsumeFormToken(r.Context(), h.sessionManager, formValue(r, "form_token")) {
		flashError(w, r, h.sessionManager, redirectPublications, i18n.T(lang, "flash.duplicate_submit"))
		return
	}

	current, err := h.queries.GetPublicationByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		flashError(w, r, h.sessionManager, redirectPublications, i18n.T(lang, "flash.not_found"))
		return
	}
	if err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectPublications, i18n.T(lang, "flash.load_error"), "failed to load publication", "id", id, "error", err)
		return
	}

	form, formErrors := h.parsePublicationForm(r, lang)
	if len(formErrors) > 0 {
		h.renderForm(w, r, &current, formErrors, formMap(r))
		return
	}

	err = h.queries.UpdatePublication(r.Context(), store.UpdatePublicationParams{
		ID:              id,
		TitleBG:         form.TitleBG,
		TitleEN:         form.TitleEN,
		DescriptionBG:   form.DescriptionBG,
		DescriptionEN:   form.DescriptionEN,
		ContentBG:       form.ContentBG,
		ContentEN:       form.ContentEN,
		PublicationType: form.PublicationType,
		DocumentURL:     form.DocumentURL,
		Published:       form.Published,
		Featured:        form.Featured,
	})
	if err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectPublications, i18n.T(lang, "flash.save_error"), "failed to update publication", "id", id, "error", err)
		return
	}
	flashSuccess(w, r, h.sessionManager, redirectPublications, i18n.T(lang, "flash.updated"))
}

// Delete removes a publication.
func (h *PublicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	id, err := parseID(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectPublications, i18n.T(lang, "flash.not_found"))
		return
	}
	if err := h.queries.DeletePublication(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			flashError(w, r, h.sessionManager, redirectPublications, i18n.T(lang, "flash.not_found"))
			return
		}
		logAndFlashError(w, r, h.sessionManager, redirectPublications, i18n.T(lang, "flash.delete_error"), "failed to delete publication", "id", id, "error", err)
		return
	}
	flashSuccess(w, r, h.sessionManager, redirectPublications, i18n.T(lang, "flash.deleted"))
}

// TogglePublish flips the published flag of a publication.
func (h *PublicationHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	id, err := parseID(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectPublications, i18n.T(lang, "flash.not_found"))
		return
	}
	item, err := h.queries.GetPublicationByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		flashError(w, r, h.sessionManager, redirectPublications, i18n.T(lang, "flash.not_found"))
		return
	}
	if err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectPublications, i18n.T(lang, "flash.load_error"), "failed to load publication", "id", id, "error", err)
		return
	}
	if err := h.queries.SetPublicationPublished(r.Context(), id, !item.Published); err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectPublications, i18n.T(lang, "flash.save_error"), "failed to toggle publication", "id", id, "error", err)
		return
	}
	key := "flash.published"
	if item.Published {
		key = "flash.unpublished"
	}
	flashSuccess(w, r, h.sessionManager, redirectPublications, i18n.T(lang, key))
}

func (h *PublicationHandler) renderForm(w http.ResponseWriter, r *http.Request, item *model.Publication, formErrors, form map[string]string) {
	lang := middleware.GetLanguage(r)
	err := h.renderer.Render(w, r, "admin/publication_form", render.TemplateData{
		Title:     i18n.T(lang, "admin.publications"),
		Lang:      lang,
		User:      middleware.GetUser(r),
		Data:      PublicationFormData{Item: item, Types: model.PublicationTypes},
		Errors:    formErrors,
		Form:      form,
		FormToken: session.NewFormToken(r.Context(), h.sessionManager),
	})
	if err != nil {
		logAndInternalError(w, "failed to render publication form", "error", err)
	}
}

// parsePublicationForm extracts and validates the publication fields from a
// parsed form.
func (h *PublicationHandler) parsePublicationForm(r *http.Request, lang i18n.Lang) (*store.CreatePublicationParams, map[string]string) {
	formErrors := make(map[string]string)

	titleBG := formValue(r, "title_bg")
	if titleBG == "" {
		formErrors["title_bg"] = i18n.T(lang, "validate.title_bg_required")
	}
	publicationType := formValue(r, "publication_type")
	if !model.IsValidPublicationType(publicationType) {
		publicationType = model.PublicationTypeGeneral
	}
	if len(formErrors) > 0 {
		return nil, formErrors
	}

	return &store.CreatePublicationParams{
		TitleBG:         titleBG,
		TitleEN:         util.NullStringFromValue(formValue(r, "title_en")),
		DescriptionBG:   util.NullStringFromValue(formValue(r, "description_bg")),
		DescriptionEN:   util.NullStringFromValue(formValue(r, "description_en")),
		ContentBG:       util.NullStringFromValue(formValue(r, "content_bg")),
		ContentEN:       util.NullStringFromValue(formValue(r, "content_en")),
		PublicationType: publicationType,
		DocumentURL:     util.NullStringFromValue(formValue(r, "document_url")),
		Published:       checkbox(r, "published"),
		Featured:        checkbox(r, "featured"),
	}, nil
}
