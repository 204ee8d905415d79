// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
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

// NewsHandler serves the admin news management panel.
type NewsHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewNewsHandler creates a NewsHandler.
func NewNewsHandler(queries *store.Queries, renderer *render.Renderer, sm *scs.SessionManager) *NewsHandler {
	return &NewsHandler{queries: queries, renderer: renderer, sessionManager: sm}
}

// NewsFormData carries the news form page payload.
type NewsFormData struct {
	Item       *model.News
	Categories []string
}

// List renders all news items, drafts included.
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	items, err := h.queries.ListNews(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list news", "error", err)
		return
	}
	err = h.renderer.Render(w, r, "admin/news_list", render.TemplateData{
		Title: i18n.T(lang, "admin.news"),
		Lang:  lang,
		User:  middleware.GetUser(r),
		Data:  items,
	})
	if err != nil {
		logAndInternalError(w, "failed to render news list", "error", err)
	}
}

// NewForm renders an empty news form.
func (h *NewsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil, nil, nil)
}

// Create validates the submitted form and inserts a news item.
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.sessionManager, redirectNews, i18n.T(lang, "auth.invalid_form_data"))
		return
	}
	if !session.ConsumeFormToken(r.Context(), h.sessionManager, formValue(r, "form_token")) {
		flashError(w, r, h.sessionManager, redirectNews, i18n.T(lang, "flash.duplicate_submit"))
		return
	}

	form, formErrors := h.parseNewsForm(r, lang)
	if len(formErrors) > 0 {
		h.renderForm(w, r, nil, formErrors, formMap(r))
		return
	}

	slug, err := h.uniqueSlug(r.Context(), form.TitleBG, 0)
	if err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectNews, i18n.T(lang, "flash.save_error"), "failed to derive news slug", "error", err)
		return
	}
	form.Slug = slug

	if _, err := h.queries.CreateNews(r.Context(), *form); err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectNews, i18n.T(lang, "flash.save_error"), "failed to create news", "error", err)
		return
	}
	flashSuccess(w, r, h.sessionManager, redirectNews, i18n.T(lang, "flash.created"))
}

// EditForm renders the form pre-filled with an existing news item.
func (h *NewsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	id, err := parseID(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectNews, i18n.T(lang, "flash.not_found"))
		return
	}
	item, err := h.queries.GetNewsByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		flashError(w, r, h.sessionManager, redirectNews, i18n.T(lang, "flash.not_found"))
		return
	}
	if err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectNews, i18n.T(lang, "flash.load_error"), "failed to load news", "id", id, "error", err)
		return
	}
	h.renderForm(w, r, &item, nil, nil)
}

// Update validates the submitted form and updates an existing news item.
func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	id, err := parseID(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectNews, i18n.T(lang, "flash.not_found"))
		return
	}
	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.sessionManager, redirectNews, i18n.T(lang, "auth.invalid_form_data"))
		return
	}
	if !session.ConsumeFormToken(r.Context(), h.sessionManager, formValue(r, "form_token")) {
		flashError(w, r, h.sessionManager, redirectNews, i18n.T(lang, "flash.duplicate_submit"))
		return
	}

	current, err := h.queries.GetNewsByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		flashError(w, r, h.sessionManager, redirectNews, i18n.T(lang, "flash.not_found"))
		return
	}
	if err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectNews, i18n.T(lang, "flash.load_error"), "failed to load news", "id", id, "error", err)
		return
	}

	form, formErrors := h.parseNewsForm(r, lang)
	if len(formErrors) > 0 {
		h.renderForm(w, r, &current, formErrors, formMap(r))
		return
	}

	slug := current.Slug
	if form.TitleBG != current.TitleBG {
		slug, err = h.uniqueSlug(r.Context(), form.TitleBG, id)
		if err != nil {
			logAndFlashError(w, r, h.sessionManager, redirectNews, i18n.T(lang, "flash.save_error"), "failed to derive news slug", "error", err)
			return
		}
	}

	err = h.queries.UpdateNews(r.Context(), store.UpdateNewsParams{
		ID:        id,
		TitleBG:   form.TitleBG,
		TitleEN:   form.TitleEN,
		ContentBG: form.ContentBG,
		ContentEN: form.ContentEN,
		ExcerptBG: form.ExcerptBG,
		ExcerptEN: form.ExcerptEN,
		Category:  form.Category,
		ImageURL:  form.ImageURL,
		Slug:      slug,
		Published: form.Published,
		Featured:  form.Featured,
	})
	if err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectNews, i18n.T(lang, "flash.save_error"), "failed to update news", "id", id, "error", err)
		return
	}
	flashSuccess(w, r, h.sessionManager, redirectNews, i18n.T(lang, "flash.updated"))
}

// Delete removes a news item.
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	id, err := parseID(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectNews, i18n.T(lang, "flash.not_found"))
		return
	}
	if err := h.queries.DeleteNews(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			flashError(w, r, h.sessionManager, redirectNews, i18n.T(lang, "flash.not_found"))
			return
		}
		logAndFlashError(w, r, h.sessionManager, redirectNews, i18n.T(lang, "flash.delete_error"), "failed to delete news", "id", id, "error", err)
		return
	}
	flashSuccess(w, r, h.sessionManager, redirectNews, i18n.T(lang, "flash.deleted"))
}

// TogglePublish flips the published flag of a news item.
func (h *NewsHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	id, err := parseID(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectNews, i18n.T(lang, "flash.not_found"))
		return
	}
	item, err := h.queries.GetNewsByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		flashError(w, r, h.sessionManager, redirectNews, i18n.T(lang, "flash.not_found"))
		return
	}
	if err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectNews, i18n.T(lang, "flash.load_error"), "failed to load news", "id", id, "error", err)
		return
	}
	if err := h.queries.SetNewsPublished(r.Context(), id, !item.Published); err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectNews, i18n.T(lang, "flash.save_error"), "failed to toggle news", "id", id, "error", err)
		return
	}
	key := "flash.published"
	if item.Published {
		key = "flash.unpublished"
	}
	flashSuccess(w, r, h.sessionManager, redirectNews, i18n.T(lang, key))
}

func (h *NewsHandler) renderForm(w http.ResponseWriter, r *http.Request, item *model.News, formErrors, form map[string]string) {
	lang := middleware.GetLanguage(r)
	err := h.renderer.Render(w, r, "admin/news_form", render.TemplateData{
		Title:     i18n.T(lang, "admin.news"),
		Lang:      lang,
		User:      middleware.GetUser(r),
		Data:      NewsFormData{Item: item, Categories: model.NewsCategories},
		Errors:    formErrors,
		Form:      form,
		FormToken: session.NewFormToken(r.Context(), h.sessionManager),
	})
	if err != nil {
		logAndInternalError(w, "failed to render news form", "error", err)
	}
}

// parseNewsForm extracts and validates the news fields from a parsed form.
// Slug is left for the caller, which knows whether the title changed.
func (h *NewsHandler) parseNewsForm(r *http.Request, lang i18n.Lang) (*store.CreateNewsParams, map[string]string) {
	formErrors := make(map[string]string)

	titleBG := formValue(r, "title_bg")
	if titleBG == "" {
		formErrors["title_bg"] = i18n.T(lang, "validate.title_bg_required")
	}
	contentBG := formValue(r, "content_bg")
	if contentBG == "" {
		formErrors["content_bg"] = i18n.T(lang, "validate.content_bg_required")
	}
	category := formValue(r, "category")
	if !model.IsValidNewsCategory(category) {
		category = model.NewsCategoryNews
	}
	if len(formErrors) > 0 {
		return nil, formErrors
	}

	return &store.CreateNewsParams{
		TitleBG:   titleBG,
		TitleEN:   util.NullStringFromValue(formValue(r, "title_en")),
		ContentBG: contentBG,
		ContentEN: util.NullStringFromValue(formValue(r, "content_en")),
		ExcerptBG: util.NullStringFromValue(formValue(r, "excerpt_bg")),
		ExcerptEN: util.NullStringFromValue(formValue(r, "excerpt_en")),
		Category:  category,
		ImageURL:  util.NullStringFromValue(formValue(r, "image_url")),
		Published: checkbox(r, "published"),
		Featured:  checkbox(r, "featured"),
	}, nil
}

// uniqueSlug derives a URL slug from the Bulgarian title and appends a numeric
// suffix until no other record claims it. excludeID skips the record being
// edited so it can keep its own slug.
func (h *NewsHandler) uniqueSlug(ctx context.Context, titleBG string, excludeID int64) (string, error) {
	base := util.Slugify(titleBG)
	slug := base
	for i := 2; ; i++ {
		existing, err := h.queries.GetNewsBySlug(ctx, slug)
		if errors.Is(err, sql.ErrNoRows) {
			return slug, nil
		}
		if err != nil {
			return "", err
		}
		if existing.ID == excludeID {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// formMap snapshots the posted values for re-rendering a failed form.
func formMap(r *http.Request) map[string]string {
	m := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		m[key] = r.PostForm.Get(key)
	}
	return m
}
