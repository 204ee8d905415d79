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

// MemberHandler serves the admin members management panel.
type MemberHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewMemberHandler creates a MemberHandler.
func NewMemberHandler(queries *store.Queries, renderer *render.Renderer, sm *scs.SessionManager) *MemberHandler {
	return &MemberHandler{queries: queries, renderer: renderer, sessionManager: sm}
}

// MemberFormData carries the member form page payload.
type MemberFormData struct {
	Item       *model.Member
	Categories []string
}

// List renders all members and experts, inactive included.
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	items, err := h.queries.ListMembers(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list members", "error", err)
		return
	}
	err = h.renderer.Render(w, r, "admin/member_list", render.TemplateData{
		Title: i18n.T(lang, "admin.members"),
		Lang:  lang,
		User:  middleware.GetUser(r),
		Data:  items,
	})
	if err != nil {
		logAndInternalError(w, "failed to render member list", "error", err)
	}
}

// NewForm renders an empty member form.
func (h *MemberHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil, nil, nil)
}

// Create validates the submitted form and inserts a member.
func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "auth.invalid_form_data"))
		return
	}
	if !session.ConsumeFormToken(r.Context(), h.sessionManager, formValue(r, "form_token")) {
		flashError(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "flash.duplicate_submit"))
		return
	}

	form, formErrors := h.parseMemberForm(r, lang)
	if len(formErrors) > 0 {
		h.renderForm(w, r, nil, formErrors, formMap(r))
		return
	}

	if _, err := h.queries.CreateMember(r.Context(), *form); err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "flash.save_error"), "failed to create member", "error", err)
		return
	}
	flashSuccess(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "flash.created"))
}

// EditForm renders the form pre-filled with an existing member.
func (h *MemberHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	id, err := parseID(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "flash.not_found"))
		return
	}
	item, err := h.queries.GetMemberByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		flashError(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "flash.not_found"))
		return
	}
	if err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "flash.load_error"), "failed to load member", "id", id, "error", err)
		return
	}
	h.renderForm(w, r, &item, nil, nil)
}

// Update validates the submitted form and updates an existing member.
func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	id, err := parseID(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "flash.not_found"))
		return
	}
	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "auth.invalid_form_data"))
		return
	}
	if !session.ConsumeFormToken(r.Context(), h.sessionManager, formValue(r, "form_token")) {
		flashError(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "flash.duplicate_submit"))
		return
	}

	current, err := h.queries.GetMemberByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		flashError(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "flash.not_found"))
		return
	}
	if err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "flash.load_error"), "failed to load member", "id", id, "error", err)
		return
	}

	form, formErrors := h.parseMemberForm(r, lang)
	if len(formErrors) > 0 {
		h.renderForm(w, r, &current, formErrors, formMap(r))
		return
	}

	err = h.queries.UpdateMember(r.Context(), store.UpdateMemberParams{
		ID:          id,
		NameBG:      form.NameBG,
		NameEN:      form.NameEN,
		PositionBG:  form.PositionBG,
		PositionEN:  form.PositionEN,
		BiographyBG: form.BiographyBG,
		BiographyEN: form.BiographyEN,
		PhotoURL:    form.PhotoURL,
		Category:    form.Category,
		OrderIndex:  form.OrderIndex,
		Active:      form.Active,
	})
	if err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "flash.save_error"), "failed to update member", "id", id, "error", err)
		return
	}
	flashSuccess(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "flash.updated"))
}

// Delete removes a member.
func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	id, err := parseID(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "flash.not_found"))
		return
	}
	if err := h.queries.DeleteMember(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			flashError(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "flash.not_found"))
			return
		}
		logAndFlashError(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "flash.delete_error"), "failed to delete member", "id", id, "error", err)
		return
	}
	flashSuccess(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "flash.deleted"))
}

// ToggleActive flips the active flag of a member.
func (h *MemberHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	id, err := parseID(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "flash.not_found"))
		return
	}
	item, err := h.queries.GetMemberByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		flashError(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "flash.not_found"))
		return
	}
	if err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "flash.load_error"), "failed to load member", "id", id, "error", err)
		return
	}
	if err := h.queries.SetMemberActive(r.Context(), id, !item.Active); err != nil {
		logAndFlashError(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "flash.save_error"), "failed to toggle member", "id", id, "error", err)
		return
	}
	flashSuccess(w, r, h.sessionManager, redirectMembers, i18n.T(lang, "flash.updated"))
}

func (h *MemberHandler) renderForm(w http.ResponseWriter, r *http.Request, item *model.Member, formErrors, form map[string]string) {
	lang := middleware.GetLanguage(r)
	err := h.renderer.Render(w, r, "admin/member_form", render.TemplateData{
		Title:     i18n.T(lang, "admin.members"),
		Lang:      lang,
		User:      middleware.GetUser(r),
		Data:      MemberFormData{Item: item, Categories: model.MemberCategories},
		Errors:    formErrors,
		Form:      form,
		FormToken: session.NewFormToken(r.Context(), h.sessionManager),
	})
	if err != nil {
		logAndInternalError(w, "failed to render member form", "error", err)
	}
}

// parseMemberForm extracts and validates the member fields from a parsed form.
// A malformed order_index falls back to the default rather than failing the
// submission.
func (h *MemberHandler) parseMemberForm(r *http.Request, lang i18n.Lang) (*store.CreateMemberParams, map[string]string) {
	formErrors := make(map[string]string)

	nameBG := formValue(r, "name_bg")
	if nameBG == "" {
		formErrors["name_bg"] = i18n.T(lang, "validate.name_bg_required")
	}
	positionBG := formValue(r, "position_bg")
	if positionBG == "" {
		formErrors["position_bg"] = i18n.T(lang, "validate.position_bg_required")
	}
	category := formValue(r, "category")
	if !model.IsValidMemberCategory(category) {
		category = model.MemberCategoryMember
	}
	if len(formErrors) > 0 {
		return nil, formErrors
	}

	orderIndex := util.ParseIntDefault(formValue(r, "order_index"), model.DefaultOrderIndex)

	return &store.CreateMemberParams{
		NameBG:      nameBG,
		NameEN:      util.NullStringFromValue(formValue(r, "name_en")),
		PositionBG:  positionBG,
		PositionEN:  util.NullStringFromValue(formValue(r, "position_en")),
		BiographyBG: util.NullStringFromValue(formValue(r, "biography_bg")),
		BiographyEN: util.NullStringFromValue(formValue(r, "biography_en")),
		PhotoURL:    util.NullStringFromValue(formValue(r, "photo_url")),
		Category:    category,
		OrderIndex:  int64(orderIndex),
		Active:      checkbox(r, "active"),
	}, nil
}
