// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/fiscalcouncil-bg/fcsite/internal/i18n"
	"github.com/fiscalcouncil-bg/fcsite/internal/middleware"
	"github.com/fiscalcouncil-bg/fcsite/internal/render"
	"github.com/fiscalcouncil-bg/fcsite/internal/store"
)

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(queries *store.Queries, renderer *render.Renderer, sm *scs.SessionManager) *AdminHandler {
	return &AdminHandler{queries: queries, renderer: renderer, sessionManager: sm}
}

// DashboardData carries entity counts for the dashboard page.
type DashboardData struct {
	NewsCount        int64
	ReportCount      int64
	PublicationCount int64
	MemberCount      int64
}

// Dashboard renders the admin landing page with content counts.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := middleware.GetLanguage(r)

	var data DashboardData
	var err error
	if data.NewsCount, err = h.queries.CountNews(ctx); err != nil {
		logAndInternalError(w, "failed to count news", "error", err)
		return
	}
	if data.ReportCount, err = h.queries.CountReports(ctx); err != nil {
		logAndInternalError(w, "failed to count reports", "error", err)
		return
	}
	if data.PublicationCount, err = h.queries.CountPublications(ctx); err != nil {
		logAndInternalError(w, "failed to count publications", "error", err)
		return
	}
	if data.MemberCount, err = h.queries.CountMembers(ctx); err != nil {
		logAndInternalError(w, "failed to count members", "error", err)
		return
	}

	err = h.renderer.Render(w, r, "admin/dashboard", render.TemplateData{
		Title: i18n.T(lang, "admin.dashboard"),
		Lang:  lang,
		User:  middleware.GetUser(r),
		Data:  data,
	})
	if err != nil {
		logAndInternalError(w, "failed to render dashboard", "error", err)
	}
}
