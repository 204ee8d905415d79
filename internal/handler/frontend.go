// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fiscalcouncil-bg/fcsite/internal/cache"
	"github.com/fiscalcouncil-bg/fcsite/internal/i18n"
	"github.com/fiscalcouncil-bg/fcsite/internal/middleware"
	"github.com/fiscalcouncil-bg/fcsite/internal/model"
	"github.com/fiscalcouncil-bg/fcsite/internal/render"
	"github.com/fiscalcouncil-bg/fcsite/internal/seo"
	"github.com/fiscalcouncil-bg/fcsite/internal/service"
	"github.com/fiscalcouncil-bg/fcsite/internal/store"
)

const (
	sitemapCacheKey = "sitemap.xml"
	sitemapCacheTTL = time.Hour

	featuredNewsLimit = 3
	latestNewsLimit   = 6
)

// FrontendConfig holds the frontend handler settings.
type FrontendConfig struct {
	BaseURL string

	// LocalizeContent enables the bilingual resolver for content records.
	// When false, content always shows its Bulgarian fields.
	LocalizeContent bool
}

// FrontendHandler serves all public pages.
type FrontendHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	cache    cache.Cache
	cfg      FrontendConfig
}

// NewFrontendHandler creates a FrontendHandler.
func NewFrontendHandler(queries *store.Queries, renderer *render.Renderer, c cache.Cache, cfg FrontendConfig) *FrontendHandler {
	return &FrontendHandler{queries: queries, renderer: renderer, cache: c, cfg: cfg}
}

// contentLang returns the language content records should resolve with.
// Chrome text always follows the site language; content follows it only when
// localization is enabled.
func (h *FrontendHandler) contentLang(r *http.Request) i18n.Lang {
	if !h.cfg.LocalizeContent {
		return i18n.LangBG
	}
	return middleware.GetLanguage(r)
}

// HomeData carries the homepage payload.
type HomeData struct {
	Featured    []model.News
	Latest      []model.News
	ContentLang i18n.Lang
}

// Home renders the homepage with featured and latest published news.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)

	featured, err := h.queries.ListFeaturedNews(r.Context(), featuredNewsLimit)
	if err != nil {
		logAndInternalError(w, "failed to load featured news", "error", err)
		return
	}
	latest, err := h.queries.ListPublishedNews(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to load latest news", "error", err)
		return
	}
	if len(latest) > latestNewsLimit {
		latest = latest[:latestNewsLimit]
	}

	err = h.renderer.Render(w, r, "frontend/home", render.TemplateData{
		Title: i18n.T(lang, "site.name"),
		Lang:  lang,
		Data:  HomeData{Featured: featured, Latest: latest, ContentLang: h.contentLang(r)},
	})
	if err != nil {
		logAndInternalError(w, "failed to render homepage", "error", err)
	}
}

// NewsListData carries the news list page payload.
type NewsListData struct {
	Items       []model.News
	Total       int
	Filter      service.NewsFilter
	Categories  []string
	Years       []int
	ContentLang i18n.Lang
}

// NewsList renders the published news with search, category and year filters.
func (h *FrontendHandler) NewsList(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)

	all, err := h.queries.ListPublishedNews(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to load news", "error", err)
		return
	}

	filter := service.NewsFilter{
		Search:   r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Year:     r.URL.Query().Get("year"),
	}
	items := service.FilterNews(all, filter)

	err = h.renderer.Render(w, r, "frontend/news_list", render.TemplateData{
		Title: i18n.T(lang, "nav.news"),
		Lang:  lang,
		Data: NewsListData{
			Items:       items,
			Total:       len(all),
			Filter:      filter,
			Categories:  model.NewsCategories,
			Years:       service.NewsYears(all),
			ContentLang: h.contentLang(r),
		},
	})
	if err != nil {
		logAndInternalError(w, "failed to render news list", "error", err)
	}
}

// NewsDetailData carries the news detail page payload.
type NewsDetailData struct {
	Item        model.News
	ReadTime    int
	ContentLang i18n.Lang
}

// NewsDetail renders a single published news item looked up by slug.
// Drafts are not reachable through the public site.
func (h *FrontendHandler) NewsDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	item, err := h.queries.GetNewsBySlug(r.Context(), slug)
	if errors.Is(err, sql.ErrNoRows) {
		h.NotFound(w, r)
		return
	}
	if err != nil {
		logAndInternalError(w, "failed to load news item", "slug", slug, "error", err)
		return
	}
	if !item.Published {
		h.NotFound(w, r)
		return
	}

	lang := middleware.GetLanguage(r)
	contentLang := h.contentLang(r)
	err = h.renderer.Render(w, r, "frontend/news_detail", render.TemplateData{
		Title: item.Title(contentLang),
		Lang:  lang,
		Data: NewsDetailData{
			Item:        item,
			ReadTime:    render.ReadTime(item.Content(contentLang)),
			ContentLang: contentLang,
		},
	})
	if err != nil {
		logAndInternalError(w, "failed to render news item", "slug", slug, "error", err)
	}
}

// ReportListData carries the reports page payload.
type ReportListData struct {
	Items       []model.Report
	Total       int
	Filter      service.ReportFilter
	Types       []string
	Years       []int
	ContentLang i18n.Lang
}

// Reports renders the published reports with search, type and year filters.
func (h *FrontendHandler) Reports(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)

	all, err := h.queries.ListPublishedReports(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to load reports", "error", err)
		return
	}

	filter := service.ReportFilter{
		Search: r.URL.Query().Get("q"),
		Type:   r.URL.Query().Get("type"),
		Year:   r.URL.Query().Get("year"),
	}
	items := service.FilterReports(all, filter)

	err = h.renderer.Render(w, r, "frontend/reports", render.TemplateData{
		Title: i18n.T(lang, "nav.reports"),
		Lang:  lang,
		Data: ReportListData{
			Items:       items,
			Total:       len(all),
			Filter:      filter,
			Types:       model.ReportTypes,
			Years:       service.ReportYears(all),
			ContentLang: h.contentLang(r),
		},
	})
	if err != nil {
		logAndInternalError(w, "failed to render reports", "error", err)
	}
}

// PublicationListData carries the publications page payload.
type PublicationListData struct {
	Items       []model.Publication
	Total       int
	Filter      service.PublicationFilter
	Types       []string
	Years       []int
	ContentLang i18n.Lang
}

// Publications renders the published publications with search, type and year
// filters.
func (h *FrontendHandler) Publications(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)

	all, err := h.queries.ListPublishedPublications(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to load publications", "error", err)
		return
	}

	filter := service.PublicationFilter{
		Search: r.URL.Query().Get("q"),
		Type:   r.URL.Query().Get("type"),
		Year:   r.URL.Query().Get("year"),
	}
	items := service.FilterPublications(all, filter)

	err = h.renderer.Render(w, r, "frontend/publications", render.TemplateData{
		Title: i18n.T(lang, "nav.publications"),
		Lang:  lang,
		Data: PublicationListData{
			Items:       items,
			Total:       len(all),
			Filter:      filter,
			Types:       model.PublicationTypes,
			Years:       service.PublicationYears(all),
			ContentLang: h.contentLang(r),
		},
	})
	if err != nil {
		logAndInternalError(w, "failed to render publications", "error", err)
	}
}

// MemberListData carries the members page payload.
type MemberListData struct {
	Items       []model.Member
	ContentLang i18n.Lang
}

// CouncilMembers renders the active council members ordered by rank.
func (h *FrontendHandler) CouncilMembers(w http.ResponseWriter, r *http.Request) {
	h.memberPage(w, r, model.MemberCategoryMember, "nav.members", "frontend/members")
}

// ExpertCouncil renders the active external experts ordered by rank.
func (h *FrontendHandler) ExpertCouncil(w http.ResponseWriter, r *http.Request) {
	h.memberPage(w, r, model.MemberCategoryExpert, "nav.experts", "frontend/experts")
}

func (h *FrontendHandler) memberPage(w http.ResponseWriter, r *http.Request, category, titleKey, template string) {
	lang := middleware.GetLanguage(r)

	items, err := h.queries.ListActiveMembers(r.Context(), category)
	if err != nil {
		logAndInternalError(w, "failed to load members", "category", category, "error", err)
		return
	}

	err = h.renderer.Render(w, r, template, render.TemplateData{
		Title: i18n.T(lang, titleKey),
		Lang:  lang,
		Data:  MemberListData{Items: items, ContentLang: h.contentLang(r)},
	})
	if err != nil {
		logAndInternalError(w, "failed to render members", "category", category, "error", err)
	}
}

// staticPages maps URL paths to their template and navigation title key.
var staticPages = map[string]struct {
	Template string
	TitleKey string
}{
	"/about":                {"frontend/about", "nav.about"},
	"/mission":              {"frontend/mission", "nav.mission"},
	"/structure":            {"frontend/structure", "nav.structure"},
	"/history":              {"frontend/history", "nav.history"},
	"/regulatory-framework": {"frontend/framework", "nav.framework"},
	"/useful-links":         {"frontend/links", "nav.links"},
	"/contacts":             {"frontend/contacts", "nav.contacts"},
}

// StaticPage renders one of the fixed informational pages.
func (h *FrontendHandler) StaticPage(w http.ResponseWriter, r *http.Request) {
	page, ok := staticPages[r.URL.Path]
	if !ok {
		h.NotFound(w, r)
		return
	}

	lang := middleware.GetLanguage(r)
	err := h.renderer.Render(w, r, page.Template, render.TemplateData{
		Title: i18n.T(lang, page.TitleKey),
		Lang:  lang,
	})
	if err != nil {
		logAndInternalError(w, "failed to render static page", "path", r.URL.Path, "error", err)
	}
}

// StaticPagePaths returns the routable static page paths.
func StaticPagePaths() []string {
	paths := make([]string, 0, len(staticPages))
	for path := range staticPages {
		paths = append(paths, path)
	}
	return paths
}

// NotFound renders the localized 404 page.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	w.WriteHeader(http.StatusNotFound)
	err := h.renderer.Render(w, r, "frontend/notfound", render.TemplateData{
		Title: i18n.T(lang, "site.name"),
		Lang:  lang,
	})
	if err != nil {
		slog.Error("failed to render not found page", "path", r.URL.Path, "error", err)
	}
}

// buildSitemap assembles the sitemap from the currently published content.
func (h *FrontendHandler) buildSitemap(ctx context.Context) ([]byte, error) {
	b := seo.NewSitemapBuilder(h.cfg.BaseURL)
	b.AddHomepage()
	for path := range staticPages {
		b.AddStaticPage(path)
	}

	news, err := h.queries.ListPublishedNews(ctx)
	if err != nil {
		return nil, err
	}
	var newest time.Time
	for _, n := range news {
		if n.UpdatedAt.After(newest) {
			newest = n.UpdatedAt
		}
		b.AddNewsItem(n.Slug, n.UpdatedAt)
	}
	b.AddListPage("/news", newest)
	b.AddListPage("/reports", time.Time{})
	b.AddListPage("/publications", time.Time{})

	return b.Build()
}

// RefreshSitemap rebuilds the sitemap and stores it in the cache. The
// scheduler calls this hourly; Sitemap also falls back to it on a cache miss.
func (h *FrontendHandler) RefreshSitemap(ctx context.Context) error {
	data, err := h.buildSitemap(ctx)
	if err != nil {
		return err
	}
	return h.cache.Set(ctx, sitemapCacheKey, data, sitemapCacheTTL)
}

// Sitemap serves the cached sitemap XML, rebuilding it on a miss.
func (h *FrontendHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data, err := h.cache.Get(ctx, sitemapCacheKey)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			slog.Warn("sitemap cache read failed", "error", err)
		}
		data, err = h.buildSitemap(ctx)
		if err != nil {
			logAndInternalError(w, "failed to build sitemap", "error", err)
			return
		}
		if err := h.cache.Set(ctx, sitemapCacheKey, data, sitemapCacheTTL); err != nil {
			slog.Warn("sitemap cache write failed", "error", err)
		}
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(data)
}

// Robots serves robots.txt.
func (h *FrontendHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.GenerateRobots(seo.RobotsConfig{SiteURL: h.cfg.BaseURL})))
}
