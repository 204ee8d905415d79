// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render handles HTML template rendering with caching.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/fiscalcouncil-bg/fcsite/internal/i18n"
	"github.com/fiscalcouncil-bg/fcsite/internal/model"
	"github.com/fiscalcouncil-bg/fcsite/internal/session"
)

// htmlSanitizer strips dangerous markup from rendered content. UGCPolicy
// keeps the safe subset needed for article bodies.
var htmlSanitizer = bluemonday.UGCPolicy()

// Renderer renders HTML templates parsed once at startup.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
}

// New creates a Renderer with all templates parsed.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates:      make(map[string]*template.Template),
		sessionManager: cfg.SessionManager,
	}
	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}
	return r, nil
}

// Template groups. Frontend and auth pages use the public layout, admin
// pages stack the admin layout on top of it.
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := r.getTemplateFiles(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	baseLayout := "layouts/base.html"
	adminLayout := "layouts/admin.html"

	groups := []struct {
		dir    string
		layout []string
	}{
		{"frontend", []string{baseLayout}},
		{"auth", []string{baseLayout}},
		{"admin", []string{baseLayout, adminLayout}},
	}

	for _, g := range groups {
		pages, err := r.getTemplateFiles(templatesFS, g.dir)
		if err != nil {
			return fmt.Errorf("getting %s templates: %w", g.dir, err)
		}
		for _, tmplPath := range pages {
			name := g.dir + "/" + strings.TrimSuffix(filepath.Base(tmplPath), ".html")

			files := append([]string{}, g.layout...)
			files = append(files, partials...)
			files = append(files, tmplPath)

			tmpl, err := template.New("").Funcs(r.templateFuncs()).ParseFS(templatesFS, files...)
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", name, err)
			}
			r.templates[name] = tmpl
		}
	}
	return nil
}

func (r *Renderer) getTemplateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	var files []string
	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		// Directory might not exist, that's ok.
		return files, nil
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

func (r *Renderer) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"t": i18n.T,
		"resolve": func(lang i18n.Lang, bg, en string) string {
			return i18n.Resolve(lang, bg, en)
		},
		"markdown":   Markdown,
		"formatDate": FormatDate,
		"formatDateTime": func(lang i18n.Lang, t time.Time) string {
			return FormatDate(lang, t) + t.Format(", 15:04")
		},
		"readTime": ReadTime,
		"truncate": func(s string, length int) string {
			runes := []rune(s)
			if len(runes) <= length {
				return s
			}
			return string(runes[:length]) + "…"
		},
		"joinKeywords": model.JoinKeywords,
		"year": func(t time.Time) int {
			return t.Year()
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}
}

// Markdown converts markdown content to sanitized HTML.
func Markdown(content string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(content))
	}
	return template.HTML(htmlSanitizer.SanitizeBytes(buf.Bytes()))
}

var bgMonths = [...]string{
	"януари", "февруари", "март", "април", "май", "юни",
	"юли", "август", "септември", "октомври", "ноември", "декември",
}

// FormatDate renders a date in the display language's convention.
func FormatDate(lang i18n.Lang, t time.Time) string {
	if lang == i18n.LangEN {
		return t.Format("January 2, 2006")
	}
	return fmt.Sprintf("%d %s %d г.", t.Day(), bgMonths[t.Month()-1], t.Year())
}

// ReadTime estimates reading minutes for a text at 200 words per minute,
// minimum one minute.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title       string
	Lang        i18n.Lang
	User        *model.User
	Data        any
	Errors      map[string]string
	Form        map[string]string
	Flash       string
	FlashKind   string
	FormToken   string
	CurrentYear int
	Path        string
}

// Render executes a named template. Output is buffered so a template error
// never leaks a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = time.Now().Year()
	data.Path = req.URL.Path
	if data.Lang == "" {
		data.Lang = i18n.LangBG
	}

	if r.sessionManager != nil && data.Flash == "" {
		kind, msg := session.PopFlash(req.Context(), r.sessionManager)
		data.Flash = msg
		data.FlashKind = kind
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}
