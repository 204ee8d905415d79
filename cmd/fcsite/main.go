// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/fiscalcouncil-bg/fcsite/internal/cache"
	"github.com/fiscalcouncil-bg/fcsite/internal/config"
	"github.com/fiscalcouncil-bg/fcsite/internal/handler"
	"github.com/fiscalcouncil-bg/fcsite/internal/i18n"
	"github.com/fiscalcouncil-bg/fcsite/internal/middleware"
	"github.com/fiscalcouncil-bg/fcsite/internal/render"
	"github.com/fiscalcouncil-bg/fcsite/internal/scheduler"
	"github.com/fiscalcouncil-bg/fcsite/internal/session"
	"github.com/fiscalcouncil-bg/fcsite/internal/store"
	"github.com/fiscalcouncil-bg/fcsite/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// crudHandlers defines the standard CRUD handler methods.
type crudHandlers struct {
	List     http.HandlerFunc
	NewForm  http.HandlerFunc
	Create   http.HandlerFunc
	EditForm http.HandlerFunc
	Update   http.HandlerFunc
	Delete   http.HandlerFunc
}

// registerCRUD registers standard CRUD routes for a resource.
// Routes: GET base, GET base/new, POST base, GET base/{id}, PUT/POST base/{id},
// DELETE base/{id}, POST base/{id}/delete
func registerCRUD(r chi.Router, base, baseID string, h crudHandlers) {
	r.Get(base, h.List)
	r.Get(base+handler.RouteSuffixNew, h.NewForm)
	r.Post(base, h.Create)
	r.Get(baseID, h.EditForm)
	r.Put(baseID, h.Update)
	r.Post(baseID, h.Update) // HTML forms can't send PUT
	r.Delete(baseID, h.Delete)
	r.Post(baseID+"/delete", h.Delete) // HTML forms can't send DELETE
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "fcsite - Fiscal Council of Bulgaria website\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FC_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FC_DB_PATH           SQLite database path (default: ./data/fcsite.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FC_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FC_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FC_BASE_URL          Public origin used in the sitemap (default: http://localhost:8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FC_REDIS_URL         Redis URL for the list cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FC_DO_SEED           Seed initial council content (default: false)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("fcsite %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	ctx := context.Background()
	queries := store.New(db)

	// First run: create the admin account and log its generated password once.
	password, err := store.EnsureAdminUser(ctx, queries, logger)
	if err != nil {
		return fmt.Errorf("ensuring admin user: %w", err)
	}
	if password != "" {
		slog.Info("admin account created",
			"email", store.DefaultAdminEmail,
			"password", password,
			"note", "change this password after first login")
	}

	if cfg.DoSeed {
		if err := store.SeedContent(ctx, db, logger); err != nil {
			return fmt.Errorf("seeding content: %w", err)
		}
	}

	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	cacheBackend := cache.New(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	}, logger)
	slog.Info("cache initialized", "redis", cfg.UseRedisCache())
	defer func() {
		if err := cacheBackend.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())

	// Handlers
	authHandler := handler.NewAuthHandler(queries, renderer, sessionManager, loginProtection)
	adminHandler := handler.NewAdminHandler(queries, renderer, sessionManager)
	newsHandler := handler.NewNewsHandler(queries, renderer, sessionManager)
	reportHandler := handler.NewReportHandler(queries, renderer, sessionManager)
	publicationHandler := handler.NewPublicationHandler(queries, renderer, sessionManager)
	memberHandler := handler.NewMemberHandler(queries, renderer, sessionManager)
	frontendHandler := handler.NewFrontendHandler(queries, renderer, cacheBackend, handler.FrontendConfig{
		BaseURL:         cfg.BaseURL,
		LocalizeContent: cfg.LocalizeContent,
	})
	healthHandler := handler.NewHealthHandler(db)

	// Background jobs: session sweep and hourly sitemap refresh.
	sched := scheduler.New(db, frontendHandler, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	if err := frontendHandler.RefreshSitemap(ctx); err != nil {
		slog.Warn("initial sitemap build failed", "error", err)
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.Language)

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment()))

	r.Get("/healthz", healthHandler.Health)

	// Public frontend routes
	r.Group(func(r chi.Router) {
		r.Get(handler.RouteRoot, frontendHandler.Home)
		r.Get("/news", frontendHandler.NewsList)
		r.Get("/news"+handler.RouteParamSlug, frontendHandler.NewsDetail)
		r.Get("/reports", frontendHandler.Reports)
		r.Get("/publications", frontendHandler.Publications)
		r.Get("/members", frontendHandler.CouncilMembers)
		r.Get("/expert-council", frontendHandler.ExpertCouncil)
		for _, path := range handler.StaticPagePaths() {
			r.Get(path, frontendHandler.StaticPage)
		}
		r.Get("/sitemap.xml", frontendHandler.Sitemap)
		r.Get("/robots.txt", frontendHandler.Robots)
	})

	// Auth routes
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
		r.Get(handler.RouteLogout, authHandler.Logout)
		r.Post(handler.RouteLogout, authHandler.Logout)
	})

	// Admin routes
	r.Route("/admin", func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.Auth(sessionManager))
		r.Use(middleware.LoadUser(sessionManager, queries))
		r.Use(middleware.RequireAdmin())

		r.Get(handler.RouteRoot, adminHandler.Dashboard)

		registerCRUD(r, handler.RouteNews, handler.RouteNewsID, crudHandlers{
			List: newsHandler.List, NewForm: newsHandler.NewForm, Create: newsHandler.Create,
			EditForm: newsHandler.EditForm, Update: newsHandler.Update, Delete: newsHandler.Delete,
		})
		r.Post(handler.RouteNewsID+handler.RouteSuffixToggle, newsHandler.TogglePublish)

		registerCRUD(r, handler.RouteReports, handler.RouteReportsID, crudHandlers{
			List: reportHandler.List, NewForm: reportHandler.NewForm, Create: reportHandler.Create,
			EditForm: reportHandler.EditForm, Update: reportHandler.Update, Delete: reportHandler.Delete,
		})
		r.Post(handler.RouteReportsID+handler.RouteSuffixToggle, reportHandler.TogglePublish)

		registerCRUD(r, handler.RoutePublications, handler.RoutePublicationsID, crudHandlers{
			List: publicationHandler.List, NewForm: publicationHandler.NewForm, Create: publicationHandler.Create,
			EditForm: publicationHandler.EditForm, Update: publicationHandler.Update, Delete: publicationHandler.Delete,
		})
		r.Post(handler.RoutePublicationsID+handler.RouteSuffixToggle, publicationHandler.TogglePublish)

		registerCRUD(r, handler.RouteMembers, handler.RouteMembersID, crudHandlers{
			List: memberHandler.List, NewForm: memberHandler.NewForm, Create: memberHandler.Create,
			EditForm: memberHandler.EditForm, Update: memberHandler.Update, Delete: memberHandler.Delete,
		})
		r.Post(handler.RouteMembersID+handler.RouteSuffixToggle, memberHandler.ToggleActive)
	})

	// Static assets
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	r.NotFound(frontendHandler.NotFound)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
