// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the site's periodic maintenance jobs.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// SitemapRefresher regenerates the cached sitemap. Implemented by the
// frontend handler.
type SitemapRefresher interface {
	RefreshSitemap(ctx context.Context) error
}

// Scheduler runs the periodic jobs: expired session sweep and sitemap
// refresh.
type Scheduler struct {
	db      *sql.DB
	sitemap SitemapRefresher
	cron    *cron.Cron
	logger  *slog.Logger
}

// New creates a scheduler instance.
func New(db *sql.DB, sitemap SitemapRefresher, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:      db,
		sitemap: sitemap,
		cron:    cron.New(),
		logger:  logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	// Expired sessions, every 10 minutes. scs cleans lazily on read; this
	// keeps the table small between logins.
	if _, err := s.cron.AddFunc("*/10 * * * *", func() {
		if err := s.sweepExpiredSessions(); err != nil {
			s.logger.Error("failed to sweep expired sessions", "error", err)
		}
	}); err != nil {
		return err
	}

	// Sitemap refresh, hourly.
	if _, err := s.cron.AddFunc("0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.sitemap.RefreshSitemap(ctx); err != nil {
			s.logger.Error("failed to refresh sitemap", "error", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) sweepExpiredSessions() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM sessions WHERE expiry < julianday('now')")
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		s.logger.Info("swept expired sessions", "count", n)
	}
	return nil
}
