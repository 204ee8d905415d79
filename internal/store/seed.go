// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fiscalcouncil-bg/fcsite/internal/auth"
	"github.com/fiscalcouncil-bg/fcsite/internal/model"
	"github.com/fiscalcouncil-bg/fcsite/internal/util"
)

// DefaultAdminEmail is the account created on first start when no users exist.
const DefaultAdminEmail = "admin@fiscalcouncil.bg"

// EnsureAdminUser creates the default admin account if the users table is
// empty. Returns the generated password when a user was created, "" otherwise.
func EnsureAdminUser(ctx context.Context, q *Queries, logger *slog.Logger) (string, error) {
	n, err := q.CountUsers(ctx)
	if err != nil {
		return "", fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return "", nil
	}

	password, err := auth.GeneratePassword(16)
	if err != nil {
		return "", fmt.Errorf("generate password: %w", err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	if _, err := q.CreateUser(ctx, CreateUserParams{
		Email:        DefaultAdminEmail,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		Name:         "Administrator",
	}); err != nil {
		return "", fmt.Errorf("create admin user: %w", err)
	}
	logger.Info("created default admin user", "email", DefaultAdminEmail)
	return password, nil
}

// SeedContent inserts a small set of sample records when the content tables
// are empty. Runs in a single transaction so a failed seed leaves nothing
// behind. Intended for development and demo setups only.
func SeedContent(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	n, err := New(db).CountNews(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	q := New(db).WithTx(tx)

	newsItems := []CreateNewsParams{
		{
			TitleBG:   "Фискалният съвет публикува становище по проектобюджета",
			TitleEN:   util.NullStringFromValue("Fiscal Council publishes opinion on the draft budget"),
			ContentBG: "Фискалният съвет разгледа проекта на държавен бюджет и публикува своето становище относно заложените макроикономически допускания.",
			ContentEN: util.NullStringFromValue("The Fiscal Council reviewed the draft state budget and published its opinion on the underlying macroeconomic assumptions."),
			ExcerptBG: util.NullStringFromValue("Становище по проектобюджета за следващата година."),
			Category:  model.NewsCategoryOpinion,
			Slug:      "stanovishte-proektobyudzhet",
			Published: true,
			Featured:  true,
		},
		{
			TitleBG:   "Нов анализ на фискалната устойчивост",
			ContentBG: "Съветът публикува анализ на средносрочната фискална устойчивост на публичните финанси.",
			Category:  model.NewsCategoryAnalysis,
			Slug:      "analiz-fiskalna-ustoychivost",
			Published: true,
		},
	}
	for _, item := range newsItems {
		if _, err := q.CreateNews(ctx, item); err != nil {
			return fmt.Errorf("seed news: %w", err)
		}
	}

	if _, err := q.CreateReport(ctx, CreateReportParams{
		TitleBG:       "Годишен доклад за дейността",
		TitleEN:       util.NullStringFromValue("Annual activity report"),
		DescriptionBG: util.NullStringFromValue("Годишен доклад за дейността на Фискалния съвет."),
		ReportType:    model.ReportTypeAnnual,
		KeywordsBG:    []string{"бюджет", "фискални правила"},
		KeywordsEN:    []string{"budget", "fiscal rules"},
		Published:     true,
	}); err != nil {
		return fmt.Errorf("seed report: %w", err)
	}

	if _, err := q.CreatePublication(ctx, CreatePublicationParams{
		TitleBG:         "Публичните финанси в средносрочен план",
		DescriptionBG:   util.NullStringFromValue("Изследване на средносрочната бюджетна рамка."),
		PublicationType: model.PublicationTypeStudy,
		Published:       true,
	}); err != nil {
		return fmt.Errorf("seed publication: %w", err)
	}

	if _, err := q.CreateMember(ctx, CreateMemberParams{
		NameBG:     "Проф. Иван Петров",
		NameEN:     util.NullStringFromValue("Prof. Ivan Petrov"),
		PositionBG: "Председател",
		PositionEN: util.NullStringFromValue("Chairman"),
		Category:   model.MemberCategoryMember,
		OrderIndex: model.DefaultOrderIndex,
		Active:     true,
	}); err != nil {
		return fmt.Errorf("seed member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	logger.Info("seeded sample content")
	return nil
}

// IsUniqueConstraintError reports whether err is a SQLite unique constraint
// violation. Matched by message since modernc.org/sqlite wraps codes opaquely.
func IsUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	return strings.Contains(err.Error(), "constraint failed")
}
