// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscalcouncil-bg/fcsite/internal/model"
	"github.com/fiscalcouncil-bg/fcsite/internal/util"
)

func testDB(t *testing.T) *Queries {
	t.Helper()
	_, q := testDBConn(t)
	return q
}

func testDBConn(t *testing.T) (*sql.DB, *Queries) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := NewDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(db))
	return db, New(db)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUserCRUD(t *testing.T) {
	q := testDB(t)
	ctx := context.Background()

	id, err := q.CreateUser(ctx, CreateUserParams{
		Email:        "editor@example.bg",
		PasswordHash: "$argon2id$fake",
		Role:         model.RoleEditor,
		Name:         "Editor",
	})
	require.NoError(t, err)
	require.Positive(t, id)

	u, err := q.GetUserByEmail(ctx, "editor@example.bg")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, model.RoleEditor, u.Role)
	assert.False(t, u.LastLoginAt.Valid)

	require.NoError(t, q.UpdateUserLastLogin(ctx, id))
	u, err = q.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, u.LastLoginAt.Valid)

	_, err = q.GetUserByEmail(ctx, "missing@example.bg")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestNewsCRUD(t *testing.T) {
	q := testDB(t)
	ctx := context.Background()

	id, err := q.CreateNews(ctx, CreateNewsParams{
		TitleBG:   "Заглавие",
		TitleEN:   util.NullStringFromValue("Title"),
		ContentBG: "Съдържание",
		Category:  model.NewsCategoryNews,
		Slug:      "zaglavie",
		Published: false,
	})
	require.NoError(t, err)

	n, err := q.GetNewsByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Заглавие", n.TitleBG)
	assert.False(t, n.Published)

	// Draft must not appear in the public listing.
	published, err := q.ListPublishedNews(ctx)
	require.NoError(t, err)
	assert.Empty(t, published)

	all, err := q.ListNews(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, q.SetNewsPublished(ctx, id, true))
	published, err = q.ListPublishedNews(ctx)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.True(t, published[0].Published)

	n.TitleBG = "Ново заглавие"
	require.NoError(t, q.UpdateNews(ctx, UpdateNewsParams{
		ID:        id,
		TitleBG:   "Ново заглавие",
		TitleEN:   n.TitleEN,
		ContentBG: n.ContentBG,
		Category:  n.Category,
		Slug:      n.Slug,
		Published: true,
	}))
	n, err = q.GetNewsByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ново заглавие", n.TitleBG)

	bySlug, err := q.GetNewsBySlug(ctx, "zaglavie")
	require.NoError(t, err)
	assert.Equal(t, id, bySlug.ID)

	require.NoError(t, q.DeleteNews(ctx, id))
	_, err = q.GetNewsByID(ctx, id)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDeleteMissingRowReturnsNoRows(t *testing.T) {
	q := testDB(t)
	ctx := context.Background()

	assert.ErrorIs(t, q.DeleteNews(ctx, 999), sql.ErrNoRows)
	assert.ErrorIs(t, q.DeleteReport(ctx, 999), sql.ErrNoRows)
	assert.ErrorIs(t, q.DeletePublication(ctx, 999), sql.ErrNoRows)
	assert.ErrorIs(t, q.DeleteMember(ctx, 999), sql.ErrNoRows)
}

func TestNewsSlugUnique(t *testing.T) {
	q := testDB(t)
	ctx := context.Background()

	params := CreateNewsParams{
		TitleBG:   "Първа",
		ContentBG: "x",
		Category:  model.NewsCategoryNews,
		Slug:      "duplicate",
	}
	_, err := q.CreateNews(ctx, params)
	require.NoError(t, err)

	params.TitleBG = "Втора"
	_, err = q.CreateNews(ctx, params)
	require.Error(t, err)
	assert.True(t, IsUniqueConstraintError(err))
}

func TestReportKeywordsRoundTrip(t *testing.T) {
	q := testDB(t)
	ctx := context.Background()

	id, err := q.CreateReport(ctx, CreateReportParams{
		TitleBG:    "Доклад",
		ReportType: model.ReportTypeReport,
		KeywordsBG: []string{"бюджет", "дълг"},
		KeywordsEN: nil,
		Published:  true,
	})
	require.NoError(t, err)

	r, err := q.GetReportByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"бюджет", "дълг"}, r.KeywordsBG)
	assert.Nil(t, r.KeywordsEN)
}

func TestListPublishedReportsOrder(t *testing.T) {
	q := testDB(t)
	ctx := context.Background()

	for _, title := range []string{"Стар", "Нов"} {
		_, err := q.CreateReport(ctx, CreateReportParams{
			TitleBG:    title,
			ReportType: model.ReportTypeOpinion,
			Published:  true,
		})
		require.NoError(t, err)
	}
	_, err := q.CreateReport(ctx, CreateReportParams{
		TitleBG:    "Чернова",
		ReportType: model.ReportTypeOpinion,
		Published:  false,
	})
	require.NoError(t, err)

	reports, err := q.ListPublishedReports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	for _, r := range reports {
		assert.True(t, r.Published)
	}
	// Newest first; same-second inserts fall back on the stable scan order.
	assert.False(t, reports[0].CreatedAt.Before(reports[1].CreatedAt))
}

func TestPublicationCRUD(t *testing.T) {
	q := testDB(t)
	ctx := context.Background()

	id, err := q.CreatePublication(ctx, CreatePublicationParams{
		TitleBG:         "Публикация",
		PublicationType: model.PublicationTypeGeneral,
		Published:       true,
		Featured:        true,
	})
	require.NoError(t, err)

	p, err := q.GetPublicationByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, p.Featured)

	require.NoError(t, q.SetPublicationPublished(ctx, id, false))
	listed, err := q.ListPublishedPublications(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestMemberOrdering(t *testing.T) {
	q := testDB(t)
	ctx := context.Background()

	create := func(name, category string, order int64, active bool) {
		t.Helper()
		_, err := q.CreateMember(ctx, CreateMemberParams{
			NameBG:     name,
			PositionBG: "Член",
			Category:   category,
			OrderIndex: order,
			Active:     active,
		})
		require.NoError(t, err)
	}
	create("Трети", model.MemberCategoryMember, 3, true)
	create("Първи", model.MemberCategoryMember, 1, true)
	create("Скрит", model.MemberCategoryMember, 2, false)
	create("Експерт", model.MemberCategoryExpert, 1, true)

	members, err := q.ListActiveMembers(ctx, model.MemberCategoryMember)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Първи", members[0].NameBG)
	assert.Equal(t, "Трети", members[1].NameBG)

	experts, err := q.ListActiveMembers(ctx, model.MemberCategoryExpert)
	require.NoError(t, err)
	require.Len(t, experts, 1)
	assert.Equal(t, "Експерт", experts[0].NameBG)

	all, err := q.ListMembers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestEnsureAdminUser(t *testing.T) {
	q := testDB(t)
	ctx := context.Background()

	password, err := EnsureAdminUser(ctx, q, testLogger())
	require.NoError(t, err)
	require.NotEmpty(t, password)

	u, err := q.GetUserByEmail(ctx, DefaultAdminEmail)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, u.Role)

	// Second call is a no-op once a user exists.
	password, err = EnsureAdminUser(ctx, q, testLogger())
	require.NoError(t, err)
	assert.Empty(t, password)

	n, err := q.CountUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestSeedContent(t *testing.T) {
	db, q := testDBConn(t)
	ctx := context.Background()

	require.NoError(t, SeedContent(ctx, db, testLogger()))

	news, err := q.ListNews(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, news)

	// Idempotent: a second run does not duplicate content.
	require.NoError(t, SeedContent(ctx, db, testLogger()))
	again, err := q.ListNews(ctx)
	require.NoError(t, err)
	assert.Len(t, again, len(news))
}

func TestIsUniqueConstraintError(t *testing.T) {
	assert.False(t, IsUniqueConstraintError(nil))
	assert.False(t, IsUniqueConstraintError(sql.ErrNoRows))
	assert.False(t, IsUniqueConstraintError(errors.New("disk I/O error")))
}
