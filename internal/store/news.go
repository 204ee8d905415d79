// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/fiscalcouncil-bg/fcsite/internal/model"
)

const newsColumns = `id, title_bg, title_en, content_bg, content_en, excerpt_bg, excerpt_en,
category, image_url, slug, published, featured, created_at, updated_at`

func scanNews(row interface{ Scan(...any) error }) (model.News, error) {
	var n model.News
	err := row.Scan(&n.ID, &n.TitleBG, &n.TitleEN, &n.ContentBG, &n.ContentEN,
		&n.ExcerptBG, &n.ExcerptEN, &n.Category, &n.ImageURL, &n.Slug,
		&n.Published, &n.Featured, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

// CreateNewsParams holds the fields for inserting a news item.
type CreateNewsParams struct {
	TitleBG   string
	TitleEN   sql.NullString
	ContentBG string
	ContentEN sql.NullString
	ExcerptBG sql.NullString
	ExcerptEN sql.NullString
	Category  string
	ImageURL  sql.NullString
	Slug      string
	Published bool
	Featured  bool
}

const createNews = `
INSERT INTO news (title_bg, title_en, content_bg, content_en, excerpt_bg, excerpt_en,
	category, image_url, slug, published, featured, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// CreateNews inserts a news item and returns its ID.
func (q *Queries) CreateNews(ctx context.Context, arg CreateNewsParams) (int64, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx, createNews,
		arg.TitleBG, arg.TitleEN, arg.ContentBG, arg.ContentEN,
		arg.ExcerptBG, arg.ExcerptEN, arg.Category, arg.ImageURL,
		arg.Slug, arg.Published, arg.Featured, now, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const getNewsByID = `SELECT ` + newsColumns + ` FROM news WHERE id = ? LIMIT 1`

// GetNewsByID returns the news item with the given ID, or sql.ErrNoRows.
func (q *Queries) GetNewsByID(ctx context.Context, id int64) (model.News, error) {
	return scanNews(q.db.QueryRowContext(ctx, getNewsByID, id))
}

const getNewsBySlug = `SELECT ` + newsColumns + ` FROM news WHERE slug = ? LIMIT 1`

// GetNewsBySlug returns the news item with the given slug, or sql.ErrNoRows.
func (q *Queries) GetNewsBySlug(ctx context.Context, slug string) (model.News, error) {
	return scanNews(q.db.QueryRowContext(ctx, getNewsBySlug, slug))
}

const listNews = `SELECT ` + newsColumns + ` FROM news ORDER BY created_at DESC`

// ListNews returns all news items, newest first.
func (q *Queries) ListNews(ctx context.Context) ([]model.News, error) {
	return q.queryNews(ctx, listNews)
}

const listPublishedNews = `SELECT ` + newsColumns + ` FROM news
WHERE published = 1 ORDER BY created_at DESC`

// ListPublishedNews returns all published news items, newest first.
func (q *Queries) ListPublishedNews(ctx context.Context) ([]model.News, error) {
	return q.queryNews(ctx, listPublishedNews)
}

const listFeaturedNews = `SELECT ` + newsColumns + ` FROM news
WHERE published = 1 AND featured = 1 ORDER BY created_at DESC LIMIT ?`

// ListFeaturedNews returns up to limit published featured news items, newest first.
func (q *Queries) ListFeaturedNews(ctx context.Context, limit int64) ([]model.News, error) {
	return q.queryNews(ctx, listFeaturedNews, limit)
}

func (q *Queries) queryNews(ctx context.Context, query string, args ...any) ([]model.News, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.News
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// UpdateNewsParams holds the fields for updating a news item.
type UpdateNewsParams struct {
	ID        int64
	TitleBG   string
	TitleEN   sql.NullString
	ContentBG string
	ContentEN sql.NullString
	ExcerptBG sql.NullString
	ExcerptEN sql.NullString
	Category  string
	ImageURL  sql.NullString
	Slug      string
	Published bool
	Featured  bool
}

const updateNews = `
UPDATE news SET title_bg = ?, title_en = ?, content_bg = ?, content_en = ?,
	excerpt_bg = ?, excerpt_en = ?, category = ?, image_url = ?, slug = ?,
	published = ?, featured = ?, updated_at = ?
WHERE id = ?
`

// UpdateNews replaces the stored fields of a news item.
func (q *Queries) UpdateNews(ctx context.Context, arg UpdateNewsParams) error {
	_, err := q.db.ExecContext(ctx, updateNews,
		arg.TitleBG, arg.TitleEN, arg.ContentBG, arg.ContentEN,
		arg.ExcerptBG, arg.ExcerptEN, arg.Category, arg.ImageURL,
		arg.Slug, arg.Published, arg.Featured, time.Now().UTC(), arg.ID)
	return err
}

const setNewsPublished = `UPDATE news SET published = ?, updated_at = ? WHERE id = ?`

// SetNewsPublished flips the published flag of a news item.
func (q *Queries) SetNewsPublished(ctx context.Context, id int64, published bool) error {
	_, err := q.db.ExecContext(ctx, setNewsPublished, published, time.Now().UTC(), id)
	return err
}

const deleteNews = `DELETE FROM news WHERE id = ?`

// DeleteNews removes a news item. Returns sql.ErrNoRows when no row matched.
func (q *Queries) DeleteNews(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteNews, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const countNews = `SELECT COUNT(*) FROM news`

// CountNews returns the total number of news items.
func (q *Queries) CountNews(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countNews).Scan(&n)
	return n, err
}
