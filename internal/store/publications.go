// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/fiscalcouncil-bg/fcsite/internal/model"
)

const publicationColumns = `id, title_bg, title_en, description_bg, description_en,
content_bg, content_en, publication_type, document_url, published, featured, created_at, updated_at`

func scanPublication(row interface{ Scan(...any) error }) (model.Publication, error) {
	var p model.Publication
	err := row.Scan(&p.ID, &p.TitleBG, &p.TitleEN, &p.DescriptionBG, &p.DescriptionEN,
		&p.ContentBG, &p.ContentEN, &p.PublicationType, &p.DocumentURL,
		&p.Published, &p.Featured, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// CreatePublicationParams holds the fields for inserting a publication.
type CreatePublicationParams struct {
	TitleBG         string
	TitleEN         sql.NullString
	DescriptionBG   sql.NullString
	DescriptionEN   sql.NullString
	ContentBG       sql.NullString
	ContentEN       sql.NullString
	PublicationType string
	DocumentURL     sql.NullString
	Published       bool
	Featured        bool
}

const createPublication = `
INSERT INTO publications (title_bg, title_en, description_bg, description_en,
	content_bg, content_en, publication_type, document_url, published, featured,
	created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// CreatePublication inserts a publication and returns its ID.
func (q *Queries) CreatePublication(ctx context.Context, arg CreatePublicationParams) (int64, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx, createPublication,
		arg.TitleBG, arg.TitleEN, arg.DescriptionBG, arg.DescriptionEN,
		arg.ContentBG, arg.ContentEN, arg.PublicationType, arg.DocumentURL,
		arg.Published, arg.Featured, now, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const getPublicationByID = `SELECT ` + publicationColumns + ` FROM publications WHERE id = ? LIMIT 1`

// GetPublicationByID returns the publication with the given ID, or sql.ErrNoRows.
func (q *Queries) GetPublicationByID(ctx context.Context, id int64) (model.Publication, error) {
	return scanPublication(q.db.QueryRowContext(ctx, getPublicationByID, id))
}

const listPublications = `SELECT ` + publicationColumns + ` FROM publications ORDER BY created_at DESC`

// ListPublications returns all publications, newest first.
func (q *Queries) ListPublications(ctx context.Context) ([]model.Publication, error) {
	return q.queryPublications(ctx, listPublications)
}

const listPublishedPublications = `SELECT ` + publicationColumns + ` FROM publications
WHERE published = 1 ORDER BY created_at DESC`

// ListPublishedPublications returns all published publications, newest first.
func (q *Queries) ListPublishedPublications(ctx context.Context) ([]model.Publication, error) {
	return q.queryPublications(ctx, listPublishedPublications)
}

func (q *Queries) queryPublications(ctx context.Context, query string, args ...any) ([]model.Publication, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Publication
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// UpdatePublicationParams holds the fields for updating a publication.
type UpdatePublicationParams struct {
	ID              int64
	TitleBG         string
	TitleEN         sql.NullString
	DescriptionBG   sql.NullString
	DescriptionEN   sql.NullString
	ContentBG       sql.NullString
	ContentEN       sql.NullString
	PublicationType string
	DocumentURL     sql.NullString
	Published       bool
	Featured        bool
}

const updatePublication = `
UPDATE publications SET title_bg = ?, title_en = ?, description_bg = ?, description_en = ?,
	content_bg = ?, content_en = ?, publication_type = ?, document_url = ?,
	published = ?, featured = ?, updated_at = ?
WHERE id = ?
`

// UpdatePublication replaces the stored fields of a publication.
func (q *Queries) UpdatePublication(ctx context.Context, arg UpdatePublicationParams) error {
	_, err := q.db.ExecContext(ctx, updatePublication,
		arg.TitleBG, arg.TitleEN, arg.DescriptionBG, arg.DescriptionEN,
		arg.ContentBG, arg.ContentEN, arg.PublicationType, arg.DocumentURL,
		arg.Published, arg.Featured, time.Now().UTC(), arg.ID)
	return err
}

const setPublicationPublished = `UPDATE publications SET published = ?, updated_at = ? WHERE id = ?`

// SetPublicationPublished flips the published flag of a publication.
func (q *Queries) SetPublicationPublished(ctx context.Context, id int64, published bool) error {
	_, err := q.db.ExecContext(ctx, setPublicationPublished, published, time.Now().UTC(), id)
	return err
}

const deletePublication = `DELETE FROM publications WHERE id = ?`

// DeletePublication removes a publication. Returns sql.ErrNoRows when no row matched.
func (q *Queries) DeletePublication(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deletePublication, id)
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

const countPublications = `SELECT COUNT(*) FROM publications`

// CountPublications returns the total number of publications.
func (q *Queries) CountPublications(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countPublications).Scan(&n)
	return n, err
}
