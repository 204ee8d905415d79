// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/fiscalcouncil-bg/fcsite/internal/model"
	"github.com/fiscalcouncil-bg/fcsite/internal/util"
)

const reportColumns = `id, title_bg, title_en, description_bg, description_en,
report_type, keywords_bg, keywords_en, document_url, published, created_at, updated_at`

func scanReport(row interface{ Scan(...any) error }) (model.Report, error) {
	var r model.Report
	var kwBG, kwEN sql.NullString
	err := row.Scan(&r.ID, &r.TitleBG, &r.TitleEN, &r.DescriptionBG, &r.DescriptionEN,
		&r.ReportType, &kwBG, &kwEN, &r.DocumentURL, &r.Published, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return r, err
	}
	r.KeywordsBG = model.SplitKeywords(kwBG.String)
	r.KeywordsEN = model.SplitKeywords(kwEN.String)
	return r, nil
}

// Keywords persist as a comma-separated TEXT column, NULL when empty.
func keywordsValue(kw []string) sql.NullString {
	if len(kw) == 0 {
		return sql.NullString{}
	}
	return util.NullStringFromValue(model.JoinKeywords(kw))
}

// CreateReportParams holds the fields for inserting a report.
type CreateReportParams struct {
	TitleBG       string
	TitleEN       sql.NullString
	DescriptionBG sql.NullString
	DescriptionEN sql.NullString
	ReportType    string
	KeywordsBG    []string
	KeywordsEN    []string
	DocumentURL   sql.NullString
	Published     bool
}

const createReport = `
INSERT INTO reports (title_bg, title_en, description_bg, description_en,
	report_type, keywords_bg, keywords_en, document_url, published, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// CreateReport inserts a report and returns its ID.
func (q *Queries) CreateReport(ctx context.Context, arg CreateReportParams) (int64, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx, createReport,
		arg.TitleBG, arg.TitleEN, arg.DescriptionBG, arg.DescriptionEN,
		arg.ReportType, keywordsValue(arg.KeywordsBG), keywordsValue(arg.KeywordsEN),
		arg.DocumentURL, arg.Published, now, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const getReportByID = `SELECT ` + reportColumns + ` FROM reports WHERE id = ? LIMIT 1`

// GetReportByID returns the report with the given ID, or sql.ErrNoRows.
func (q *Queries) GetReportByID(ctx context.Context, id int64) (model.Report, error) {
	return scanReport(q.db.QueryRowContext(ctx, getReportByID, id))
}

const listReports = `SELECT ` + reportColumns + ` FROM reports ORDER BY created_at DESC`

// ListReports returns all reports, newest first.
func (q *Queries) ListReports(ctx context.Context) ([]model.Report, error) {
	return q.queryReports(ctx, listReports)
}

const listPublishedReports = `SELECT ` + reportColumns + ` FROM reports
WHERE published = 1 ORDER BY created_at DESC`

// ListPublishedReports returns all published reports, newest first.
func (q *Queries) ListPublishedReports(ctx context.Context) ([]model.Report, error) {
	return q.queryReports(ctx, listPublishedReports)
}

func (q *Queries) queryReports(ctx context.Context, query string, args ...any) ([]model.Report, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

// UpdateReportParams holds the fields for updating a report.
type UpdateReportParams struct {
	ID            int64
	TitleBG       string
	TitleEN       sql.NullString
	DescriptionBG sql.NullString
	DescriptionEN sql.NullString
	ReportType    string
	KeywordsBG    []string
	KeywordsEN    []string
	DocumentURL   sql.NullString
	Published     bool
}

const updateReport = `
UPDATE reports SET title_bg = ?, title_en = ?, description_bg = ?, description_en = ?,
	report_type = ?, keywords_bg = ?, keywords_en = ?, document_url = ?,
	published = ?, updated_at = ?
WHERE id = ?
`

// UpdateReport replaces the stored fields of a report.
func (q *Queries) UpdateReport(ctx context.Context, arg UpdateReportParams) error {
	_, err := q.db.ExecContext(ctx, updateReport,
		arg.TitleBG, arg.TitleEN, arg.DescriptionBG, arg.DescriptionEN,
		arg.ReportType, keywordsValue(arg.KeywordsBG), keywordsValue(arg.KeywordsEN),
		arg.DocumentURL, arg.Published, time.Now().UTC(), arg.ID)
	return err
}

const setReportPublished = `UPDATE reports SET published = ?, updated_at = ? WHERE id = ?`

// SetReportPublished flips the published flag of a report.
func (q *Queries) SetReportPublished(ctx context.Context, id int64, published bool) error {
	_, err := q.db.ExecContext(ctx, setReportPublished, published, time.Now().UTC(), id)
	return err
}

const deleteReport = `DELETE FROM reports WHERE id = ?`

// DeleteReport removes a report. Returns sql.ErrNoRows when no row matched.
func (q *Queries) DeleteReport(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteReport, id)
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

const countReports = `SELECT COUNT(*) FROM reports`

// CountReports returns the total number of reports.
func (q *Queries) CountReports(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countReports).Scan(&n)
	return n, err
}
