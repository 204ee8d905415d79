// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/fiscalcouncil-bg/fcsite/internal/model"
)

const memberColumns = `id, name_bg, name_en, position_bg, position_en,
biography_bg, biography_en, photo_url, category, order_index, active, created_at, updated_at`

func scanMember(row interface{ Scan(...any) error }) (model.Member, error) {
	var m model.Member
	err := row.Scan(&m.ID, &m.NameBG, &m.NameEN, &m.PositionBG, &m.PositionEN,
		&m.BiographyBG, &m.BiographyEN, &m.PhotoURL, &m.Category,
		&m.OrderIndex, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// CreateMemberParams holds the fields for inserting a council member.
type CreateMemberParams struct {
	NameBG      string
	NameEN      sql.NullString
	PositionBG  string
	PositionEN  sql.NullString
	BiographyBG sql.NullString
	BiographyEN sql.NullString
	PhotoURL    sql.NullString
	Category    string
	OrderIndex  int64
	Active      bool
}

const createMember = `
INSERT INTO members (name_bg, name_en, position_bg, position_en,
	biography_bg, biography_en, photo_url, category, order_index, active,
	created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// CreateMember inserts a member and returns its ID.
func (q *Queries) CreateMember(ctx context.Context, arg CreateMemberParams) (int64, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx, createMember,
		arg.NameBG, arg.NameEN, arg.PositionBG, arg.PositionEN,
		arg.BiographyBG, arg.BiographyEN, arg.PhotoURL, arg.Category,
		arg.OrderIndex, arg.Active, now, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const getMemberByID = `SELECT ` + memberColumns + ` FROM members WHERE id = ? LIMIT 1`

// GetMemberByID returns the member with the given ID, or sql.ErrNoRows.
func (q *Queries) GetMemberByID(ctx context.Context, id int64) (model.Member, error) {
	return scanMember(q.db.QueryRowContext(ctx, getMemberByID, id))
}

const listMembers = `SELECT ` + memberColumns + ` FROM members
ORDER BY category, order_index, id`

// ListMembers returns all members ordered by category then display order.
func (q *Queries) ListMembers(ctx context.Context) ([]model.Member, error) {
	return q.queryMembers(ctx, listMembers)
}

const listActiveMembers = `SELECT ` + memberColumns + ` FROM members
WHERE active = 1 AND category = ? ORDER BY order_index, id`

// ListActiveMembers returns the active members of one category in display order.
func (q *Queries) ListActiveMembers(ctx context.Context, category string) ([]model.Member, error) {
	return q.queryMembers(ctx, listActiveMembers, category)
}

func (q *Queries) queryMembers(ctx context.Context, query string, args ...any) ([]model.Member, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// UpdateMemberParams holds the fields for updating a council member.
type UpdateMemberParams struct {
	ID          int64
	NameBG      string
	NameEN      sql.NullString
	PositionBG  string
	PositionEN  sql.NullString
	BiographyBG sql.NullString
	BiographyEN sql.NullString
	PhotoURL    sql.NullString
	Category    string
	OrderIndex  int64
	Active      bool
}

const updateMember = `
UPDATE members SET name_bg = ?, name_en = ?, position_bg = ?, position_en = ?,
	biography_bg = ?, biography_en = ?, photo_url = ?, category = ?,
	order_index = ?, active = ?, updated_at = ?
WHERE id = ?
`

// UpdateMember replaces the stored fields of a member.
func (q *Queries) UpdateMember(ctx context.Context, arg UpdateMemberParams) error {
	_, err := q.db.ExecContext(ctx, updateMember,
		arg.NameBG, arg.NameEN, arg.PositionBG, arg.PositionEN,
		arg.BiographyBG, arg.BiographyEN, arg.PhotoURL, arg.Category,
		arg.OrderIndex, arg.Active, time.Now().UTC(), arg.ID)
	return err
}

const setMemberActive = `UPDATE members SET active = ?, updated_at = ? WHERE id = ?`

// SetMemberActive flips the active flag of a member.
func (q *Queries) SetMemberActive(ctx context.Context, id int64, active bool) error {
	_, err := q.db.ExecContext(ctx, setMemberActive, active, time.Now().UTC(), id)
	return err
}

const deleteMember = `DELETE FROM members WHERE id = ?`

// DeleteMember removes a member. Returns sql.ErrNoRows when no row matched.
func (q *Queries) DeleteMember(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteMember, id)
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

const countMembers = `SELECT COUNT(*) FROM members`

// CountMembers returns the total number of members.
func (q *Queries) CountMembers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countMembers).Scan(&n)
	return n, err
}
