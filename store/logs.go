/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/nethesis/app-registry/models"
)

const defaultLogLimit = 500

// LogFilter narrows a trash bin read. Zero values disable a filter.
type LogFilter struct {
	RecordID models.ID
	Users    []string
	Actions  []string
	From     time.Time
	To       time.Time
	Limit    int
}

// ListLogs reads the trash bin of one entity, newest first.
func (s *Store) ListLogs(ctx context.Context, slug string, filter LogFilter) ([]models.LogEntry, error) {
	e, ok := EntityBySlug(slug)
	if !ok {
		return nil, errors.Wrap(ErrUnknownEntity, slug)
	}

	query := "SELECT * FROM " + e.LogTable + " WHERE 1 = 1"
	var args []interface{}

	if filter.RecordID > 0 {
		query += " AND " + e.Key + " = ?"
		args = append(args, filter.RecordID)
	}
	if len(filter.Users) > 0 {
		query += " AND log_user IN (" + placeholders(len(filter.Users)) + ")"
		for _, u := range filter.Users {
			args = append(args, u)
		}
	}
	if len(filter.Actions) > 0 {
		query += " AND log_type IN (" + placeholders(len(filter.Actions)) + ")"
		for _, a := range filter.Actions {
			args = append(args, strings.ToLower(a))
		}
	}
	if !filter.From.IsZero() {
		query += " AND log_date >= ?"
		args = append(args, filter.From.UTC())
	}
	if !filter.To.IsZero() {
		query += " AND log_date <= ?"
		args = append(args, filter.To.UTC())
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLogLimit
	}
	query += fmt.Sprintf(" ORDER BY log_id DESC LIMIT %d", limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", e.LogTable)
	}
	defer rows.Close()

	entries := []models.LogEntry{}
	for rows.Next() {
		row, err := scanMap(rows)
		if err != nil {
			return nil, errors.Wrapf(err, "scan %s", e.LogTable)
		}
		entries = append(entries, models.LogEntry(row))
	}
	return entries, errors.Wrapf(rows.Err(), "read %s", e.LogTable)
}
