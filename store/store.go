/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/nethesis/app-registry/db"
	"github.com/nethesis/app-registry/models"
)

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Store runs every registry read and audited mutation on one connection pool.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func New(conn *sql.DB) *Store {
	return &Store{db: conn, now: time.Now}
}

// DB returns the underlying pool, used for health checks.
func (s *Store) DB() *sql.DB {
	return s.db
}

// stamp is the provenance and log date of a write. Always UTC, so stored
// dates compare as text on every driver.
func (s *Store) stamp() time.Time {
	return s.now().UTC()
}

// SetClockForTest replaces the clock used for provenance and log dates.
func (s *Store) SetClockForTest(now func() time.Time) {
	s.now = now
}

// withTx runs fn in a transaction, committed only when fn succeeds.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "commit transaction")
}

// Create inserts a row, then archives the stored image with log type "new".
func (s *Store) Create(ctx context.Context, e Entity, user string, values map[string]interface{}) (models.ID, error) {
	var id models.ID
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.createTx(ctx, tx, e, user, values)
		return err
	})
	return id, err
}

// Update archives the current image with log type "edit", then applies values.
func (s *Store) Update(ctx context.Context, e Entity, id models.ID, user string, values map[string]interface{}) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.updateTx(ctx, tx, e, id, user, values)
	})
}

// Delete archives the current image with log type "delete", then removes the row.
func (s *Store) Delete(ctx context.Context, e Entity, id models.ID, user string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.deleteTx(ctx, tx, e, id, user)
	})
}

func (s *Store) createTx(ctx context.Context, q queryer, e Entity, user string, values map[string]interface{}) (models.ID, error) {
	now := s.stamp()
	columns, args := sortedColumns(values)
	columns = append(columns, "created_by", "created_date", "updated_by", "updated_date")
	args = append(args, user, now, user, now)

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", e.Table, strings.Join(columns, ", "), placeholders(len(columns)))
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, writeError(e, err, "insert")
	}

	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrapf(err, "read %s key", e.Table)
	}
	id := models.ID(lastID)

	row, err := snapshot(ctx, q, e, id)
	if err != nil {
		return 0, err
	}
	if err := s.writeLog(ctx, q, e, models.ActionNew, user, row); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) updateTx(ctx context.Context, q queryer, e Entity, id models.ID, user string, values map[string]interface{}) error {
	row, err := snapshot(ctx, q, e, id)
	if err != nil {
		return err
	}
	if err := s.writeLog(ctx, q, e, models.ActionEdit, user, row); err != nil {
		return err
	}

	columns, args := sortedColumns(values)
	columns = append(columns, "updated_by", "updated_date")
	args = append(args, user, s.stamp(), id)

	assignments := make([]string, len(columns))
	for i, column := range columns {
		assignments[i] = column + " = ?"
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", e.Table, strings.Join(assignments, ", "), e.Key)
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return writeError(e, err, "update")
	}
	return nil
}

func (s *Store) deleteTx(ctx context.Context, q queryer, e Entity, id models.ID, user string) error {
	row, err := snapshot(ctx, q, e, id)
	if err != nil {
		return err
	}

	for _, ref := range e.References {
		var count int
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ?", ref.Table, ref.Column)
		if err := q.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
			return errors.Wrapf(err, "check references of %s in %s", e.Table, ref.Table)
		}
		if count > 0 {
			return &ReferencedError{Entity: e.Name, Label: ref.Label}
		}
	}

	if err := s.writeLog(ctx, q, e, models.ActionDelete, user, row); err != nil {
		return err
	}

	res, err := q.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = ?", e.Table, e.Key), id)
	if err != nil {
		if referenced, _ := db.IsForeignKeyViolation(err); referenced {
			return &ReferencedError{Entity: e.Name}
		}
		return errors.Wrapf(err, "delete from %s", e.Table)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return &NotFoundError{Entity: e.Name}
	}
	return nil
}

// writeLog appends one trash bin row built from a snapshot.
func (s *Store) writeLog(ctx context.Context, q queryer, e Entity, action string, user string, row map[string]interface{}) error {
	columns := make([]string, 0, len(e.LogColumns)+3)
	args := make([]interface{}, 0, len(e.LogColumns)+3)
	for _, column := range e.LogColumns {
		columns = append(columns, column)
		args = append(args, row[column])
	}
	columns = append(columns, "log_type", "log_user", "log_date")
	args = append(args, action, user, s.stamp())

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", e.LogTable, strings.Join(columns, ", "), placeholders(len(columns)))
	_, err := q.ExecContext(ctx, query, args...)
	return errors.Wrapf(err, "write %s", e.LogTable)
}

// snapshot reads the row of e keyed by id as a column map.
func snapshot(ctx context.Context, q queryer, e Entity, id models.ID) (map[string]interface{}, error) {
	rows, err := q.QueryContext(ctx, e.Snapshot, id)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", e.Table)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, errors.Wrapf(err, "read %s", e.Table)
		}
		return nil, &NotFoundError{Entity: e.Name}
	}

	row, err := scanMap(rows)
	if err != nil {
		return nil, errors.Wrapf(err, "scan %s", e.Table)
	}
	return row, nil
}

// scanMap scans the current row into a map keyed by column name.
func scanMap(rows *sql.Rows) (map[string]interface{}, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	values := make([]interface{}, len(columns))
	targets := make([]interface{}, len(columns))
	for i := range values {
		targets[i] = &values[i]
	}
	if err := rows.Scan(targets...); err != nil {
		return nil, err
	}

	row := make(map[string]interface{}, len(columns))
	for i, column := range columns {
		if b, ok := values[i].([]byte); ok {
			row[column] = string(b)
		} else {
			row[column] = values[i]
		}
	}
	return row, nil
}

// writeError translates driver errors of an INSERT or UPDATE.
func writeError(e Entity, err error, op string) error {
	if _, missingParent := db.IsForeignKeyViolation(err); missingParent {
		return &InvalidReferenceError{Entity: e.Name}
	}
	return errors.Wrapf(err, "%s %s", op, e.Table)
}

// sortedColumns gives a stable column order so statements are reproducible.
func sortedColumns(values map[string]interface{}) ([]string, []interface{}) {
	columns := make([]string, 0, len(values))
	for column := range values {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	args := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		args = append(args, values[column])
	}
	return columns, args
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return "?" + strings.Repeat(", ?", n-1)
}
