/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package db

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

// MariaDB/MySQL server error numbers
const (
	errRowIsReferenced = 1451
	errNoReferencedRow = 1452
	errNoSuchTable     = 1146
)

// IsForeignKeyViolation reports whether err is a foreign key failure.
// referenced is true when a row could not be removed because other rows
// point at it, missingParent when a row points at a parent that does not exist.
func IsForeignKeyViolation(err error) (referenced bool, missingParent bool) {
	if err == nil {
		return false, false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case errRowIsReferenced:
			return true, false
		case errNoReferencedRow:
			return false, true
		}
		return false, false
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
		// sqlite does not tell the two directions apart, the caller knows
		// which one a DELETE or an INSERT can produce
		return true, true
	}

	return false, false
}

// IsMissingTable reports whether err comes from a statement on a table that does not exist.
func IsMissingTable(err error) bool {
	if err == nil {
		return false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == errNoSuchTable
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return strings.Contains(liteErr.Error(), "no such table")
	}

	return false
}
