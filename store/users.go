/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/nethesis/app-registry/models"
)

// Authenticate matches login and password against user_master. The
// password column is compared in the query and never read back.
func (s *Store) Authenticate(ctx context.Context, login string, password string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `SELECT user_id, login_name, user_name, role_name
		FROM user_master WHERE login_name = ? AND password_hash = ? LIMIT 1`, login, password).
		Scan(&user.UserID, &user.LoginName, &user.UserName, &user.RoleName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "authenticate")
	}
	return &user, nil
}

// GetUser reads a user by login name, used to rebuild the identity of a token.
func (s *Store) GetUser(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `SELECT user_id, login_name, user_name, role_name
		FROM user_master WHERE login_name = ?`, login).
		Scan(&user.UserID, &user.LoginName, &user.UserName, &user.RoleName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "user"}
	}
	if err != nil {
		return nil, errors.Wrap(err, "read user")
	}
	return &user, nil
}
