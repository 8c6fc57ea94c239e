/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package models

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error" structs:"error"`
	Details string `json:"details,omitempty" structs:"details,omitempty"`
}

// MutationResult is the body of a successful create, update or delete.
type MutationResult struct {
	Success bool   `json:"success" structs:"success"`
	Message string `json:"message" structs:"message"`
	ID      ID     `json:"id,omitempty" structs:"id,omitempty"`
}

type LoginResponse struct {
	Success bool   `json:"success" structs:"success"`
	User    User   `json:"user" structs:"user,omitnested"`
	Token   string `json:"token" structs:"token"`
	Expire  string `json:"expire" structs:"expire"`
}

type HealthStatus struct {
	Status   string `json:"status" structs:"status"`
	Database string `json:"database" structs:"database"`
	Clients  int    `json:"clients" structs:"clients"`
}
