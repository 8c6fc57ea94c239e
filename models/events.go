/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package models

import "time"

const (
	ActionNew      = "new"
	ActionEdit     = "edit"
	ActionDelete   = "delete"
	ActionExpiring = "expiring"
)

// RegistryEvent is published after a committed change.
type RegistryEvent struct {
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	ID        ID        `json:"id"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details,omitempty"`
	// Origin identifies the registry instance that made the change.
	Origin string `json:"origin,omitempty"`
}
