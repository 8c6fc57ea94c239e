/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package store

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrReferenced         = errors.New("referenced")
	ErrInvalidReference   = errors.New("invalid reference")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownEntity      = errors.New("unknown entity")
)

// NotFoundError is returned when the target row of a read or mutation does not exist.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return capitalize(e.Entity) + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ReferencedError is returned when a delete is blocked by rows pointing at the target.
type ReferencedError struct {
	Entity  string
	Label   string
	// Skipped names cleanup steps that left their rows in place.
	Skipped []string
}

func (e *ReferencedError) Error() string {
	label := e.Label
	if label == "" {
		label = "another table"
	}
	msg := fmt.Sprintf("Cannot delete. This %s is referenced in %s. Please remove or update it there first.", e.Entity, label)
	if len(e.Skipped) > 0 {
		msg += " Skipped cleanup steps: " + strings.Join(e.Skipped, ", ") + "."
	}
	return msg
}

func (e *ReferencedError) Is(target error) bool {
	return target == ErrReferenced
}

// InvalidReferenceError is returned when a write points at a parent row that does not exist.
type InvalidReferenceError struct {
	Entity string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("The %s refers to a record that does not exist", e.Entity)
}

func (e *InvalidReferenceError) Is(target error) bool {
	return target == ErrInvalidReference
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
