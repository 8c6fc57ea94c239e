/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package utils

import (
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/nethesis/app-registry/logs"
)

// LogError writes err to the process log, or to stderr before logs.Init.
func LogError(err error) {
	if err == nil {
		return
	}
	if logs.Logs == nil {
		os.Stderr.WriteString(err.Error() + "\n")
		return
	}
	logs.Logs.Output(2, err.Error())
}

// LogRequestError tags err with the id of the request that failed.
func LogRequestError(requestID string, err error, message string) {
	if err == nil {
		return
	}
	if requestID != "" {
		message = message + " (request " + requestID + ")"
	}
	LogError(errors.Wrap(err, message))
}

// SplitList turns a comma separated query value into its trimmed, non empty items.
func SplitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
