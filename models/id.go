/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is a row key. Browser forms post select values as strings, so both
// 7 and "7" are accepted.
type ID int64

func (id *ID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		*id = 0
		return nil
	}

	var number json.Number
	if err := json.Unmarshal([]byte(strings.Trim(raw, `"`)), &number); err != nil {
		return fmt.Errorf("invalid id %s", raw)
	}
	value, err := strconv.ParseInt(number.String(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s", raw)
	}
	*id = ID(value)
	return nil
}

// ParseID parses a path parameter, only positive keys are valid.
func ParseID(value string) (ID, error) {
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	return ID(parsed), nil
}
