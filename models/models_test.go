/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fatih/structs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var cert CertificateInput
	require.NoError(t, json.Unmarshal([]byte(`{"certificate_name":"www","expiry_date":"2025-03-01"}`), &cert))
	assert.Equal(t, NewDate(2025, time.March, 1), cert.ExpiryDate)

	require.NoError(t, json.Unmarshal([]byte(`{"expiry_date":"2025-03-01T22:10:00Z"}`), &cert))
	assert.Equal(t, "2025-03-01", cert.ExpiryDate.String())

	require.NoError(t, json.Unmarshal([]byte(`{"expiry_date":null}`), &cert))
	assert.True(t, cert.ExpiryDate.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"expiry_date":"01/03/2025"}`), &cert))

	out, err := json.Marshal(Certificate{CertID: 3, ExpiryDate: NewDate(2026, time.January, 9)})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"expiry_date":"2026-01-09"`)
}

func TestDateScanAndValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2025-07-04"))
	assert.Equal(t, NewDate(2025, time.July, 4), d)

	require.NoError(t, d.Scan([]byte("2024-02-29 00:00:00")))
	assert.Equal(t, "2024-02-29", d.String())

	require.NoError(t, d.Scan(time.Date(2023, time.May, 5, 13, 0, 0, 0, time.Local)))
	assert.Equal(t, "2023-05-05", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))

	v, err := NewDate(2025, time.December, 31).Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestIDAcceptsNumbersAndStrings(t *testing.T) {
	var in AppServerInput
	require.NoError(t, json.Unmarshal([]byte(`{"aapid":"12","server_id":3,"type_id":""}`), &in))
	assert.Equal(t, ID(12), in.Aapid)
	assert.Equal(t, ID(3), in.ServerID)
	assert.Equal(t, ID(0), in.TypeID)

	assert.Error(t, json.Unmarshal([]byte(`{"server_id":"web"}`), &in))
	assert.Error(t, json.Unmarshal([]byte(`{"server_id":1.5}`), &in))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, ID(42), id)

	for _, bad := range []string{"", "abc", "0", "-4", "1.2"} {
		_, err := ParseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestInputColumns(t *testing.T) {
	in := VersionInput{
		VersionDate:   NewDate(2025, time.April, 2),
		ReleaseTypeID: 2,
		Changes:       "bug fixes",
		Actor:         Actor{CreatedBy: "bob"},
	}

	columns := structs.Map(in)
	assert.Equal(t, map[string]interface{}{
		"version_date":    NewDate(2025, time.April, 2),
		"release_type_id": ID(2),
		"changes":         "bug fixes",
	}, columns, "zero parent id and actor must not become columns")

	in.Aapid = 9
	assert.Equal(t, ID(9), structs.Map(in)["aapid"])
}

func TestSingleFindingReport(t *testing.T) {
	var single SingleFindingInput
	body := `{"aapid":"4","audit_name":"VAPT","created_date":"2025-01-10","findings":"XSS","severity":"High","verification_status":"Open"}`
	require.NoError(t, json.Unmarshal([]byte(body), &single))

	report := single.Report()
	assert.Equal(t, ID(4), report.Aapid)
	assert.Equal(t, "2025-01-10", report.Day().String())
	require.Len(t, report.Findings, 1)
	assert.Equal(t, "XSS", report.Findings[0].Findings)
	assert.True(t, report.Findings[0].Complete())
	assert.False(t, AuditFindingFields{Severity: "Low"}.Complete())
}
