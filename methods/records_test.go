/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package methods

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nethesis/app-registry/models"
)

func TestAuditReportEndpoints(t *testing.T) {
	env := newTestEnv(t, "")
	_, _, app := env.seedApplication(t)

	w := env.do(t, http.MethodGet, "/api/audit-report-id/"+idString(app), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())

	w = env.do(t, http.MethodPost, "/api/audit-report-with-findings", gin.H{
		"aapid": app, "audit_name": "VAPT 2025", "created_date": "2025-05-02", "created_by": "auditor",
		"findings": []gin.H{
			{"findings": "XSS on login", "severity": "High", "verification_status": "Open"},
			{"findings": "Weak TLS", "severity": "Medium", "verification_status": "Closed", "developer_remarks": "fixed"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.AuditReportCreated
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 2, created.TotalFindings)
	assert.Len(t, created.FindingIDs, 2)
	assert.Zero(t, created.FindingID)
	assert.Equal(t, 2, env.count(t, "log_audit_findings", "log_type = 'new' AND log_user = 'auditor'"))
	assert.Len(t, env.events.all(), 2)

	w = env.do(t, http.MethodGet, "/api/audit-report-id/"+idString(app), nil)
	assert.JSONEq(t, `{"audit_report_id":1}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/audit-logs/by-app/"+idString(app), nil)
	var findings []models.AuditFinding
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &findings))
	require.Len(t, findings, 2)
	assert.Equal(t, "VAPT 2025", findings[0].AuditName)
	assert.Equal(t, "HR Portal", findings[0].AppName)

	w = env.do(t, http.MethodPut, "/api/audit-logs/"+idString(created.FindingIDs[0]), gin.H{
		"findings": "XSS on login", "severity": "High", "verification_status": "Closed",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, env.count(t, "log_audit_findings", "log_type = 'edit' AND verification_status = 'Open'"))

	w = env.do(t, http.MethodDelete, "/api/audit-logs/"+idString(created.FindingIDs[1]), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.count(t, "audit_findings", ""))
}

func TestAuditReportValidation(t *testing.T) {
	env := newTestEnv(t, "")
	_, _, app := env.seedApplication(t)

	w := env.do(t, http.MethodPost, "/api/audit-report-with-findings", gin.H{
		"aapid": app, "audit_name": "VAPT", "findings": []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields or invalid findings array", decode(t, w)["error"])

	w = env.do(t, http.MethodPost, "/api/audit-report-with-findings", gin.H{
		"aapid": app, "audit_name": "VAPT", "findings": []gin.H{{"findings": "XSS", "severity": "High"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/audit-findings", gin.H{
		"aapid": app, "audit_name": "VAPT", "severity": "High", "verification_status": "Open",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown application
	w = env.do(t, http.MethodPost, "/api/audit-findings", gin.H{
		"aapid": 99, "audit_name": "VAPT", "findings": "XSS", "severity": "High", "verification_status": "Open",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, 0, env.count(t, "audit_report", ""))
	assert.Equal(t, 0, env.count(t, "log_audit_findings", ""))
}

func TestSingleFindingDefaultsToToday(t *testing.T) {
	env := newTestEnv(t, "")
	_, _, app := env.seedApplication(t)

	w := env.do(t, http.MethodPost, "/api/audit-findings", gin.H{
		"aapid": app, "audit_name": "VAPT", "findings": "XSS", "severity": "High", "verification_status": "Open",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.EqualValues(t, 1, decode(t, w)["finding_id"])
	assert.Equal(t, 1, env.count(t, "audit_report", "audit_date = '2025-06-01'"))
}

func TestCertificatesAndExpiry(t *testing.T) {
	env := newTestEnv(t, "")
	_, _, app := env.seedApplication(t)
	ctx := context.Background()

	_, err := env.store.CreateCertificate(ctx, "admin", models.CertificateInput{
		Aapid: app, CertificateName: "soon.example.com", ExpiryDate: models.NewDate(2025, time.June, 11),
	})
	require.NoError(t, err)
	_, err = env.store.CreateCertificate(ctx, "admin", models.CertificateInput{
		Aapid: app, CertificateName: "later.example.com", ExpiryDate: models.NewDate(2025, time.September, 9),
	})
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/api/ssl-certificates-expiring?days=30", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var certs []models.Certificate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &certs))
	require.Len(t, certs, 1)
	assert.Equal(t, "soon.example.com", certs[0].CertificateName)
	assert.Equal(t, "HR Portal", certs[0].AppName)

	w = env.do(t, http.MethodGet, "/api/ssl-certificates-expiring?days=365", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &certs))
	assert.Len(t, certs, 2)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/ssl-certificates-expiring?days=-1", nil).Code)

	assert.Equal(t, 1, env.handler.ScanExpiringCertificates(ctx))
	events := env.events.all()
	require.Len(t, events, 1)
	assert.Equal(t, models.ActionExpiring, events[0].Action)
	assert.Equal(t, "certificates", events[0].Entity)
	assert.Equal(t, "2025-06-11", events[0].Details)

	w = env.do(t, http.MethodPut, "/api/ssl-certificates/1", gin.H{"certificate_name": "soon.example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/api/ssl-certificates/1", gin.H{"certificate_name": "soon.example.com", "expiry_date": "2026-06-11"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, env.count(t, "ssl_certificates", "expiry_date = '2026-06-11' AND aapid = ?", app))
	assert.Equal(t, 1, env.count(t, "log_app_ssl", "log_type = 'edit' AND expiry_date LIKE '2025-06-11%'"))
}

func TestVersionsAndDomainsByApplication(t *testing.T) {
	env := newTestEnv(t, "")
	_, _, app := env.seedApplication(t)

	w := env.do(t, http.MethodPost, "/api/app-versions", gin.H{
		"aapid": app, "version_date": "2025-05-01", "release_type_id": 2, "changes": "bugfixes",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/app-versions/"+idString(app), nil)
	var versions []models.Version
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &versions))
	require.Len(t, versions, 1)
	assert.Equal(t, "Minor", versions[0].ReleaseTypeName)

	w = env.do(t, http.MethodPost, "/api/domain", gin.H{"aapid": app, "domain_name": "hr.example.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = env.do(t, http.MethodPut, "/api/domain/1", gin.H{"domain_name": "people.example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/domain/"+idString(app), nil)
	var domains []models.Domain
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &domains))
	require.Len(t, domains, 1)
	assert.Equal(t, "people.example.com", domains[0].DomainName)
	assert.Equal(t, app, domains[0].Aapid)
}

type fixedCount int

func (f fixedCount) Count() int { return int(f) }

func TestHealth(t *testing.T) {
	env := newTestEnv(t, "")
	env.router.GET("/health", env.handler.Health(fixedCount(2)))

	w := env.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"ok","clients":2}`, w.Body.String())

	env.store.DB().Close()
	w = env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "degraded", decode(t, w)["status"])
}

func TestFrontendFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>registry</html>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o600))

	router := gin.New()
	router.NoRoute(Frontend(dir))

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)
		return w
	}

	w := get("/app.js")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	w = get("/applications/7/servers")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "registry")

	w = get("/../../etc/passwd")
	assert.NotContains(t, w.Body.String(), "root:")

	w = get("/api/nothing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "API route not found")

	empty := gin.New()
	empty.NoRoute(Frontend(t.TempDir()))
	w = httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	empty.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
