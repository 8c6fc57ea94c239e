/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nethesis/app-registry/models"
)

func TestApplicationReads(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := seedApplication(t, s)
	seedDependents(t, s, f)

	apps, err := s.ListApplications(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.NotNil(t, apps[0].OwnerName)
	assert.Equal(t, "Alice", *apps[0].OwnerName)
	assert.Equal(t, "Acme", *apps[0].CompanyName)
	assert.Equal(t, "Internal", *apps[0].AccessTypeName)

	name, err := s.ApplicationName(ctx, f.app)
	require.NoError(t, err)
	assert.Equal(t, "HR Portal", name)

	_, err = s.ApplicationName(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetApplication(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)

	servers, err := s.ListAppServers(ctx, f.app)
	require.NoError(t, err)
	require.Len(t, servers, 1)
	assert.Equal(t, "web01", servers[0].ServerName)
	assert.Equal(t, "Application", servers[0].ServerTypeName)
	assert.Equal(t, "HR Portal", servers[0].AppName)

	owners, err := s.ListAppOwners(ctx, f.app)
	require.NoError(t, err)
	require.Len(t, owners, 1)
	assert.Equal(t, "Alice", *owners[0].OwnerName)
	assert.Equal(t, "Technical Owner", *owners[0].RoleName)

	versions, err := s.ListVersions(ctx, f.app)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, "Major", versions[0].ReleaseTypeName)
	assert.Equal(t, "2025-04-01", versions[0].VersionDate.String())

	findings, err := s.ListAuditFindings(ctx, f.app)
	require.NoError(t, err)
	require.Len(t, findings, 2)
	assert.Equal(t, "VAPT 2025", findings[0].AuditName)
	assert.Equal(t, "HR Portal", findings[0].AppName)

	reportID, ok, err := s.AuditReportID(ctx, f.app)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, findings[0].AuditReportID, reportID)

	_, ok, err = s.AuditReportID(ctx, 404)
	require.NoError(t, err)
	assert.False(t, ok)

	certs, err := s.ListCertificates(ctx, f.app)
	require.NoError(t, err)
	require.Len(t, certs, 1)
	assert.Equal(t, models.NewDate(2026, time.January, 1), certs[0].ExpiryDate)

	all, err := s.ListDomains(ctx)
	require.NoError(t, err)
	byApp, err := s.ListDomainsByApplication(ctx, f.app)
	require.NoError(t, err)
	assert.Equal(t, all, byApp)

	hosting, err := s.ListHostingServers(ctx)
	require.NoError(t, err)
	require.Len(t, hosting, 1)
	assert.Nil(t, hosting[0].CreatedBy)

	companies, err := s.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "Acme Group", *companies[0].GroupName)
}

func TestListExpiringCertificates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := seedApplication(t, s)

	for name, day := range map[string]models.Date{
		"expired.example.com": models.NewDate(2025, time.May, 20),
		"soon.example.com":    models.NewDate(2025, time.June, 15),
		"later.example.com":   models.NewDate(2025, time.December, 1),
	} {
		_, err := s.CreateCertificate(ctx, "admin", models.CertificateInput{Aapid: f.app, CertificateName: name, ExpiryDate: day})
		require.NoError(t, err)
	}

	expiring, err := s.ListExpiringCertificates(ctx, models.NewDate(2025, time.July, 1))
	require.NoError(t, err)
	require.Len(t, expiring, 2)
	assert.Equal(t, "expired.example.com", expiring[0].CertificateName)
	assert.Equal(t, "soon.example.com", expiring[1].CertificateName)
	assert.Equal(t, "HR Portal", expiring[1].AppName)
}

func TestCreateAuditReport(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := seedApplication(t, s)

	created, err := s.CreateAuditReport(ctx, "auditor", models.AuditReportInput{
		Aapid: f.app, AuditName: "Pentest", CreatedDate: models.NewDate(2025, time.March, 3),
		Findings: []models.AuditFindingFields{
			{Findings: "SQLi", Severity: "Critical", VerificationStatus: "Open"},
			{Findings: "CSRF", Severity: "High", VerificationStatus: "Open", DeveloperRemarks: "fix planned"},
			{Findings: "Banner", Severity: "Low", VerificationStatus: "Closed"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, created.TotalFindings)
	assert.Len(t, created.FindingIDs, 3)
	assert.Zero(t, created.FindingID)

	assert.Equal(t, 3, countRows(t, s, "log_audit_findings", "log_type = 'new' AND audit_report_id = ? AND aapid = ? AND log_user = 'auditor'", created.AuditReportID, f.app))
	assert.Equal(t, 1, countRows(t, s, "audit_report", "audit_date = '2025-03-03'"))

	// edit then delete one finding
	id := created.FindingIDs[1]
	require.NoError(t, s.UpdateAuditFinding(ctx, id, "dev", models.AuditFindingInput{
		Findings: "CSRF", Severity: "High", VerificationStatus: "Fixed", DeveloperRemarks: "token added",
	}))
	assert.Equal(t, 1, countRows(t, s, "log_audit_findings", "log_type = 'edit' AND finding_id = ? AND verification_status = 'Open'", id))

	require.NoError(t, s.DeleteAuditFinding(ctx, id, "dev"))
	assert.Equal(t, 1, countRows(t, s, "log_audit_findings", "log_type = 'delete' AND finding_id = ? AND verification_status = 'Fixed'", id))
}

func TestCreateAuditReportIsAtomic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateAuditReport(ctx, "admin", models.AuditReportInput{
		Aapid: 77, AuditName: "Orphan", AuditDate: models.NewDate(2025, time.March, 3),
		Findings: []models.AuditFindingFields{{Findings: "x", Severity: "Low", VerificationStatus: "Open"}},
	})
	assert.ErrorIs(t, err, ErrInvalidReference)
	assert.Equal(t, 0, countRows(t, s, "audit_report", ""))
	assert.Equal(t, 0, countRows(t, s, "log_audit_findings", ""))

	_, err = s.CreateAuditReport(ctx, "admin", models.AuditReportInput{Aapid: 1, AuditName: "Empty"})
	assert.Error(t, err)
}
