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

// list runs query and scans every row with scan. The result is never nil
// so empty lists encode as [].
func list[T any](ctx context.Context, q queryer, scan func(*sql.Rows) (T, error), query string, args ...interface{}) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query")
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan")
		}
		items = append(items, item)
	}
	return items, errors.Wrap(rows.Err(), "iterate")
}

func provenance(p *models.Provenance) []interface{} {
	return []interface{}{&p.CreatedBy, &p.CreatedDate, &p.UpdatedBy, &p.UpdatedDate}
}

func with(targets []interface{}, p *models.Provenance) []interface{} {
	return append(targets, provenance(p)...)
}

// Applications

const applicationSelect = `SELECT a.aapid, a.app_name, a.app_owner_id, a.company_id, a.access_type_id,
	o.name AS owner_name, c.company_name, at.access_type_name,
	a.created_by, a.created_date, a.updated_by, a.updated_date
	FROM application_master a
	LEFT JOIN company c ON a.company_id = c.company_id
	LEFT JOIN access_type_master at ON a.access_type_id = at.access_type_id
	LEFT JOIN owner_master o ON a.app_owner_id = o.owner_id`

func scanApplication(rows *sql.Rows) (models.Application, error) {
	var a models.Application
	err := rows.Scan(with([]interface{}{&a.Aapid, &a.AppName, &a.AppOwnerID, &a.CompanyID, &a.AccessTypeID,
		&a.OwnerName, &a.CompanyName, &a.AccessTypeName}, &a.Provenance)...)
	return a, err
}

func (s *Store) ListApplications(ctx context.Context) ([]models.Application, error) {
	return list(ctx, s.db, scanApplication, applicationSelect+" ORDER BY a.aapid")
}

func (s *Store) GetApplication(ctx context.Context, id models.ID) (*models.Application, error) {
	apps, err := list(ctx, s.db, scanApplication, applicationSelect+" WHERE a.aapid = ?", id)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, &NotFoundError{Entity: Applications.Name}
	}
	return &apps[0], nil
}

func (s *Store) ApplicationName(ctx context.Context, id models.ID) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, "SELECT app_name FROM application_master WHERE aapid = ?", id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &NotFoundError{Entity: Applications.Name}
	}
	return name, errors.Wrap(err, "read application name")
}

// Hosting servers

func scanServer(rows *sql.Rows) (models.Server, error) {
	var srv models.Server
	err := rows.Scan(with([]interface{}{&srv.ServerID, &srv.ServerName, &srv.ServerLocalIP}, &srv.Provenance)...)
	return srv, err
}

func (s *Store) ListServers(ctx context.Context) ([]models.Server, error) {
	return list(ctx, s.db, scanServer, `SELECT server_id, server_name, server_local_ip,
		created_by, created_date, updated_by, updated_date
		FROM hosting_server ORDER BY created_date DESC, server_id DESC`)
}

// ListHostingServers is the short form used by selection lists.
func (s *Store) ListHostingServers(ctx context.Context) ([]models.Server, error) {
	return list(ctx, s.db, func(rows *sql.Rows) (models.Server, error) {
		var srv models.Server
		err := rows.Scan(&srv.ServerID, &srv.ServerName, &srv.ServerLocalIP)
		return srv, err
	}, "SELECT server_id, server_name, server_local_ip FROM hosting_server ORDER BY server_id ASC")
}

func (s *Store) ListAppServers(ctx context.Context, aapid models.ID) ([]models.AppServer, error) {
	return list(ctx, s.db, func(rows *sql.Rows) (models.AppServer, error) {
		var as models.AppServer
		err := rows.Scan(with([]interface{}{&as.ServerID, &as.ServerName, &as.ServerLocalIP, &as.AppServerID,
			&as.TypeID, &as.Aapid, &as.ServerTypeName, &as.AppName}, &as.Provenance)...)
		return as, err
	}, `SELECT hs.server_id, hs.server_name, hs.server_local_ip, aps.app_server_id,
		aps.type_id, aps.aapid, stm.type_name AS server_type_name, am.app_name,
		aps.created_by, aps.created_date, aps.updated_by, aps.updated_date
		FROM app_server aps
		JOIN hosting_server hs ON aps.server_id = hs.server_id
		JOIN server_type_master stm ON aps.type_id = stm.type_id
		JOIN application_master am ON aps.aapid = am.aapid
		WHERE aps.aapid = ?
		ORDER BY aps.app_server_id ASC`, aapid)
}

// Owners

func (s *Store) ListAppOwners(ctx context.Context, appID models.ID) ([]models.AppOwner, error) {
	return list(ctx, s.db, func(rows *sql.Rows) (models.AppOwner, error) {
		var ao models.AppOwner
		err := rows.Scan(with([]interface{}{&ao.AppOwnerID, &ao.ApplicationID, &ao.OwnerID, &ao.OwnerName,
			&ao.RoleID, &ao.RoleName}, &ao.Provenance)...)
		return ao, err
	}, `SELECT ao.app_owner_id, ao.application_id, ao.owner_id, om.name AS owner_name,
		ao.role_id, orm.role_name,
		ao.created_by, ao.created_date, ao.updated_by, ao.updated_date
		FROM application_owner ao
		LEFT JOIN owner_master om ON ao.owner_id = om.owner_id
		LEFT JOIN owner_role_master orm ON ao.role_id = orm.role_id
		WHERE ao.application_id = ?
		ORDER BY ao.app_owner_id`, appID)
}

func (s *Store) ListOwners(ctx context.Context) ([]models.Owner, error) {
	return list(ctx, s.db, func(rows *sql.Rows) (models.Owner, error) {
		var o models.Owner
		err := rows.Scan(&o.OwnerID, &o.Name)
		return o, err
	}, "SELECT owner_id, name FROM owner_master ORDER BY owner_id")
}

// Companies

func (s *Store) ListCompanies(ctx context.Context) ([]models.Company, error) {
	return list(ctx, s.db, func(rows *sql.Rows) (models.Company, error) {
		var c models.Company
		err := rows.Scan(&c.CompanyID, &c.CompanyName, &c.GroupName)
		return c, err
	}, "SELECT company_id, company_name, group_name FROM company ORDER BY company_id")
}

// Domains

const domainSelect = `SELECT domain_id, aapid, domain_name, other_details,
	created_by, created_date, updated_by, updated_date FROM domain_mapping`

func scanDomain(rows *sql.Rows) (models.Domain, error) {
	var d models.Domain
	err := rows.Scan(with([]interface{}{&d.DomainID, &d.Aapid, &d.DomainName, &d.OtherDetails}, &d.Provenance)...)
	return d, err
}

func (s *Store) ListDomains(ctx context.Context) ([]models.Domain, error) {
	return list(ctx, s.db, scanDomain, domainSelect+" ORDER BY domain_id")
}

func (s *Store) ListDomainsByApplication(ctx context.Context, aapid models.ID) ([]models.Domain, error) {
	return list(ctx, s.db, scanDomain, domainSelect+" WHERE aapid = ? ORDER BY created_date DESC, domain_id DESC", aapid)
}

// Certificates

const certificateSelect = `SELECT c.cert_id, c.aapid, am.app_name, c.certificate_name, c.expiry_date,
	c.created_by, c.created_date, c.updated_by, c.updated_date
	FROM ssl_certificates c
	JOIN application_master am ON c.aapid = am.aapid`

func scanCertificate(rows *sql.Rows) (models.Certificate, error) {
	var c models.Certificate
	err := rows.Scan(with([]interface{}{&c.CertID, &c.Aapid, &c.AppName, &c.CertificateName, &c.ExpiryDate}, &c.Provenance)...)
	return c, err
}

func (s *Store) ListCertificates(ctx context.Context, aapid models.ID) ([]models.Certificate, error) {
	return list(ctx, s.db, scanCertificate, certificateSelect+" WHERE c.aapid = ? ORDER BY c.cert_id", aapid)
}

// ListExpiringCertificates returns certificates expiring on or before the given day, soonest first.
func (s *Store) ListExpiringCertificates(ctx context.Context, before models.Date) ([]models.Certificate, error) {
	return list(ctx, s.db, scanCertificate, certificateSelect+" WHERE c.expiry_date <= ? ORDER BY c.expiry_date, c.cert_id", before)
}

// Versions

func (s *Store) ListVersions(ctx context.Context, aapid models.ID) ([]models.Version, error) {
	return list(ctx, s.db, func(rows *sql.Rows) (models.Version, error) {
		var v models.Version
		err := rows.Scan(with([]interface{}{&v.VersionEntryID, &v.Aapid, &v.VersionDate, &v.ReleaseTypeID,
			&v.Changes, &v.ReleaseTypeName}, &v.Provenance)...)
		return v, err
	}, `SELECT v.version_entry_id, v.aapid, v.version_date, v.release_type_id, v.changes, r.release_type_name,
		v.created_by, v.created_date, v.updated_by, v.updated_date
		FROM app_version v
		JOIN release_type_master r ON v.release_type_id = r.release_type_id
		WHERE v.aapid = ?
		ORDER BY v.version_date DESC, v.version_entry_id DESC`, aapid)
}

// Audit findings

func (s *Store) ListAuditFindings(ctx context.Context, aapid models.ID) ([]models.AuditFinding, error) {
	return list(ctx, s.db, func(rows *sql.Rows) (models.AuditFinding, error) {
		var f models.AuditFinding
		err := rows.Scan(with([]interface{}{&f.FindingID, &f.AuditReportID, &f.Findings, &f.Severity,
			&f.DeveloperRemarks, &f.VerificationStatus, &f.AuditName, &f.AppName}, &f.Provenance)...)
		return f, err
	}, `SELECT af.finding_id, af.audit_report_id, af.findings, af.severity, af.developer_remarks,
		af.verification_status, ar.audit_name, am.app_name,
		af.created_by, af.created_date, af.updated_by, af.updated_date
		FROM audit_findings af
		JOIN audit_report ar ON ar.audit_report_id = af.audit_report_id
		JOIN application_master am ON ar.aapid = am.aapid
		WHERE ar.aapid = ?
		ORDER BY af.created_date DESC, af.finding_id DESC`, aapid)
}

// AuditReportID returns the first audit report of an application, ok is false when it has none.
func (s *Store) AuditReportID(ctx context.Context, aapid models.ID) (id models.ID, ok bool, err error) {
	err = s.db.QueryRowContext(ctx,
		"SELECT audit_report_id FROM audit_report WHERE aapid = ? ORDER BY audit_report_id LIMIT 1", aapid).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, "read audit report id")
	}
	return id, true, nil
}

// Lookup tables

func (s *Store) ListAccessTypes(ctx context.Context) ([]models.AccessType, error) {
	return list(ctx, s.db, func(rows *sql.Rows) (models.AccessType, error) {
		var a models.AccessType
		err := rows.Scan(&a.AccessTypeID, &a.AccessTypeName)
		return a, err
	}, "SELECT access_type_id, access_type_name FROM access_type_master ORDER BY access_type_id")
}

func (s *Store) ListServerTypes(ctx context.Context) ([]models.ServerType, error) {
	return list(ctx, s.db, func(rows *sql.Rows) (models.ServerType, error) {
		var t models.ServerType
		err := rows.Scan(&t.TypeID, &t.TypeName)
		return t, err
	}, "SELECT type_id, type_name FROM server_type_master ORDER BY type_name")
}

func (s *Store) ListOwnerRoles(ctx context.Context) ([]models.OwnerRole, error) {
	return list(ctx, s.db, func(rows *sql.Rows) (models.OwnerRole, error) {
		var r models.OwnerRole
		err := rows.Scan(&r.RoleID, &r.RoleName)
		return r, err
	}, "SELECT role_id, role_name FROM owner_role_master ORDER BY role_id")
}

func (s *Store) ListReleaseTypes(ctx context.Context) ([]models.ReleaseType, error) {
	return list(ctx, s.db, func(rows *sql.Rows) (models.ReleaseType, error) {
		var r models.ReleaseType
		err := rows.Scan(&r.ReleaseTypeID, &r.ReleaseTypeName)
		return r, err
	}, "SELECT release_type_id, release_type_name FROM release_type_master ORDER BY release_type_id")
}
