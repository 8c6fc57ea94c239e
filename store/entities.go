/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package store

// Reference is a column of another table pointing at an entity key.
type Reference struct {
	Table  string
	Column string
	Label  string
}

// Entity describes a primary table and its trash bin table.
// Snapshot selects the row to archive by key (one placeholder) and must
// return every LogColumns name.
type Entity struct {
	Name       string
	Slug       string
	Table      string
	Key        string
	LogTable   string
	Snapshot   string
	LogColumns []string
	References []Reference
}

var (
	Applications = Entity{
		Name:     "application",
		Slug:     "applications",
		Table:    "application_master",
		Key:      "aapid",
		LogTable: "log_app_master",
		Snapshot: `SELECT am.aapid, am.app_name, om.name AS owner_name, c.company_name, at.access_type_name,
			am.created_by, am.created_date, am.updated_by, am.updated_date
			FROM application_master am
			LEFT JOIN owner_master om ON am.app_owner_id = om.owner_id
			LEFT JOIN company c ON am.company_id = c.company_id
			LEFT JOIN access_type_master at ON am.access_type_id = at.access_type_id
			WHERE am.aapid = ?`,
		LogColumns: []string{"aapid", "app_name", "owner_name", "company_name", "access_type_name",
			"created_by", "created_date", "updated_by", "updated_date"},
	}

	Owners = Entity{
		Name:       "owner",
		Slug:       "owners",
		Table:      "owner_master",
		Key:        "owner_id",
		LogTable:   "log_owner_master",
		Snapshot:   "SELECT owner_id, name FROM owner_master WHERE owner_id = ?",
		LogColumns: []string{"owner_id", "name"},
		References: []Reference{
			{Table: "application_master", Column: "app_owner_id", Label: "Application Master"},
			{Table: "application_owner", Column: "owner_id", Label: "Application Owners"},
		},
	}

	Companies = Entity{
		Name:       "company",
		Slug:       "companies",
		Table:      "company",
		Key:        "company_id",
		LogTable:   "log_app_company",
		Snapshot:   "SELECT company_id, company_name, group_name FROM company WHERE company_id = ?",
		LogColumns: []string{"company_id", "company_name", "group_name"},
		References: []Reference{
			{Table: "application_master", Column: "company_id", Label: "Application Master"},
		},
	}

	Servers = Entity{
		Name:       "server",
		Slug:       "servers",
		Table:      "hosting_server",
		Key:        "server_id",
		LogTable:   "log_hosting_server",
		Snapshot:   "SELECT server_id, server_name, server_local_ip FROM hosting_server WHERE server_id = ?",
		LogColumns: []string{"server_id", "server_name", "server_local_ip"},
		References: []Reference{
			{Table: "app_server", Column: "server_id", Label: "Application Servers"},
		},
	}

	AppServers = Entity{
		Name:     "app server",
		Slug:     "app-servers",
		Table:    "app_server",
		Key:      "app_server_id",
		LogTable: "log_app_server",
		Snapshot: `SELECT aps.app_server_id, aps.aapid, aps.server_id, hs.server_name, hs.server_local_ip, aps.type_id
			FROM app_server aps
			LEFT JOIN hosting_server hs ON aps.server_id = hs.server_id
			WHERE aps.app_server_id = ?`,
		LogColumns: []string{"app_server_id", "aapid", "server_id", "server_name", "server_local_ip", "type_id"},
	}

	AppOwners = Entity{
		Name:     "app owner",
		Slug:     "app-owners",
		Table:    "application_owner",
		Key:      "app_owner_id",
		LogTable: "log_app_owner",
		Snapshot: `SELECT ao.app_owner_id, ao.application_id, ao.owner_id, om.name, ao.role_id
			FROM application_owner ao
			LEFT JOIN owner_master om ON ao.owner_id = om.owner_id
			WHERE ao.app_owner_id = ?`,
		LogColumns: []string{"app_owner_id", "application_id", "owner_id", "name", "role_id"},
	}

	Domains = Entity{
		Name:       "domain",
		Slug:       "domains",
		Table:      "domain_mapping",
		Key:        "domain_id",
		LogTable:   "log_app_domain",
		Snapshot:   "SELECT domain_id, aapid, domain_name, other_details FROM domain_mapping WHERE domain_id = ?",
		LogColumns: []string{"domain_id", "aapid", "domain_name", "other_details"},
	}

	Certificates = Entity{
		Name:       "certificate",
		Slug:       "certificates",
		Table:      "ssl_certificates",
		Key:        "cert_id",
		LogTable:   "log_app_ssl",
		Snapshot:   "SELECT cert_id, aapid, certificate_name, expiry_date FROM ssl_certificates WHERE cert_id = ?",
		LogColumns: []string{"cert_id", "aapid", "certificate_name", "expiry_date"},
	}

	Versions = Entity{
		Name:     "version",
		Slug:     "versions",
		Table:    "app_version",
		Key:      "version_entry_id",
		LogTable: "log_app_version",
		Snapshot: `SELECT version_entry_id, aapid, version_date, release_type_id, changes
			FROM app_version WHERE version_entry_id = ?`,
		LogColumns: []string{"version_entry_id", "aapid", "version_date", "release_type_id", "changes"},
	}

	AuditFindings = Entity{
		Name:     "audit finding",
		Slug:     "audit-findings",
		Table:    "audit_findings",
		Key:      "finding_id",
		LogTable: "log_audit_findings",
		Snapshot: `SELECT af.finding_id, af.audit_report_id, ar.aapid, ar.audit_name, ar.audit_date,
			af.findings, af.severity, af.developer_remarks, af.verification_status
			FROM audit_findings af
			LEFT JOIN audit_report ar ON af.audit_report_id = ar.audit_report_id
			WHERE af.finding_id = ?`,
		LogColumns: []string{"finding_id", "audit_report_id", "aapid", "audit_name", "audit_date",
			"findings", "severity", "developer_remarks", "verification_status"},
	}
)

// Entities lists every audited entity.
var Entities = []Entity{
	Applications, Owners, Companies, Servers, AppServers,
	AppOwners, Domains, Certificates, Versions, AuditFindings,
}

// EntityBySlug finds an entity by the name used in URLs and event topics.
func EntityBySlug(slug string) (Entity, bool) {
	for _, e := range Entities {
		if e.Slug == slug {
			return e, true
		}
	}
	return Entity{}, false
}
