/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package models

import "time"

// Provenance is carried by every primary table.
type Provenance struct {
	CreatedBy   *string    `json:"created_by"`
	CreatedDate *time.Time `json:"created_date"`
	UpdatedBy   *string    `json:"updated_by"`
	UpdatedDate *time.Time `json:"updated_date"`
}

// Actor is the optional acting user a client may send in a mutation body.
type Actor struct {
	CreatedBy string `json:"created_by" structs:"-"`
	UpdatedBy string `json:"updated_by" structs:"-"`
}

type Application struct {
	Aapid          ID      `json:"aapid"`
	AppName        string  `json:"app_name"`
	AppOwnerID     ID      `json:"app_owner_id"`
	CompanyID      ID      `json:"company_id"`
	AccessTypeID   ID      `json:"access_type_id"`
	OwnerName      *string `json:"owner_name,omitempty"`
	CompanyName    *string `json:"company_name,omitempty"`
	AccessTypeName *string `json:"access_type_name,omitempty"`
	Provenance
}

type ApplicationInput struct {
	AppName      string `json:"app_name" binding:"required" structs:"app_name"`
	AppOwnerID   ID     `json:"app_owner_id" binding:"required" structs:"app_owner_id"`
	CompanyID    ID     `json:"company_id" binding:"required" structs:"company_id"`
	AccessTypeID ID     `json:"access_type_id" binding:"required" structs:"access_type_id"`
	Actor        `structs:"-"`
}

type Owner struct {
	OwnerID ID     `json:"owner_id"`
	Name    string `json:"name"`
}

type OwnerInput struct {
	Name  string `json:"name" binding:"required" structs:"name"`
	Actor `structs:"-"`
}

type Company struct {
	CompanyID   ID      `json:"company_id"`
	CompanyName string  `json:"company_name"`
	GroupName   *string `json:"group_name,omitempty"`
}

type CompanyInput struct {
	CompanyName string `json:"company_name" binding:"required" structs:"company_name"`
	GroupName   string `json:"group_name" structs:"group_name"`
	Actor       `structs:"-"`
}

type Server struct {
	ServerID      ID     `json:"server_id"`
	ServerName    string `json:"server_name"`
	ServerLocalIP string `json:"server_local_ip"`
	Provenance
}

type ServerInput struct {
	ServerName    string `json:"server_name" binding:"required" structs:"server_name"`
	ServerLocalIP string `json:"server_local_ip" binding:"required" structs:"server_local_ip"`
	Actor         `structs:"-"`
}

// AppServer is a hosting server attached to an application with a role.
type AppServer struct {
	AppServerID    ID     `json:"app_server_id"`
	Aapid          ID     `json:"aapid"`
	AppName        string `json:"app_name"`
	ServerID       ID     `json:"server_id"`
	ServerName     string `json:"server_name"`
	ServerLocalIP  string `json:"server_local_ip"`
	TypeID         ID     `json:"type_id"`
	ServerTypeName string `json:"server_type_name"`
	Provenance
}

type AppServerInput struct {
	Aapid    ID `json:"aapid" structs:"aapid,omitempty"`
	ServerID ID `json:"server_id" structs:"server_id,omitempty"`
	TypeID   ID `json:"type_id" binding:"required" structs:"type_id"`
	Actor    `structs:"-"`
}

type AppOwner struct {
	AppOwnerID    ID      `json:"app_owner_id"`
	ApplicationID ID      `json:"application_id"`
	OwnerID       ID      `json:"owner_id"`
	OwnerName     *string `json:"owner_name"`
	RoleID        ID      `json:"role_id"`
	RoleName      *string `json:"role_name"`
	Provenance
}

type AppOwnerInput struct {
	ApplicationID ID `json:"application_id" structs:"application_id,omitempty"`
	OwnerID       ID `json:"owner_id" binding:"required" structs:"owner_id"`
	RoleID        ID `json:"role_id" binding:"required" structs:"role_id"`
	Actor         `structs:"-"`
}

type Domain struct {
	DomainID     ID      `json:"domain_id"`
	Aapid        ID      `json:"aapid"`
	DomainName   string  `json:"domain_name"`
	OtherDetails *string `json:"other_details"`
	Provenance
}

type DomainInput struct {
	Aapid        ID     `json:"aapid" structs:"aapid,omitempty"`
	DomainName   string `json:"domain_name" binding:"required" structs:"domain_name"`
	OtherDetails string `json:"other_details" structs:"other_details"`
	Actor        `structs:"-"`
}

type Certificate struct {
	CertID          ID     `json:"cert_id"`
	Aapid           ID     `json:"aapid"`
	AppName         string `json:"app_name,omitempty"`
	CertificateName string `json:"certificate_name"`
	ExpiryDate      Date   `json:"expiry_date"`
	Provenance
}

type CertificateInput struct {
	Aapid           ID     `json:"aapid" structs:"aapid,omitempty"`
	CertificateName string `json:"certificate_name" binding:"required" structs:"certificate_name"`
	ExpiryDate      Date   `json:"expiry_date" structs:"expiry_date,omitnested"`
	Actor           `structs:"-"`
}

type Version struct {
	VersionEntryID  ID      `json:"version_entry_id"`
	Aapid           ID      `json:"aapid"`
	VersionDate     Date    `json:"version_date"`
	ReleaseTypeID   ID      `json:"release_type_id"`
	ReleaseTypeName string  `json:"release_type_name"`
	Changes         *string `json:"changes"`
	Provenance
}

type VersionInput struct {
	Aapid         ID     `json:"aapid" structs:"aapid,omitempty"`
	VersionDate   Date   `json:"version_date" structs:"version_date,omitnested"`
	ReleaseTypeID ID     `json:"release_type_id" binding:"required" structs:"release_type_id"`
	Changes       string `json:"changes" structs:"changes"`
	Actor         `structs:"-"`
}

// AuditFinding is one finding joined with its report and application.
type AuditFinding struct {
	FindingID          ID      `json:"finding_id"`
	AuditReportID      ID      `json:"audit_report_id"`
	AuditName          string  `json:"audit_name"`
	AppName            string  `json:"app_name"`
	Findings           *string `json:"findings"`
	Severity           string  `json:"severity"`
	DeveloperRemarks   *string `json:"developer_remarks"`
	VerificationStatus string  `json:"verification_status"`
	Provenance
}

type AuditFindingInput struct {
	Findings           string `json:"findings" binding:"required" structs:"findings"`
	Severity           string `json:"severity" binding:"required" structs:"severity"`
	DeveloperRemarks   string `json:"developer_remarks" structs:"developer_remarks"`
	VerificationStatus string `json:"verification_status" binding:"required" structs:"verification_status"`
	Actor              `structs:"-"`
}

// AuditReportInput creates one report with its findings. The browser sends
// the audit day as created_date, audit_date is accepted too.
type AuditReportInput struct {
	Aapid       ID                   `json:"aapid" binding:"required"`
	AuditName   string               `json:"audit_name" binding:"required"`
	AuditDate   Date                 `json:"audit_date"`
	CreatedDate Date                 `json:"created_date"`
	CreatedBy   string               `json:"created_by"`
	Findings    []AuditFindingFields `json:"findings"`
}

// SingleFindingInput is the one-finding form of AuditReportInput.
type SingleFindingInput struct {
	Aapid       ID     `json:"aapid" binding:"required"`
	AuditName   string `json:"audit_name" binding:"required"`
	AuditDate   Date   `json:"audit_date"`
	CreatedDate Date   `json:"created_date"`
	CreatedBy   string `json:"created_by"`
	AuditFindingFields
}

// Report turns the single finding form into a report with one finding.
func (s SingleFindingInput) Report() AuditReportInput {
	return AuditReportInput{
		Aapid:       s.Aapid,
		AuditName:   s.AuditName,
		AuditDate:   s.AuditDate,
		CreatedDate: s.CreatedDate,
		CreatedBy:   s.CreatedBy,
		Findings:    []AuditFindingFields{s.AuditFindingFields},
	}
}

// AuditFindingFields are the writable columns of audit_findings.
type AuditFindingFields struct {
	Findings           string `json:"findings" structs:"findings"`
	Severity           string `json:"severity" structs:"severity"`
	DeveloperRemarks   string `json:"developer_remarks" structs:"developer_remarks"`
	VerificationStatus string `json:"verification_status" structs:"verification_status"`
}

// Complete reports whether the mandatory finding columns are set.
func (f AuditFindingFields) Complete() bool {
	return f.Severity != "" && f.VerificationStatus != ""
}

// Day returns the audit day, whichever field carried it.
func (r AuditReportInput) Day() Date {
	if !r.AuditDate.IsZero() {
		return r.AuditDate
	}
	return r.CreatedDate
}

type AuditReportCreated struct {
	Message       string `json:"message"`
	AuditReportID ID     `json:"audit_report_id"`
	FindingID     ID     `json:"finding_id,omitempty"`
	FindingIDs    []ID   `json:"finding_ids"`
	TotalFindings int    `json:"total_findings"`
}

// Lookup tables

type AccessType struct {
	AccessTypeID   ID     `json:"access_type_id"`
	AccessTypeName string `json:"access_type_name"`
}

type ServerType struct {
	TypeID   ID     `json:"type_id"`
	TypeName string `json:"type_name"`
}

type OwnerRole struct {
	RoleID   ID     `json:"role_id"`
	RoleName string `json:"role_name"`
}

type ReleaseType struct {
	ReleaseTypeID   ID     `json:"release_type_id"`
	ReleaseTypeName string `json:"release_type_name"`
}

// User is a user_master row without its password column.
type User struct {
	UserID    ID      `json:"user_id"`
	LoginName string  `json:"login_name"`
	UserName  *string `json:"user_name"`
	RoleName  *string `json:"role_name"`
}

// LogEntry is one trash bin row, columns vary by log table.
type LogEntry map[string]interface{}
