/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package store

import (
	"context"

	"github.com/fatih/structs"

	"github.com/nethesis/app-registry/models"
)

// Typed audited mutations, one group per entity. Writable columns come
// from the structs tags of the input models.

func (s *Store) CreateApplication(ctx context.Context, user string, in models.ApplicationInput) (models.ID, error) {
	return s.Create(ctx, Applications, user, structs.Map(in))
}

func (s *Store) UpdateApplication(ctx context.Context, id models.ID, user string, in models.ApplicationInput) error {
	return s.Update(ctx, Applications, id, user, structs.Map(in))
}

func (s *Store) CreateOwner(ctx context.Context, user string, in models.OwnerInput) (models.ID, error) {
	return s.Create(ctx, Owners, user, structs.Map(in))
}

func (s *Store) UpdateOwner(ctx context.Context, id models.ID, user string, in models.OwnerInput) error {
	return s.Update(ctx, Owners, id, user, structs.Map(in))
}

func (s *Store) DeleteOwner(ctx context.Context, id models.ID, user string) error {
	return s.Delete(ctx, Owners, id, user)
}

func (s *Store) CreateCompany(ctx context.Context, user string, in models.CompanyInput) (models.ID, error) {
	return s.Create(ctx, Companies, user, structs.Map(in))
}

func (s *Store) UpdateCompany(ctx context.Context, id models.ID, user string, in models.CompanyInput) error {
	return s.Update(ctx, Companies, id, user, structs.Map(in))
}

func (s *Store) DeleteCompany(ctx context.Context, id models.ID, user string) error {
	return s.Delete(ctx, Companies, id, user)
}

func (s *Store) CreateServer(ctx context.Context, user string, in models.ServerInput) (models.ID, error) {
	return s.Create(ctx, Servers, user, structs.Map(in))
}

func (s *Store) UpdateServer(ctx context.Context, id models.ID, user string, in models.ServerInput) error {
	return s.Update(ctx, Servers, id, user, structs.Map(in))
}

func (s *Store) DeleteServer(ctx context.Context, id models.ID, user string) error {
	return s.Delete(ctx, Servers, id, user)
}

func (s *Store) CreateAppServer(ctx context.Context, user string, in models.AppServerInput) (models.ID, error) {
	return s.Create(ctx, AppServers, user, structs.Map(in))
}

func (s *Store) UpdateAppServer(ctx context.Context, id models.ID, user string, in models.AppServerInput) error {
	return s.Update(ctx, AppServers, id, user, structs.Map(in))
}

func (s *Store) DeleteAppServer(ctx context.Context, id models.ID, user string) error {
	return s.Delete(ctx, AppServers, id, user)
}

func (s *Store) CreateAppOwner(ctx context.Context, user string, in models.AppOwnerInput) (models.ID, error) {
	return s.Create(ctx, AppOwners, user, structs.Map(in))
}

func (s *Store) UpdateAppOwner(ctx context.Context, id models.ID, user string, in models.AppOwnerInput) error {
	return s.Update(ctx, AppOwners, id, user, structs.Map(in))
}

func (s *Store) DeleteAppOwner(ctx context.Context, id models.ID, user string) error {
	return s.Delete(ctx, AppOwners, id, user)
}

func (s *Store) CreateDomain(ctx context.Context, user string, in models.DomainInput) (models.ID, error) {
	return s.Create(ctx, Domains, user, structs.Map(in))
}

func (s *Store) UpdateDomain(ctx context.Context, id models.ID, user string, in models.DomainInput) error {
	return s.Update(ctx, Domains, id, user, structs.Map(in))
}

func (s *Store) DeleteDomain(ctx context.Context, id models.ID, user string) error {
	return s.Delete(ctx, Domains, id, user)
}

func (s *Store) CreateCertificate(ctx context.Context, user string, in models.CertificateInput) (models.ID, error) {
	return s.Create(ctx, Certificates, user, structs.Map(in))
}

func (s *Store) UpdateCertificate(ctx context.Context, id models.ID, user string, in models.CertificateInput) error {
	return s.Update(ctx, Certificates, id, user, structs.Map(in))
}

func (s *Store) DeleteCertificate(ctx context.Context, id models.ID, user string) error {
	return s.Delete(ctx, Certificates, id, user)
}

func (s *Store) CreateVersion(ctx context.Context, user string, in models.VersionInput) (models.ID, error) {
	return s.Create(ctx, Versions, user, structs.Map(in))
}

func (s *Store) UpdateVersion(ctx context.Context, id models.ID, user string, in models.VersionInput) error {
	return s.Update(ctx, Versions, id, user, structs.Map(in))
}

func (s *Store) DeleteVersion(ctx context.Context, id models.ID, user string) error {
	return s.Delete(ctx, Versions, id, user)
}

func (s *Store) UpdateAuditFinding(ctx context.Context, id models.ID, user string, in models.AuditFindingInput) error {
	return s.Update(ctx, AuditFindings, id, user, structs.Map(in))
}

func (s *Store) DeleteAuditFinding(ctx context.Context, id models.ID, user string) error {
	return s.Delete(ctx, AuditFindings, id, user)
}
