/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package store

import (
	"context"
	"database/sql"

	"github.com/fatih/structs"
	"github.com/pkg/errors"

	"github.com/nethesis/app-registry/models"
)

// CreateAuditReport stores one audit report and its findings atomically.
// Each finding gets its own "new" trash row.
func (s *Store) CreateAuditReport(ctx context.Context, user string, in models.AuditReportInput) (*models.AuditReportCreated, error) {
	if len(in.Findings) == 0 {
		return nil, errors.New("an audit report needs at least one finding")
	}

	created := &models.AuditReportCreated{FindingIDs: []models.ID{}}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		now := s.stamp()
		res, err := tx.ExecContext(ctx, `INSERT INTO audit_report
			(aapid, audit_name, audit_date, created_by, created_date, updated_by, updated_date)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			in.Aapid, in.AuditName, in.Day(), user, now, user, now)
		if err != nil {
			return writeError(Entity{Name: "audit report", Table: "audit_report"}, err, "insert")
		}
		reportID, err := res.LastInsertId()
		if err != nil {
			return errors.Wrap(err, "read audit report key")
		}
		created.AuditReportID = models.ID(reportID)

		for _, finding := range in.Findings {
			values := structs.Map(finding)
			values["audit_report_id"] = created.AuditReportID
			id, err := s.createTx(ctx, tx, AuditFindings, user, values)
			if err != nil {
				return err
			}
			created.FindingIDs = append(created.FindingIDs, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created.TotalFindings = len(created.FindingIDs)
	if created.TotalFindings == 1 {
		created.FindingID = created.FindingIDs[0]
	}
	return created, nil
}
