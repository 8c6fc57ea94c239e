/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/nethesis/app-registry/db"
	"github.com/nethesis/app-registry/logs"
	"github.com/nethesis/app-registry/models"
)

// CascadeStep is the outcome of removing one kind of dependent rows.
type CascadeStep struct {
	Name    string `json:"name"`
	Removed int64  `json:"removed"`
	Warning string `json:"warning,omitempty"`
}

// CascadeReport describes a completed application delete.
type CascadeReport struct {
	ApplicationID models.ID     `json:"application_id"`
	Steps         []CascadeStep `json:"steps"`
}

type cascadeStep struct {
	name string
	run  func(ctx context.Context, tx *sql.Tx, appID models.ID, user string) (int64, error)
}

const savepoint = "cascade_step"

// DeleteApplication removes an application and everything attached to it in
// one transaction. A failing dependent step is rolled back to its savepoint
// and reported as a warning. A failing delete of the application row aborts
// the whole transaction.
func (s *Store) DeleteApplication(ctx context.Context, id models.ID, user string) (*CascadeReport, error) {
	report := &CascadeReport{ApplicationID: id}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		row, err := snapshot(ctx, tx, Applications, id)
		if err != nil {
			return err
		}

		for _, step := range s.cascadeSteps() {
			result, err := s.runStep(ctx, tx, step, id, user)
			if err != nil {
				return err
			}
			report.Steps = append(report.Steps, result)
		}

		res, err := tx.ExecContext(ctx, "DELETE FROM application_master WHERE aapid = ?", id)
		if err != nil {
			logs.Log("[ERROR][CASCADE] delete of application " + idString(id) + " failed: " + err.Error())
			if referenced, _ := db.IsForeignKeyViolation(err); referenced {
				return &ReferencedError{Entity: Applications.Name, Skipped: report.skipped()}
			}
			return errors.Wrap(err, "delete application")
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return &NotFoundError{Entity: Applications.Name}
		}

		return s.writeLog(ctx, tx, Applications, models.ActionDelete, user, row)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (r *CascadeReport) skipped() []string {
	var names []string
	for _, step := range r.Steps {
		if step.Warning != "" {
			names = append(names, step.Name)
		}
	}
	return names
}

// cascadeSteps lists the dependents of an application in removal order.
func (s *Store) cascadeSteps() []cascadeStep {
	return []cascadeStep{
		{name: "audit findings", run: s.removeAuditFindings},
		{name: "versions", run: s.removeDependents(Versions, "aapid")},
		{name: "ssl certificates", run: s.removeDependents(Certificates, "aapid")},
		{name: "domains", run: s.removeDependents(Domains, "aapid")},
		{name: "app servers", run: s.removeDependents(AppServers, "aapid")},
		{name: "app owners", run: s.removeDependents(AppOwners, "application_id")},
	}
}

func (s *Store) runStep(ctx context.Context, tx *sql.Tx, step cascadeStep, appID models.ID, user string) (CascadeStep, error) {
	result := CascadeStep{Name: step.name}

	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+savepoint); err != nil {
		return result, errors.Wrap(err, "create savepoint")
	}

	removed, err := step.run(ctx, tx, appID, user)
	if err != nil {
		reason := err.Error()
		if db.IsMissingTable(err) {
			reason = "table missing: " + reason
		}
		logs.Log("[WARNING][CASCADE] step " + step.name + " skipped for application " + idString(appID) + ": " + reason)

		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepoint); rbErr != nil {
			return result, errors.Wrap(rbErr, "rollback to savepoint")
		}
		result.Warning = reason
	} else {
		result.Removed = removed
	}

	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+savepoint); err != nil {
		return result, errors.Wrap(err, "release savepoint")
	}
	return result, nil
}

// removeDependents archives and deletes the rows of e whose column points at the application.
func (s *Store) removeDependents(e Entity, column string) func(context.Context, *sql.Tx, models.ID, string) (int64, error) {
	return func(ctx context.Context, tx *sql.Tx, appID models.ID, user string) (int64, error) {
		ids, err := keys(ctx, tx, fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", e.Key, e.Table, column), appID)
		if err != nil {
			return 0, err
		}
		if err := s.archive(ctx, tx, e, ids, user); err != nil {
			return 0, err
		}

		res, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = ?", e.Table, column), appID)
		if err != nil {
			return 0, errors.Wrapf(err, "delete from %s", e.Table)
		}
		return res.RowsAffected()
	}
}

// removeAuditFindings deletes findings through their reports, then the reports.
func (s *Store) removeAuditFindings(ctx context.Context, tx *sql.Tx, appID models.ID, user string) (int64, error) {
	ids, err := keys(ctx, tx, `SELECT af.finding_id FROM audit_findings af
		JOIN audit_report ar ON af.audit_report_id = ar.audit_report_id
		WHERE ar.aapid = ?`, appID)
	if err != nil {
		return 0, err
	}
	if err := s.archive(ctx, tx, AuditFindings, ids, user); err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM audit_findings
		WHERE audit_report_id IN (SELECT audit_report_id FROM audit_report WHERE aapid = ?)`, appID)
	if err != nil {
		return 0, errors.Wrap(err, "delete from audit_findings")
	}
	findings, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	res, err = tx.ExecContext(ctx, "DELETE FROM audit_report WHERE aapid = ?", appID)
	if err != nil {
		return 0, errors.Wrap(err, "delete from audit_report")
	}
	reports, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return findings + reports, nil
}

// archive writes one "delete" trash row per id.
func (s *Store) archive(ctx context.Context, tx *sql.Tx, e Entity, ids []models.ID, user string) error {
	for _, id := range ids {
		row, err := snapshot(ctx, tx, e, id)
		if err != nil {
			return err
		}
		if err := s.writeLog(ctx, tx, e, models.ActionDelete, user, row); err != nil {
			return err
		}
	}
	return nil
}

// keys collects the single id column returned by query.
func keys(ctx context.Context, q queryer, query string, args ...interface{}) ([]models.ID, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list keys")
	}
	defer rows.Close()

	var ids []models.ID
	for rows.Next() {
		var id models.ID
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "scan key")
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func idString(id models.ID) string {
	return strconv.FormatInt(int64(id), 10)
}
