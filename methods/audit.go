/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package methods

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nethesis/app-registry/models"
	"github.com/nethesis/app-registry/store"
)

func (h *Handler) ListAuditFindings(c *gin.Context) {
	id, ok := pathID(c, "application")
	if !ok {
		return
	}
	findings, err := h.Store.ListAuditFindings(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, findings)
}

// CreateAuditFinding stores a report holding a single finding.
func (h *Handler) CreateAuditFinding(c *gin.Context) {
	var in models.SingleFindingInput
	if !bind(c, &in, "Missing required fields") {
		return
	}
	if in.Findings == "" || !in.Complete() {
		badRequest(c, "Missing required fields", "findings, severity and verification_status are required")
		return
	}
	h.createAuditReport(c, in.Report(), "Audit finding created successfully")
}

func (h *Handler) CreateAuditReport(c *gin.Context) {
	var in models.AuditReportInput
	if !bind(c, &in, "Missing required fields or invalid findings array") {
		return
	}
	if len(in.Findings) == 0 {
		badRequest(c, "Missing required fields or invalid findings array", "")
		return
	}
	for _, f := range in.Findings {
		if !f.Complete() {
			badRequest(c, "Missing required fields or invalid findings array", "every finding needs severity and verification_status")
			return
		}
	}
	h.createAuditReport(c, in, "Audit report with findings created successfully")
}

func (h *Handler) createAuditReport(c *gin.Context, in models.AuditReportInput, message string) {
	if in.Day().IsZero() {
		now := h.now()
		in.AuditDate = models.NewDate(now.Year(), now.Month(), now.Day())
	}
	user := actingUser(c, in.CreatedBy)
	result, err := h.Store.CreateAuditReport(c.Request.Context(), user, in)
	if err != nil {
		respondError(c, err, "Failed to create audit report")
		return
	}
	for _, id := range result.FindingIDs {
		h.emit(c, store.AuditFindings.Slug, models.ActionNew, id, user)
	}
	result.Message = message
	c.JSON(http.StatusCreated, result)
}

// GetAuditReportID answers the first report of an application, or null.
func (h *Handler) GetAuditReportID(c *gin.Context) {
	id, ok := pathID(c, "application")
	if !ok {
		return
	}
	reportID, found, err := h.Store.AuditReportID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch audit_report_id")
		return
	}
	if !found {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"audit_report_id": reportID})
}

func (h *Handler) UpdateAuditFinding(c *gin.Context) {
	id, ok := pathID(c, "audit log")
	if !ok {
		return
	}
	var in models.AuditFindingInput
	if !bind(c, &in, "Missing fields for update") {
		return
	}
	user := updater(c, in.Actor)
	if err := h.Store.UpdateAuditFinding(c.Request.Context(), id, user, in); err != nil {
		respondError(c, err, "Update failed")
		return
	}
	h.emit(c, store.AuditFindings.Slug, models.ActionEdit, id, user)
	done(c, "Audit log updated")
}

func (h *Handler) DeleteAuditFinding(c *gin.Context) {
	h.remove(c, "audit log", store.AuditFindings.Slug, h.Store.DeleteAuditFinding, "Audit log deleted and saved to trash bin.")
}
