/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package methods

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nethesis/app-registry/configuration"
	"github.com/nethesis/app-registry/logs"
	"github.com/nethesis/app-registry/models"
	"github.com/nethesis/app-registry/store"
)

func (h *Handler) ListCertificates(c *gin.Context) {
	id, ok := pathID(c, "application")
	if !ok {
		return
	}
	certs, err := h.Store.ListCertificates(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch SSL certificates")
		return
	}
	c.JSON(http.StatusOK, certs)
}

func (h *Handler) CreateCertificate(c *gin.Context) {
	var in models.CertificateInput
	if !bind(c, &in, "Missing required fields") {
		return
	}
	if in.Aapid == 0 || in.ExpiryDate.IsZero() {
		badRequest(c, "Missing required fields", "aapid and expiry_date are required")
		return
	}
	user := creator(c, in.Actor)
	id, err := h.Store.CreateCertificate(c.Request.Context(), user, in)
	if err != nil {
		respondError(c, err, "Failed to add SSL certificate")
		return
	}
	h.emit(c, store.Certificates.Slug, models.ActionNew, id, user)
	created(c, "SSL certificate added", id)
}

func (h *Handler) UpdateCertificate(c *gin.Context) {
	id, ok := pathID(c, "certificate")
	if !ok {
		return
	}
	var in models.CertificateInput
	if !bind(c, &in, "Missing required fields") {
		return
	}
	if in.ExpiryDate.IsZero() {
		badRequest(c, "Missing required fields", "expiry_date is required")
		return
	}
	user := updater(c, in.Actor)
	if err := h.Store.UpdateCertificate(c.Request.Context(), id, user, in); err != nil {
		respondError(c, err, "Failed to update SSL certificate")
		return
	}
	h.emit(c, store.Certificates.Slug, models.ActionEdit, id, user)
	done(c, "SSL certificate updated")
}

func (h *Handler) DeleteCertificate(c *gin.Context) {
	h.remove(c, "certificate", store.Certificates.Slug, h.Store.DeleteCertificate, "SSL certificate deleted and moved to Trash Bin.")
}

// ListExpiringCertificates answers the certificates expiring within ?days=,
// CERT_EXPIRY_DAYS when absent. Already expired certificates are included.
func (h *Handler) ListExpiringCertificates(c *gin.Context) {
	days := configuration.Config.CertExpiryDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, "Invalid days value", "")
			return
		}
		days = n
	}
	certs, err := h.Store.ListExpiringCertificates(c.Request.Context(), h.horizon(days))
	if err != nil {
		respondError(c, err, "Failed to fetch SSL certificates")
		return
	}
	c.JSON(http.StatusOK, certs)
}

func (h *Handler) horizon(days int) models.Date {
	limit := h.now().AddDate(0, 0, days)
	return models.NewDate(limit.Year(), limit.Month(), limit.Day())
}

// ScanExpiringCertificates logs and announces every certificate expiring
// within CERT_EXPIRY_DAYS. It runs from the scheduler.
func (h *Handler) ScanExpiringCertificates(ctx context.Context) int {
	certs, err := h.Store.ListExpiringCertificates(ctx, h.horizon(configuration.Config.CertExpiryDays))
	if err != nil {
		logs.Log("[ERROR][CERTS] expiry scan failed: " + err.Error())
		return 0
	}
	for _, cert := range certs {
		logs.Log(fmt.Sprintf("[WARNING][CERTS] certificate %q of %q expires on %s",
			cert.CertificateName, cert.AppName, cert.ExpiryDate))
		h.Notify(models.RegistryEvent{
			Entity:    store.Certificates.Slug,
			Action:    models.ActionExpiring,
			ID:        cert.CertID,
			User:      "scheduler",
			Timestamp: h.now().UTC(),
			Details:   cert.ExpiryDate.String(),
		})
	}
	return len(certs)
}

// SetClockForTest replaces the clock used for events and expiry horizons.
func (h *Handler) SetClockForTest(now func() time.Time) {
	h.now = now
}
