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

// ListDomains is the domain report across every application.
func (h *Handler) ListDomains(c *gin.Context) {
	domains, err := h.Store.ListDomains(c.Request.Context())
	if err != nil {
		respondError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, domains)
}

func (h *Handler) ListApplicationDomains(c *gin.Context) {
	id, ok := pathID(c, "application")
	if !ok {
		return
	}
	domains, err := h.Store.ListDomainsByApplication(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, domains)
}

func (h *Handler) CreateDomain(c *gin.Context) {
	var in models.DomainInput
	if !bind(c, &in, "Missing required fields") {
		return
	}
	if in.Aapid == 0 {
		badRequest(c, "Missing required fields", "aapid is required")
		return
	}
	user := creator(c, in.Actor)
	id, err := h.Store.CreateDomain(c.Request.Context(), user, in)
	if err != nil {
		respondError(c, err, "Insert failed")
		return
	}
	h.emit(c, store.Domains.Slug, models.ActionNew, id, user)
	created(c, "Domain inserted successfully", id)
}

func (h *Handler) UpdateDomain(c *gin.Context) {
	id, ok := pathID(c, "domain")
	if !ok {
		return
	}
	var in models.DomainInput
	if !bind(c, &in, "Missing required fields") {
		return
	}
	user := updater(c, in.Actor)
	if err := h.Store.UpdateDomain(c.Request.Context(), id, user, in); err != nil {
		respondError(c, err, "Update failed")
		return
	}
	h.emit(c, store.Domains.Slug, models.ActionEdit, id, user)
	done(c, "Domain updated")
}

func (h *Handler) DeleteDomain(c *gin.Context) {
	h.remove(c, "domain", store.Domains.Slug, h.Store.DeleteDomain, "Domain deleted")
}
