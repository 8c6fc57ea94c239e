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

func (h *Handler) ListVersions(c *gin.Context) {
	id, ok := pathID(c, "application")
	if !ok {
		return
	}
	versions, err := h.Store.ListVersions(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch versions")
		return
	}
	c.JSON(http.StatusOK, versions)
}

func (h *Handler) CreateVersion(c *gin.Context) {
	var in models.VersionInput
	if !bind(c, &in, "Missing required fields") {
		return
	}
	if in.Aapid == 0 || in.VersionDate.IsZero() {
		badRequest(c, "Missing required fields", "aapid and version_date are required")
		return
	}
	user := creator(c, in.Actor)
	id, err := h.Store.CreateVersion(c.Request.Context(), user, in)
	if err != nil {
		respondError(c, err, "Failed to add version")
		return
	}
	h.emit(c, store.Versions.Slug, models.ActionNew, id, user)
	created(c, "Version added", id)
}

func (h *Handler) UpdateVersion(c *gin.Context) {
	id, ok := pathID(c, "version")
	if !ok {
		return
	}
	var in models.VersionInput
	if !bind(c, &in, "Missing required fields") {
		return
	}
	if in.VersionDate.IsZero() {
		badRequest(c, "Missing required fields", "version_date is required")
		return
	}
	user := updater(c, in.Actor)
	if err := h.Store.UpdateVersion(c.Request.Context(), id, user, in); err != nil {
		respondError(c, err, "Failed to update version")
		return
	}
	h.emit(c, store.Versions.Slug, models.ActionEdit, id, user)
	done(c, "Version updated")
}

func (h *Handler) DeleteVersion(c *gin.Context) {
	h.remove(c, "version", store.Versions.Slug, h.Store.DeleteVersion, "Version deleted and moved to Trash Bin.")
}
