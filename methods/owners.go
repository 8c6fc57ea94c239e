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

// Owners master

func (h *Handler) ListOwners(c *gin.Context) {
	owners, err := h.Store.ListOwners(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch owners")
		return
	}
	c.JSON(http.StatusOK, owners)
}

func (h *Handler) CreateOwner(c *gin.Context) {
	var in models.OwnerInput
	if !bind(c, &in, "Owner name is required") {
		return
	}
	user := creator(c, in.Actor)
	id, err := h.Store.CreateOwner(c.Request.Context(), user, in)
	if err != nil {
		respondError(c, err, "Failed to add owner")
		return
	}
	h.emit(c, store.Owners.Slug, models.ActionNew, id, user)
	created(c, "Owner added", id)
}

func (h *Handler) UpdateOwner(c *gin.Context) {
	id, ok := pathID(c, "owner")
	if !ok {
		return
	}
	var in models.OwnerInput
	if !bind(c, &in, "Owner name is required") {
		return
	}
	user := updater(c, in.Actor)
	if err := h.Store.UpdateOwner(c.Request.Context(), id, user, in); err != nil {
		respondError(c, err, "Failed to update owner")
		return
	}
	h.emit(c, store.Owners.Slug, models.ActionEdit, id, user)
	done(c, "Owner updated")
}

func (h *Handler) DeleteOwner(c *gin.Context) {
	h.remove(c, "owner", store.Owners.Slug, h.Store.DeleteOwner, "Owner deleted and moved to Trash Bin.")
}

// Owners of one application

func (h *Handler) ListAppOwners(c *gin.Context) {
	id, ok := pathID(c, "application")
	if !ok {
		return
	}
	owners, err := h.Store.ListAppOwners(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, owners)
}

func (h *Handler) CreateAppOwner(c *gin.Context) {
	var in models.AppOwnerInput
	if !bind(c, &in, "Missing required fields") {
		return
	}
	if in.ApplicationID == 0 {
		badRequest(c, "Missing required fields", "application_id is required")
		return
	}
	user := creator(c, in.Actor)
	id, err := h.Store.CreateAppOwner(c.Request.Context(), user, in)
	if err != nil {
		respondError(c, err, "Failed to add app owner")
		return
	}
	h.emit(c, store.AppOwners.Slug, models.ActionNew, id, user)
	created(c, "App Owner added and logged.", id)
}

func (h *Handler) UpdateAppOwner(c *gin.Context) {
	id, ok := pathID(c, "app owner")
	if !ok {
		return
	}
	var in models.AppOwnerInput
	if !bind(c, &in, "Missing required fields") {
		return
	}
	user := updater(c, in.Actor)
	if err := h.Store.UpdateAppOwner(c.Request.Context(), id, user, in); err != nil {
		respondError(c, err, "Failed to update app owner")
		return
	}
	h.emit(c, store.AppOwners.Slug, models.ActionEdit, id, user)
	done(c, "App Owner updated and logged.")
}

func (h *Handler) DeleteAppOwner(c *gin.Context) {
	h.remove(c, "app owner", store.AppOwners.Slug, h.Store.DeleteAppOwner, "App Owner deleted and added to trash bin.")
}
