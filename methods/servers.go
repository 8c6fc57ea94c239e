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

func (h *Handler) ListServers(c *gin.Context) {
	servers, err := h.Store.ListServers(c.Request.Context())
	if err != nil {
		respondError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, servers)
}

// ListHostingServers is the short list used by server pickers.
func (h *Handler) ListHostingServers(c *gin.Context) {
	servers, err := h.Store.ListHostingServers(c.Request.Context())
	if err != nil {
		respondError(c, err, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, servers)
}

func (h *Handler) CreateServer(c *gin.Context) {
	var in models.ServerInput
	if !bind(c, &in, "Missing required fields") {
		return
	}
	user := creator(c, in.Actor)
	id, err := h.Store.CreateServer(c.Request.Context(), user, in)
	if err != nil {
		respondError(c, err, "Insert failed")
		return
	}
	h.emit(c, store.Servers.Slug, models.ActionNew, id, user)
	created(c, "Server added", id)
}

func (h *Handler) UpdateServer(c *gin.Context) {
	id, ok := pathID(c, "server")
	if !ok {
		return
	}
	var in models.ServerInput
	if !bind(c, &in, "Missing fields") {
		return
	}
	user := updater(c, in.Actor)
	if err := h.Store.UpdateServer(c.Request.Context(), id, user, in); err != nil {
		respondError(c, err, "Update failed")
		return
	}
	h.emit(c, store.Servers.Slug, models.ActionEdit, id, user)
	done(c, "Server updated")
}

func (h *Handler) DeleteServer(c *gin.Context) {
	h.remove(c, "server", store.Servers.Slug, h.Store.DeleteServer, "Hosting Server deleted and moved to Trash Bin.")
}

// Servers attached to an application

func (h *Handler) ListAppServers(c *gin.Context) {
	id, ok := pathID(c, "application")
	if !ok {
		return
	}
	servers, err := h.Store.ListAppServers(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, servers)
}

func (h *Handler) CreateAppServer(c *gin.Context) {
	var in models.AppServerInput
	if !bind(c, &in, "Missing required fields") {
		return
	}
	if in.Aapid == 0 || in.ServerID == 0 {
		badRequest(c, "Missing required fields", "aapid and server_id are required")
		return
	}
	user := creator(c, in.Actor)
	id, err := h.Store.CreateAppServer(c.Request.Context(), user, in)
	if err != nil {
		respondError(c, err, "Insert failed")
		return
	}
	h.emit(c, store.AppServers.Slug, models.ActionNew, id, user)
	created(c, "App server added", id)
}

func (h *Handler) UpdateAppServer(c *gin.Context) {
	id, ok := pathID(c, "app server")
	if !ok {
		return
	}
	var in models.AppServerInput
	if !bind(c, &in, "Missing fields") {
		return
	}
	user := updater(c, in.Actor)
	if err := h.Store.UpdateAppServer(c.Request.Context(), id, user, in); err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	h.emit(c, store.AppServers.Slug, models.ActionEdit, id, user)
	done(c, "App server updated")
}

func (h *Handler) DeleteAppServer(c *gin.Context) {
	h.remove(c, "app server", store.AppServers.Slug, h.Store.DeleteAppServer, "App server deleted and logged")
}
