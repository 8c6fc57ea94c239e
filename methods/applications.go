/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package methods

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nethesis/app-registry/logs"
	"github.com/nethesis/app-registry/models"
	"github.com/nethesis/app-registry/store"
)

func (h *Handler) ListApplications(c *gin.Context) {
	apps, err := h.Store.ListApplications(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch applications")
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *Handler) GetApplication(c *gin.Context) {
	id, ok := pathID(c, "application")
	if !ok {
		return
	}
	app, err := h.Store.GetApplication(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch application")
		return
	}
	c.JSON(http.StatusOK, app)
}

// GetApplicationName answers {"app_name": ...}, used by page headers.
func (h *Handler) GetApplicationName(c *gin.Context) {
	id, ok := pathID(c, "application")
	if !ok {
		return
	}
	name, err := h.Store.ApplicationName(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch application name")
		return
	}
	c.JSON(http.StatusOK, gin.H{"app_name": name})
}

func (h *Handler) CreateApplication(c *gin.Context) {
	var in models.ApplicationInput
	if !bind(c, &in, "Missing required fields") {
		return
	}
	user := creator(c, in.Actor)
	id, err := h.Store.CreateApplication(c.Request.Context(), user, in)
	if err != nil {
		respondError(c, err, "Failed to add application")
		return
	}
	h.emit(c, store.Applications.Slug, models.ActionNew, id, user)
	created(c, "Application added successfully", id)
}

func (h *Handler) UpdateApplication(c *gin.Context) {
	id, ok := pathID(c, "application")
	if !ok {
		return
	}
	var in models.ApplicationInput
	if !bind(c, &in, "Missing required fields for update") {
		return
	}
	user := updater(c, in.Actor)
	if err := h.Store.UpdateApplication(c.Request.Context(), id, user, in); err != nil {
		respondError(c, err, "Failed to update application")
		return
	}
	h.emit(c, store.Applications.Slug, models.ActionEdit, id, user)
	done(c, "Application updated successfully")
}

// DeleteApplication removes the application with everything attached to it.
// Skipped dependent steps are returned as warnings next to the result.
func (h *Handler) DeleteApplication(c *gin.Context) {
	id, ok := pathID(c, "application")
	if !ok {
		return
	}
	user := actingUser(c, c.Query("user"))
	report, err := h.Store.DeleteApplication(c.Request.Context(), id, user)
	if err != nil {
		respondError(c, err, "Failed to delete application")
		return
	}

	var warnings []string
	for _, step := range report.Steps {
		if step.Warning != "" {
			warnings = append(warnings, step.Name+": "+step.Warning)
		}
	}
	if len(warnings) > 0 {
		logs.Log(fmt.Sprintf("[WARNING][API] application %d deleted with %d skipped steps", id, len(warnings)))
	}

	h.emit(c, store.Applications.Slug, models.ActionDelete, id, user)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Application and all related data deleted successfully.",
		"steps":    report.Steps,
		"warnings": warnings,
	})
}
