/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package methods

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fatih/structs"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/nethesis/app-registry/models"
	"github.com/nethesis/app-registry/store"
	"github.com/nethesis/app-registry/utils"
)

// ListTrash reads the trash bin of one entity, newest first. Optional
// filters: id, user and action (comma separated), from and to (a day or
// an ISO 8601 timestamp) and limit.
func (h *Handler) ListTrash(c *gin.Context) {
	var filter store.LogFilter

	if raw := c.Query("id"); raw != "" {
		id, err := models.ParseID(raw)
		if err != nil {
			badRequest(c, "Invalid record ID", "")
			return
		}
		filter.RecordID = id
	}
	filter.Users = utils.SplitList(c.Query("user"))
	filter.Actions = utils.SplitList(c.Query("action"))

	var err error
	if filter.From, err = parseInstant(c.Query("from")); err != nil {
		badRequest(c, "Invalid from value", err.Error())
		return
	}
	if filter.To, err = parseInstant(c.Query("to")); err != nil {
		badRequest(c, "Invalid to value", err.Error())
		return
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			badRequest(c, "Invalid limit value", "")
			return
		}
		filter.Limit = limit
	}

	entries, err := h.Store.ListLogs(c.Request.Context(), c.Param("entity"), filter)
	if errors.Is(err, store.ErrUnknownEntity) {
		c.JSON(http.StatusNotFound, structs.Map(models.ErrorResponse{Error: "Unknown entity " + c.Param("entity")}))
		return
	}
	if err != nil {
		respondError(c, err, "Failed to fetch trash bin")
		return
	}
	c.JSON(http.StatusOK, entries)
}

func parseInstant(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	day, err := models.ParseDate(value)
	if err != nil {
		return time.Time{}, err
	}
	return day.Time, nil
}
