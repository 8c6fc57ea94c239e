/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package methods

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// lookup serves a read only list.
func lookup[T any](read func(context.Context) ([]T, error), failure string) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := read(c.Request.Context())
		if err != nil {
			respondError(c, err, failure)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func (h *Handler) ListAccessTypes() gin.HandlerFunc {
	return lookup(h.Store.ListAccessTypes, "Failed to fetch access types")
}

func (h *Handler) ListServerTypes() gin.HandlerFunc {
	return lookup(h.Store.ListServerTypes, "Failed to fetch server types")
}

func (h *Handler) ListOwnerRoles() gin.HandlerFunc {
	return lookup(h.Store.ListOwnerRoles, "Failed to fetch roles")
}

func (h *Handler) ListReleaseTypes() gin.HandlerFunc {
	return lookup(h.Store.ListReleaseTypes, "Failed to fetch release types")
}
