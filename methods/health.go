/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package methods

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/structs"
	"github.com/gin-gonic/gin"

	"github.com/nethesis/app-registry/db"
	"github.com/nethesis/app-registry/models"
)

// ClientCounter reports the number of live websocket clients.
type ClientCounter interface {
	Count() int
}

// Health pings the database. It answers 503 when the database is unreachable.
func (h *Handler) Health(clients ClientCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := models.HealthStatus{Status: "ok", Database: "ok"}
		if clients != nil {
			status.Clients = clients.Count()
		}
		code := http.StatusOK
		if err := db.HealthCheck(c.Request.Context(), h.Store.DB()); err != nil {
			status.Status = "degraded"
			status.Database = err.Error()
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, structs.Map(status))
	}
}

// Frontend serves the single page client from dir. Unknown files fall back
// to index.html, unknown API routes get a JSON 404.
func Frontend(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/api" || strings.HasPrefix(path, "/api/") {
			c.JSON(http.StatusNotFound, structs.Map(models.ErrorResponse{Error: "API route not found"}))
			return
		}

		// Clean of a rooted path cannot climb above dir
		file := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+path)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}

		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusNotFound, structs.Map(models.ErrorResponse{Error: "Not found"}))
			return
		}
		c.File(index)
	}
}
