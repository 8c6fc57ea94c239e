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

func (h *Handler) ListCompanies(c *gin.Context) {
	companies, err := h.Store.ListCompanies(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch companies")
		return
	}
	c.JSON(http.StatusOK, companies)
}

func (h *Handler) CreateCompany(c *gin.Context) {
	var in models.CompanyInput
	if !bind(c, &in, "Company name is required") {
		return
	}
	user := creator(c, in.Actor)
	id, err := h.Store.CreateCompany(c.Request.Context(), user, in)
	if err != nil {
		respondError(c, err, "Insert failed")
		return
	}
	h.emit(c, store.Companies.Slug, models.ActionNew, id, user)
	created(c, "Company created and logged successfully", id)
}

func (h *Handler) UpdateCompany(c *gin.Context) {
	id, ok := pathID(c, "company")
	if !ok {
		return
	}
	var in models.CompanyInput
	if !bind(c, &in, "Company name is required") {
		return
	}
	user := updater(c, in.Actor)
	if err := h.Store.UpdateCompany(c.Request.Context(), id, user, in); err != nil {
		respondError(c, err, "Update failed due to server error.")
		return
	}
	h.emit(c, store.Companies.Slug, models.ActionEdit, id, user)
	done(c, "Company updated and logged successfully")
}

func (h *Handler) DeleteCompany(c *gin.Context) {
	h.remove(c, "company", store.Companies.Slug, h.Store.DeleteCompany, "Company deleted and moved to Trash Bin.")
}
