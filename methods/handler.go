/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package methods

import (
	"context"
	"net/http"
	"time"

	"github.com/fatih/structs"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/nethesis/app-registry/configuration"
	"github.com/nethesis/app-registry/middleware"
	"github.com/nethesis/app-registry/models"
	"github.com/nethesis/app-registry/store"
	"github.com/nethesis/app-registry/utils"
)

// Notifier receives an event after every committed change.
type Notifier interface {
	Publish(event models.RegistryEvent)
}

// Handler serves the registry API on top of one store.
type Handler struct {
	Store     *store.Store
	notifiers []Notifier
	now       func() time.Time
}

func NewHandler(s *store.Store, notifiers ...Notifier) *Handler {
	return &Handler{Store: s, notifiers: notifiers, now: time.Now}
}

// emit is called only once the store committed.
func (h *Handler) emit(c *gin.Context, entity string, action string, id models.ID, user string) {
	h.Notify(models.RegistryEvent{
		Entity:    entity,
		Action:    action,
		ID:        id,
		User:      user,
		Timestamp: h.now().UTC(),
		Details:   c.GetString(middleware.RequestIDKey),
	})
}

// Notify delivers event to every notifier.
func (h *Handler) Notify(event models.RegistryEvent) {
	for _, n := range h.notifiers {
		if n != nil {
			n.Publish(event)
		}
	}
}

// actingUser picks who is recorded in the trash bin: the token identity,
// then the user named in the body, then the configured default.
func actingUser(c *gin.Context, named string) string {
	if user := c.GetString(models.ActingUserKey); user != "" {
		return user
	}
	if named != "" {
		return named
	}
	if configuration.Config.DefaultUser != "" {
		return configuration.Config.DefaultUser
	}
	return "admin"
}

func creator(c *gin.Context, actor models.Actor) string {
	return actingUser(c, actor.CreatedBy)
}

func updater(c *gin.Context, actor models.Actor) string {
	if actor.UpdatedBy != "" {
		return actingUser(c, actor.UpdatedBy)
	}
	return actingUser(c, actor.CreatedBy)
}

// pathID reads the :id parameter, answering 400 when it is not a positive integer.
func pathID(c *gin.Context, label string) (models.ID, bool) {
	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid "+label+" ID", "")
		return 0, false
	}
	return id, true
}

// bind decodes the JSON body, answering 400 on missing required fields.
func bind(c *gin.Context, obj interface{}, message string) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		badRequest(c, message, err.Error())
		return false
	}
	return true
}

func badRequest(c *gin.Context, message string, details string) {
	c.JSON(http.StatusBadRequest, structs.Map(models.ErrorResponse{Error: message, Details: details}))
}

// respondError maps store errors to responses. Anything unexpected is
// logged with the request id and answered with a generic 500.
func respondError(c *gin.Context, err error, failure string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, structs.Map(models.ErrorResponse{Error: err.Error()}))
	case errors.Is(err, store.ErrReferenced), errors.Is(err, store.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, structs.Map(models.ErrorResponse{Error: err.Error()}))
	default:
		utils.LogRequestError(c.GetString(middleware.RequestIDKey), err, "[ERROR][API] "+failure)
		c.JSON(http.StatusInternalServerError, structs.Map(models.ErrorResponse{Error: failure}))
	}
}

func created(c *gin.Context, message string, id models.ID) {
	c.JSON(http.StatusCreated, structs.Map(models.MutationResult{Success: true, Message: message, ID: id}))
}

func done(c *gin.Context, message string) {
	c.JSON(http.StatusOK, structs.Map(models.MutationResult{Success: true, Message: message}))
}

type deleteFunc func(ctx context.Context, id models.ID, user string) error

// remove runs one audited delete addressed by the :id parameter.
func (h *Handler) remove(c *gin.Context, label string, slug string, fn deleteFunc, message string) {
	id, ok := pathID(c, label)
	if !ok {
		return
	}
	user := actingUser(c, c.Query("user"))
	if err := fn(c.Request.Context(), id, user); err != nil {
		respondError(c, err, "Delete failed")
		return
	}
	h.emit(c, slug, models.ActionDelete, id, user)
	done(c, message)
}
