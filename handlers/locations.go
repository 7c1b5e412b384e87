// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/feedback-page/middleware"
	"github.com/danielhkuo/feedback-page/models"
	"github.com/danielhkuo/feedback-page/store"
)

type LocationHandler struct {
	store *store.Store
}

func NewLocationHandler(st *store.Store) *LocationHandler {
	return &LocationHandler{store: st}
}

// ListLocations handles GET /locations
func (h *LocationHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.store.ListLocations(r.Context())
	if err != nil {
		slog.Error("failed to list locations", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch locations")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, locations)
}

// GetLocation handles GET /locations/{id}
func (h *LocationHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	locationID := r.PathValue("id")

	location, err := h.store.GetLocation(r.Context(), locationID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Location not found")
		return
	}
	if err != nil {
		slog.Error("failed to fetch location", "location_id", locationID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch location")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, location)
}

// CreateLocation handles POST /locations
func (h *LocationHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLocationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	location, err := h.store.CreateLocation(r.Context(), req)
	if err != nil {
		slog.Error("failed to create location", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create location")
		return
	}

	slog.Info("location created", "location_id", location.ID)

	middleware.JSONResponse(w, http.StatusOK, location)
}

// UpdateLocation handles PUT /locations/{id}
func (h *LocationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	locationID := r.PathValue("id")

	var req models.UpdateLocationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	location, err := h.store.UpdateLocation(r.Context(), locationID, req)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Location not found")
		return
	}
	if err != nil {
		slog.Error("failed to update location", "location_id", locationID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update location")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, location)
}

// DeleteLocation handles DELETE /locations/{id}. Deleting a missing
// location succeeds.
func (h *LocationHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	locationID := r.PathValue("id")

	if err := h.store.DeleteLocation(r.Context(), locationID); err != nil {
		slog.Error("failed to delete location", "location_id", locationID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete location")
		return
	}

	slog.Info("location deleted", "location_id", locationID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
