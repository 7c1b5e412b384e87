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

type BusinessHandler struct {
	store *store.Store
}

func NewBusinessHandler(st *store.Store) *BusinessHandler {
	return &BusinessHandler{store: st}
}

// GetBusiness handles GET /business/{id}
func (h *BusinessHandler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	businessID := r.PathValue("id")

	business, err := h.store.GetBusiness(r.Context(), businessID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Business not found")
		return
	}
	if err != nil {
		slog.Error("failed to fetch business", "business_id", businessID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch business")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, business)
}

// UpdateBusiness handles PUT /business/{id}
func (h *BusinessHandler) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	businessID := r.PathValue("id")

	var req models.UpdateBusinessRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if _, err := h.store.ReplaceBusiness(r.Context(), businessID, req); err != nil {
		slog.Error("failed to update business", "business_id", businessID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update business")
		return
	}

	slog.Info("business updated", "business_id", businessID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// GetStats handles GET /business/{id}/stats
func (h *BusinessHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	businessID := r.PathValue("id")

	stats, err := h.store.Stats(r.Context(), businessID)
	if err != nil {
		slog.Error("failed to compute stats", "business_id", businessID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}
