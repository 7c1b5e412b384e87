// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/feedback-page/middleware"
	"github.com/danielhkuo/feedback-page/models"
	"github.com/danielhkuo/feedback-page/store"
)

type OptInHandler struct {
	store *store.Store
}

func NewOptInHandler(st *store.Store) *OptInHandler {
	return &OptInHandler{store: st}
}

// SubmitOptIn handles POST /opt-in. Repeat emails are accepted.
func (h *OptInHandler) SubmitOptIn(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitOptInRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	optIn, err := h.store.CreateOptIn(r.Context(), req)
	if err != nil {
		slog.Error("failed to submit opt-in", "business_id", req.BusinessID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit opt-in")
		return
	}

	slog.Info("opt-in submitted", "opt_in_id", optIn.ID)

	middleware.JSONResponse(w, http.StatusOK, models.OptInResponse{Success: true, OptIn: optIn})
}

// ListOptIns handles GET /business/{id}/opt-ins
func (h *OptInHandler) ListOptIns(w http.ResponseWriter, r *http.Request) {
	businessID := r.PathValue("id")

	optIns, err := h.store.ListOptIns(r.Context(), businessID)
	if err != nil {
		slog.Error("failed to fetch opt-ins", "business_id", businessID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch opt-ins")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, optIns)
}
