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

type DemoHandler struct {
	store *store.Store
}

func NewDemoHandler(st *store.Store) *DemoHandler {
	return &DemoHandler{store: st}
}

// InitDemo handles POST /init-demo
func (h *DemoHandler) InitDemo(w http.ResponseWriter, r *http.Request) {
	if err := h.store.SeedDemo(r.Context()); err != nil {
		slog.Error("failed to initialize demo data", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to initialize demo data")
		return
	}

	slog.Info("demo data initialized", "business_id", models.DemoBusinessID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "Demo data initialized",
	})
}
