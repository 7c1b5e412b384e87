// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/feedback-page/identity"
	"github.com/danielhkuo/feedback-page/middleware"
	"github.com/danielhkuo/feedback-page/models"
)

// UserCreator registers accounts with the identity provider.
type UserCreator interface {
	CreateUser(ctx context.Context, email, password, name string) (models.User, error)
}

type AccountHandler struct {
	users UserCreator
}

func NewAccountHandler(users UserCreator) *AccountHandler {
	return &AccountHandler{users: users}
}

// Signup handles POST /signup
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := validate.Struct(req)
	if failedRequired(fieldErrors(err), "email", "password", "name") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Email, password, and name are required")
		return
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Email, req.Password, req.Name)
	var apiErr *identity.APIError
	if errors.As(err, &apiErr) {
		slog.Info("signup rejected", "status", apiErr.StatusCode, "reason", apiErr.Message)
		middleware.ErrorResponse(w, http.StatusBadRequest, apiErr.Message)
		return
	}
	if err != nil {
		slog.Error("failed to create user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	slog.Info("user signed up", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.SignupResponse{User: user})
}
