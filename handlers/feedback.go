// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/feedback-page/middleware"
	"github.com/danielhkuo/feedback-page/models"
	"github.com/danielhkuo/feedback-page/notify"
	"github.com/danielhkuo/feedback-page/store"
)

type FeedbackHandler struct {
	store    *store.Store
	notifier notify.Notifier
}

func NewFeedbackHandler(st *store.Store, notifier notify.Notifier) *FeedbackHandler {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &FeedbackHandler{store: st, notifier: notifier}
}

// SubmitFeedback handles POST /feedback
func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitFeedbackRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := validate.Struct(req)
	if failedRequired(fieldErrors(err), "businessId", "comment", "type") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Business ID, comment, and type are required")
		return
	}
	if req.Type == models.TypeFeedback && req.Rating == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Rating is required for feedback")
		return
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	fb, err := h.store.CreateFeedback(r.Context(), req)
	if err != nil {
		slog.Error("failed to submit feedback", "business_id", req.BusinessID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit feedback")
		return
	}

	slog.Info("feedback submitted", "feedback_id", fb.ID, "type", fb.Type, "rating", fb.Rating)

	h.notify(r.Context(), fb)

	middleware.JSONResponse(w, http.StatusOK, fb)
}

// notify tells the business about new feedback. Any failure is logged and
// swallowed.
func (h *FeedbackHandler) notify(ctx context.Context, fb models.Feedback) {
	business, err := h.store.GetBusiness(ctx, fb.BusinessID)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		slog.Warn("skipping feedback notification", "business_id", fb.BusinessID, "error", err)
		return
	}

	if err := h.notifier.FeedbackReceived(ctx, business, fb); err != nil {
		slog.Error("failed to send feedback notification",
			"business_id", fb.BusinessID,
			"feedback_id", fb.ID,
			"error", err,
		)
	}
}

// ListFeedback handles GET /business/{id}/feedback
func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	items, ok := h.filteredFeedback(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, items)
}

// ExportFeedback handles GET /business/{id}/feedback/export
func (h *FeedbackHandler) ExportFeedback(w http.ResponseWriter, r *http.Request) {
	items, ok := h.filteredFeedback(w, r)
	if !ok {
		return
	}

	filename := fmt.Sprintf("feedback-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)

	if err := WriteFeedbackCSV(w, items); err != nil {
		slog.Error("failed to write feedback export", "business_id", r.PathValue("id"), "error", err)
	}
}

func (h *FeedbackHandler) filteredFeedback(w http.ResponseWriter, r *http.Request) ([]models.Feedback, bool) {
	businessID := r.PathValue("id")

	filter, err := parseFeedbackFilter(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	items, err := h.store.ListFeedback(r.Context(), businessID)
	if err != nil {
		slog.Error("failed to fetch feedback", "business_id", businessID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch feedback")
		return nil, false
	}

	return store.FilterFeedback(items, filter), true
}

// parseFeedbackFilter reads ?type=, ?rating= and ?q=. "all" and empty
// values match everything.
func parseFeedbackFilter(r *http.Request) (models.FeedbackFilter, error) {
	q := r.URL.Query()
	var f models.FeedbackFilter

	switch t := q.Get("type"); t {
	case "", "all":
	case models.TypeFeedback, models.TypeSuggestion:
		f.Type = t
	default:
		return f, errors.New("type must be one of: feedback, suggestion")
	}

	if raw := q.Get("rating"); raw != "" && raw != "all" {
		rating, err := strconv.Atoi(raw)
		if err != nil || rating < 0 || rating > 5 {
			return f, errors.New("rating must be an integer between 0 and 5")
		}
		f.Rating = &rating
	}

	f.Query = q.Get("q")
	return f, nil
}

var csvHeader = []string{"Date", "Rating", "Name", "Email", "Comment", "Type"}

// WriteFeedbackCSV writes items with a header row. Dates are UTC calendar
// days.
func WriteFeedbackCSV(w io.Writer, items []models.Feedback) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, f := range items {
		record := []string{
			f.CreatedAt.UTC().Format("2006-01-02"),
			strconv.Itoa(f.Rating),
			deref(f.Name),
			deref(f.Email),
			f.Comment,
			f.Type,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
