// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/feedback-page/middleware"
	"github.com/danielhkuo/feedback-page/models"
)

const checkoutDemoMessage = "This is a demo. In production, this would create a real Stripe checkout session."

// BillingHandler serves the plan catalogue and the stubbed payment
// endpoints. No payment provider is contacted.
type BillingHandler struct{}

func NewBillingHandler() *BillingHandler {
	return &BillingHandler{}
}

func intPtr(i int) *int { return &i }

// Plans is the catalogue shown on the billing panel.
var Plans = []models.Plan{
	{
		ID: "starter", Name: "Starter", Price: intPtr(29), Locations: intPtr(1),
		Features: []string{"1 location", "Unlimited feedback submissions", "Advanced analytics", "Priority email support", "Custom branding", "Email notifications", "CSV export"},
	},
	{
		ID: "pro", Name: "Pro", Price: intPtr(59), Locations: intPtr(5),
		Features: []string{"Up to 5 locations", "Everything in Starter", "Multi-location dashboard"},
	},
	{
		ID: "business", Name: "Business", Price: intPtr(99), Locations: intPtr(15),
		Features: []string{"Up to 15 locations", "Everything in Pro", "Dedicated account manager"},
	},
	{
		ID: "enterprise", Name: "Enterprise",
		Features: []string{"Unlimited locations", "Custom integrations", "SLA"},
	},
}

// ListPlans handles GET /plans
func (h *BillingHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, Plans)
}

// CreateCheckoutSession handles POST /create-checkout-session. The route is
// wrapped in middleware.RequireUser.
func (h *BillingHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.CheckoutRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	sessionID := "cs_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	slog.Info("checkout session requested",
		"user_id", user.ID,
		"plan_id", req.PlanID,
		"billing_period", req.BillingPeriod,
		"session_id", sessionID,
	)

	middleware.JSONResponse(w, http.StatusOK, models.CheckoutResponse{
		SessionID: sessionID,
		Message:   checkoutDemoMessage,
	})
}

// StripeWebhook handles POST /stripe-webhook. Events are logged, not acted
// on, and the signature is not verified.
func (h *BillingHandler) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	var event models.WebhookEvent
	if err := middleware.ParseJSONBody(r, &event); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	slog.Info("stripe webhook received", "event_id", event.ID, "type", event.Type)

	switch event.Type {
	case models.EventCheckoutCompleted:
		slog.Info("checkout completed", "object_id", event.Data.Object["id"])
	case models.EventSubscriptionUpdated:
		slog.Info("subscription updated", "object_id", event.Data.Object["id"])
	case models.EventSubscriptionDeleted:
		slog.Info("subscription cancelled", "object_id", event.Data.Object["id"])
	default:
		slog.Debug("ignoring webhook event", "type", event.Type)
	}

	middleware.JSONResponse(w, http.StatusOK, models.WebhookResponse{Received: true})
}
