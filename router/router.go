// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/feedback-page/cliparse"
	"github.com/danielhkuo/feedback-page/handlers"
	"github.com/danielhkuo/feedback-page/identity"
	"github.com/danielhkuo/feedback-page/middleware"
	"github.com/danielhkuo/feedback-page/models"
	"github.com/danielhkuo/feedback-page/notify"
	"github.com/danielhkuo/feedback-page/store"
)

// Services are the collaborators outside the entity store. Nil fields fall
// back to implementations that do nothing or report "not configured".
type Services struct {
	Notifier notify.Notifier
	Users    handlers.UserCreator
	Verifier middleware.TokenVerifier
}

func (s Services) withDefaults() Services {
	if s.Notifier == nil {
		s.Notifier = notify.Nop{}
	}
	if s.Users == nil {
		s.Users = identity.NewClient("", "", nil)
	}
	if s.Verifier == nil {
		s.Verifier = identity.NewVerifier("", nil)
	}
	return s
}

func NewRouter(st *store.Store, cfg cliparse.Config, svc Services) *http.ServeMux {
	mux := http.NewServeMux()
	svc = svc.withDefaults()
	base := cfg.BasePath

	// Initialize handlers
	businessHandler := handlers.NewBusinessHandler(st)
	locationHandler := handlers.NewLocationHandler(st)
	feedbackHandler := handlers.NewFeedbackHandler(st, svc.Notifier)
	optInHandler := handlers.NewOptInHandler(st)
	demoHandler := handlers.NewDemoHandler(st)
	accountHandler := handlers.NewAccountHandler(svc.Users)
	billingHandler := handlers.NewBillingHandler()

	// anon wraps routes the web app calls with the project anon key
	anon := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAnonKey(cfg.AnonKey, h))
	}

	// Health check
	mux.HandleFunc("GET "+base+"/health", middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{Status: "ok"})
	}))

	// Business settings and dashboard
	mux.HandleFunc("GET "+base+"/business/{id}", anon(businessHandler.GetBusiness))
	mux.HandleFunc("PUT "+base+"/business/{id}", anon(businessHandler.UpdateBusiness))
	mux.HandleFunc("GET "+base+"/business/{id}/stats", anon(businessHandler.GetStats))

	// Locations
	mux.HandleFunc("GET "+base+"/locations", anon(locationHandler.ListLocations))
	mux.HandleFunc("POST "+base+"/locations", anon(locationHandler.CreateLocation))
	mux.HandleFunc("GET "+base+"/locations/{id}", anon(locationHandler.GetLocation))
	mux.HandleFunc("PUT "+base+"/locations/{id}", anon(locationHandler.UpdateLocation))
	mux.HandleFunc("DELETE "+base+"/locations/{id}", anon(locationHandler.DeleteLocation))

	// Customer submissions
	mux.HandleFunc("POST "+base+"/feedback", anon(feedbackHandler.SubmitFeedback))
	mux.HandleFunc("GET "+base+"/business/{id}/feedback", anon(feedbackHandler.ListFeedback))
	mux.HandleFunc("GET "+base+"/business/{id}/feedback/export", anon(feedbackHandler.ExportFeedback))
	mux.HandleFunc("POST "+base+"/opt-in", anon(optInHandler.SubmitOptIn))
	mux.HandleFunc("GET "+base+"/business/{id}/opt-ins", anon(optInHandler.ListOptIns))

	// Demo and accounts
	mux.HandleFunc("POST "+base+"/init-demo", anon(demoHandler.InitDemo))
	mux.HandleFunc("POST "+base+"/signup", anon(accountHandler.Signup))

	// Billing. Checkout takes the user's access token as its bearer; the
	// webhook is called by the payment provider and carries no key.
	mux.HandleFunc("GET "+base+"/plans", anon(billingHandler.ListPlans))
	mux.HandleFunc("POST "+base+"/create-checkout-session",
		middleware.WithLogging(middleware.RequireUser(svc.Verifier, billingHandler.CreateCheckoutSession)))
	mux.HandleFunc("POST "+base+"/stripe-webhook", middleware.WithLogging(billingHandler.StripeWebhook))

	// Root endpoint
	mux.HandleFunc("GET /{$}", middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("feedback-page API v1"))
	}))

	return mux
}
