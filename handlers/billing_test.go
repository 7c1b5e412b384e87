// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/feedback-page/identity"
	"github.com/danielhkuo/feedback-page/middleware"
	"github.com/danielhkuo/feedback-page/models"
	"github.com/danielhkuo/feedback-page/testutil"
)

type fakeUsers struct {
	err     error
	created []string
}

func (f *fakeUsers) CreateUser(_ context.Context, email, _, name string) (models.User, error) {
	if f.err != nil {
		return models.User{}, f.err
	}
	f.created = append(f.created, email)
	return models.User{ID: "user-1", Email: email, UserMetadata: map[string]any{"name": name}}, nil
}

func TestSignup(t *testing.T) {
	testCases := []struct {
		name           string
		users          *fakeUsers
		body           string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "creates user",
			users:          &fakeUsers{},
			body:           `{"email":"owner@example.com","password":"hunter22","name":"Owner"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing password",
			users:          &fakeUsers{},
			body:           `{"email":"owner@example.com","name":"Owner"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Email, password, and name are required",
		},
		{
			name:           "malformed email",
			users:          &fakeUsers{},
			body:           `{"email":"owner","password":"hunter22","name":"Owner"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "email must be a valid email address",
		},
		{
			name:           "provider rejects",
			users:          &fakeUsers{err: &identity.APIError{StatusCode: 422, Message: "User already registered"}},
			body:           `{"email":"owner@example.com","password":"hunter22","name":"Owner"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "User already registered",
		},
		{
			name:           "provider unreachable",
			users:          &fakeUsers{err: errors.New("dial tcp: connection refused")},
			body:           `{"email":"owner@example.com","password":"hunter22","name":"Owner"}`,
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to create user",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewAccountHandler(tc.users)

			req := httptest.NewRequest("POST", "/signup", strings.NewReader(tc.body))
			w := httptest.NewRecorder()

			handler.Signup(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
			if tc.expectedError != "" {
				testutil.AssertError(t, w, tc.expectedError)
				return
			}

			var resp models.SignupResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.User.Email != "owner@example.com" {
				t.Errorf("Unexpected user %+v", resp.User)
			}
		})
	}
}

func TestListPlans(t *testing.T) {
	handler := NewBillingHandler()

	req := httptest.NewRequest("GET", "/plans", nil)
	w := httptest.NewRecorder()

	handler.ListPlans(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var plans []models.Plan
	testutil.AssertJSON(t, w, &plans)

	want := map[string]int{"starter": 29, "pro": 59, "business": 99}
	if len(plans) != 4 {
		t.Fatalf("Expected 4 plans, got %d", len(plans))
	}
	for _, p := range plans {
		if p.ID == "enterprise" {
			if p.Price != nil {
				t.Error("Expected enterprise price to be null")
			}
			continue
		}
		if p.Price == nil || *p.Price != want[p.ID] {
			t.Errorf("Unexpected price for %s: %v", p.ID, p.Price)
		}
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	handler := NewBillingHandler()
	user := models.User{ID: "user-1", Email: "owner@example.com"}

	t.Run("authenticated", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/create-checkout-session", models.CheckoutRequest{
			PlanID: "pro", BillingPeriod: "yearly",
		}, nil)
		req = req.WithContext(middleware.WithUser(req.Context(), user))
		w := httptest.NewRecorder()

		handler.CreateCheckoutSession(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.CheckoutResponse
		testutil.AssertJSON(t, w, &resp)
		if !strings.HasPrefix(resp.SessionID, "cs_test_") {
			t.Errorf("Expected cs_test_ session id, got %s", resp.SessionID)
		}
		if resp.Message == "" {
			t.Error("Expected demo message")
		}
	})

	t.Run("no user", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/create-checkout-session", models.CheckoutRequest{
			PlanID: "pro", BillingPeriod: "monthly",
		}, nil)
		w := httptest.NewRecorder()

		handler.CreateCheckoutSession(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
		testutil.AssertError(t, w, "Unauthorized")
	})

	t.Run("unknown plan", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/create-checkout-session", models.CheckoutRequest{
			PlanID: "platinum", BillingPeriod: "monthly",
		}, nil)
		req = req.WithContext(middleware.WithUser(req.Context(), user))
		w := httptest.NewRecorder()

		handler.CreateCheckoutSession(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
		testutil.AssertError(t, w, "planId must be one of: starter, pro, business")
	})
}

func TestStripeWebhook(t *testing.T) {
	handler := NewBillingHandler()

	for _, eventType := range []string{
		models.EventCheckoutCompleted,
		models.EventSubscriptionUpdated,
		models.EventSubscriptionDeleted,
		"invoice.paid",
	} {
		t.Run(eventType, func(t *testing.T) {
			body := `{"id":"evt_1","type":"` + eventType + `","data":{"object":{"id":"obj_1"}}}`
			req := httptest.NewRequest("POST", "/stripe-webhook", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.StripeWebhook(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)
			var resp models.WebhookResponse
			testutil.AssertJSON(t, w, &resp)
			if !resp.Received {
				t.Error("Expected received true")
			}
		})
	}

	req := httptest.NewRequest("POST", "/stripe-webhook", strings.NewReader("not json"))
	w := httptest.NewRecorder()

	handler.StripeWebhook(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
