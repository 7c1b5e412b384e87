// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/feedback-page/models"
	"github.com/danielhkuo/feedback-page/testutil"
)

func boolPtr(b bool) *bool { return &b }

func TestGetBusiness(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewBusinessHandler(st)
	testutil.CreateTestBusiness(t, st, "biz-1")

	t.Run("existing business", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/business/biz-1", nil)
		req.SetPathValue("id", "biz-1")
		w := httptest.NewRecorder()

		handler.GetBusiness(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var business models.Business
		testutil.AssertJSON(t, w, &business)
		if business.ID != "biz-1" {
			t.Errorf("Expected id 'biz-1', got '%s'", business.ID)
		}
		if len(business.ReviewPlatforms) != 1 {
			t.Errorf("Expected 1 review platform, got %d", len(business.ReviewPlatforms))
		}
	})

	t.Run("missing business", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/business/nope", nil)
		req.SetPathValue("id", "nope")
		w := httptest.NewRecorder()

		handler.GetBusiness(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
		testutil.AssertError(t, w, "Business not found")
	})
}

func TestUpdateBusiness(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewBusinessHandler(st)

	testCases := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name: "valid settings",
			body: models.UpdateBusinessRequest{
				Name:               "Sunny Side Cafe",
				EmailNotifications: boolPtr(true),
				NotificationEmail:  "owner@example.com",
				ReviewPlatforms: []models.ReviewPlatform{
					{Name: "Yelp", URL: "https://yelp.com/biz/sunny"},
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing name",
			body:           map[string]any{"reviewPlatforms": []any{}},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "name is required",
		},
		{
			name: "bad notification email",
			body: models.UpdateBusinessRequest{
				Name:              "Cafe",
				NotificationEmail: "not-an-email",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "notificationEmail must be a valid email address",
		},
		{
			name: "bad platform url",
			body: models.UpdateBusinessRequest{
				Name:            "Cafe",
				ReviewPlatforms: []models.ReviewPlatform{{Name: "Google", URL: "nope"}},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "url must be a valid URL",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("PUT", "/business/biz-1", tc.body, nil)
			req.SetPathValue("id", "biz-1")
			w := httptest.NewRecorder()

			handler.UpdateBusiness(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
			if tc.expectedError != "" {
				testutil.AssertError(t, w, tc.expectedError)
			}
		})
	}

	business, err := st.GetBusiness(t.Context(), "biz-1")
	if err != nil {
		t.Fatalf("Expected business to be stored: %v", err)
	}
	if business.Name != "Sunny Side Cafe" || !business.EmailNotifications {
		t.Errorf("Unexpected stored business %+v", business)
	}
}

func TestUpdateBusinessInvalidJSON(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewBusinessHandler(st)

	req := httptest.NewRequest("PUT", "/business/biz-1", nil)
	req.SetPathValue("id", "biz-1")
	w := httptest.NewRecorder()

	handler.UpdateBusiness(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
	testutil.AssertError(t, w, "Invalid JSON")
}

func TestGetStats(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewBusinessHandler(st)

	testutil.CreateTestFeedback(t, st, "biz-1", models.TypeFeedback, 2, "slow")
	testutil.CreateTestFeedback(t, st, "biz-1", models.TypeFeedback, 3, "ok")
	testutil.CreateTestFeedback(t, st, "biz-1", models.TypeSuggestion, 0, "add oat milk")
	testutil.CreateTestOptIn(t, st, "biz-1", "a@example.com")

	req := httptest.NewRequest("GET", "/business/biz-1/stats", nil)
	req.SetPathValue("id", "biz-1")
	w := httptest.NewRecorder()

	handler.GetStats(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var stats models.BusinessStats
	testutil.AssertJSON(t, w, &stats)

	if stats.TotalFeedback != 2 {
		t.Errorf("Expected 2 feedback, got %d", stats.TotalFeedback)
	}
	if stats.TotalSuggestions != 1 {
		t.Errorf("Expected 1 suggestion, got %d", stats.TotalSuggestions)
	}
	if stats.AverageRating != 2.5 {
		t.Errorf("Expected average 2.5, got %v", stats.AverageRating)
	}
	if stats.RatingCounts != [5]int{0, 1, 1, 0, 0} {
		t.Errorf("Unexpected rating counts %v", stats.RatingCounts)
	}
	if stats.TotalOptIns != 1 {
		t.Errorf("Expected 1 opt-in, got %d", stats.TotalOptIns)
	}
}
