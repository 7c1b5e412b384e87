// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/feedback-page/models"
	"github.com/danielhkuo/feedback-page/testutil"
)

func TestCreateLocation(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewLocationHandler(st)

	t.Run("valid location", func(t *testing.T) {
		body := models.CreateLocationRequest{
			Name:    "Downtown",
			Address: "12 Main St",
			Phone:   "555-0100",
		}
		req := testutil.MakeRequest("POST", "/locations", body, nil)
		w := httptest.NewRecorder()

		handler.CreateLocation(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var loc models.Location
		testutil.AssertJSON(t, w, &loc)

		if !strings.HasPrefix(loc.ID, "loc_") {
			t.Errorf("Expected id with 'loc_' prefix, got '%s'", loc.ID)
		}
		if loc.Name != "Downtown" || loc.Address != "12 Main St" {
			t.Errorf("Unexpected location %+v", loc)
		}
		if loc.ReviewPlatforms == nil {
			t.Error("Expected reviewPlatforms to be an empty list, not null")
		}
		if loc.CreatedAt.IsZero() {
			t.Error("Expected createdAt to be set")
		}
	})

	t.Run("missing name", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/locations", map[string]string{"address": "x"}, nil)
		w := httptest.NewRecorder()

		handler.CreateLocation(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
		testutil.AssertError(t, w, "name is required")
	})
}

func TestListLocations(t *testing.T) {
	st := testutil.SetupTestStore(t)
	clock := testutil.NewClock(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	st.SetClock(clock.Now)
	handler := NewLocationHandler(st)

	t.Run("empty", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/locations", nil)
		w := httptest.NewRecorder()

		handler.ListLocations(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		if body := strings.TrimSpace(w.Body.String()); body != "[]" {
			t.Errorf("Expected empty JSON array, got %s", body)
		}
	})

	first := testutil.CreateTestLocation(t, st, "First")
	clock.Advance(time.Minute)
	second := testutil.CreateTestLocation(t, st, "Second")

	req := httptest.NewRequest("GET", "/locations", nil)
	w := httptest.NewRecorder()

	handler.ListLocations(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var locations []models.Location
	testutil.AssertJSON(t, w, &locations)

	if len(locations) != 2 {
		t.Fatalf("Expected 2 locations, got %d", len(locations))
	}
	if locations[0].ID != first.ID || locations[1].ID != second.ID {
		t.Errorf("Expected oldest first, got %s then %s", locations[0].Name, locations[1].Name)
	}
}

func TestGetLocation(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewLocationHandler(st)
	loc := testutil.CreateTestLocation(t, st, "Harbor")

	req := httptest.NewRequest("GET", "/locations/"+loc.ID, nil)
	req.SetPathValue("id", loc.ID)
	w := httptest.NewRecorder()

	handler.GetLocation(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	req = httptest.NewRequest("GET", "/locations/loc_missing", nil)
	req.SetPathValue("id", "loc_missing")
	w = httptest.NewRecorder()

	handler.GetLocation(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
	testutil.AssertError(t, w, "Location not found")
}

func TestUpdateLocation(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewLocationHandler(st)
	loc := testutil.CreateTestLocation(t, st, "Harbor")

	t.Run("merges fields", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/locations/"+loc.ID, map[string]string{"phone": "555-0199"}, nil)
		req.SetPathValue("id", loc.ID)
		w := httptest.NewRecorder()

		handler.UpdateLocation(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var updated models.Location
		testutil.AssertJSON(t, w, &updated)

		if updated.Name != "Harbor" {
			t.Errorf("Expected name to be kept, got '%s'", updated.Name)
		}
		if updated.Phone != "555-0199" {
			t.Errorf("Expected phone '555-0199', got '%s'", updated.Phone)
		}
		if updated.UpdatedAt == nil {
			t.Error("Expected updatedAt to be set")
		}
		if !updated.CreatedAt.Equal(loc.CreatedAt) {
			t.Error("Expected createdAt to be kept")
		}
	})

	t.Run("missing location", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/locations/loc_missing", map[string]string{"name": "x"}, nil)
		req.SetPathValue("id", "loc_missing")
		w := httptest.NewRecorder()

		handler.UpdateLocation(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("invalid email", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/locations/"+loc.ID, map[string]string{"email": "not-an-email"}, nil)
		req.SetPathValue("id", loc.ID)
		w := httptest.NewRecorder()

		handler.UpdateLocation(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
		testutil.AssertError(t, w, "email must be a valid email address")

		stored, err := st.GetLocation(context.Background(), loc.ID)
		if err != nil {
			t.Fatalf("Failed to reload location: %v", err)
		}
		if stored.Email == "not-an-email" {
			t.Error("Expected invalid email not to be stored")
		}
	})

	t.Run("blank name", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/locations/"+loc.ID, map[string]string{"name": ""}, nil)
		req.SetPathValue("id", loc.ID)
		w := httptest.NewRecorder()

		handler.UpdateLocation(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestDeleteLocation(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewLocationHandler(st)
	loc := testutil.CreateTestLocation(t, st, "Harbor")

	for _, id := range []string{loc.ID, loc.ID, "loc_never_existed"} {
		req := httptest.NewRequest("DELETE", "/locations/"+id, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()

		handler.DeleteLocation(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.SuccessResponse
		testutil.AssertJSON(t, w, &resp)
		if !resp.Success {
			t.Errorf("Expected success deleting %s", id)
		}
	}

	if _, err := st.GetLocation(t.Context(), loc.ID); err == nil {
		t.Error("Expected location to be gone")
	}
}
