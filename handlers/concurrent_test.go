// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/feedback-page/models"
	"github.com/danielhkuo/feedback-page/testutil"
)

// TestConcurrentFeedbackSubmissions verifies that simultaneous submissions
// for one business all land in its index
func TestConcurrentFeedbackSubmissions(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewFeedbackHandler(st, nil)

	const numCustomers = 20

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numCustomers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			body := map[string]any{
				"businessId": "busy-cafe",
				"rating":     idx%3 + 1,
				"comment":    fmt.Sprintf("comment %d", idx),
				"type":       models.TypeFeedback,
			}
			req := testutil.MakeRequest("POST", "/feedback", body, nil)
			w := httptest.NewRecorder()

			handler.SubmitFeedback(w, req)

			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numCustomers {
		t.Errorf("Expected %d successful submissions, got %d", numCustomers, successCount.Load())
	}

	req := httptest.NewRequest("GET", "/business/busy-cafe/feedback", nil)
	req.SetPathValue("id", "busy-cafe")
	w := httptest.NewRecorder()

	handler.ListFeedback(w, req)

	var items []models.Feedback
	testutil.AssertJSON(t, w, &items)
	if len(items) != numCustomers {
		t.Errorf("Expected %d feedback entries, got %d", numCustomers, len(items))
	}

	seen := make(map[string]bool)
	for _, item := range items {
		if seen[item.ID] {
			t.Errorf("Duplicate feedback id %s", item.ID)
		}
		seen[item.ID] = true
	}
}

// TestConcurrentOptIns verifies that opt-ins arriving together are all kept,
// including repeats of the same email
func TestConcurrentOptIns(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewOptInHandler(st)

	const numCustomers = 15

	var wg sync.WaitGroup
	for i := 0; i < numCustomers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			body := models.SubmitOptInRequest{
				BusinessID: "busy-cafe",
				Name:       "Regular",
				Email:      "regular@example.com",
			}
			req := testutil.MakeRequest("POST", "/opt-in", body, nil)
			w := httptest.NewRecorder()

			handler.SubmitOptIn(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("Submission %d: expected 200, got %d", idx, w.Code)
			}
		}(i)
	}

	wg.Wait()

	optIns, err := st.ListOptIns(t.Context(), "busy-cafe")
	if err != nil {
		t.Fatalf("ListOptIns: %v", err)
	}
	if len(optIns) != numCustomers {
		t.Errorf("Expected %d opt-ins, got %d", numCustomers, len(optIns))
	}
}

// TestConcurrentDemoInitWithSubmissions checks that re-seeding never drops
// feedback submitted in between
func TestConcurrentDemoInitWithSubmissions(t *testing.T) {
	st := testutil.SetupTestStore(t)
	demo := NewDemoHandler(st)
	feedback := NewFeedbackHandler(st, nil)

	const rounds = 5

	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			demo.InitDemo(w, httptest.NewRequest("POST", "/init-demo", nil))
		}()
		go func(idx int) {
			defer wg.Done()
			body := map[string]any{
				"businessId": models.DemoBusinessID,
				"comment":    fmt.Sprintf("idea %d", idx),
				"type":       models.TypeSuggestion,
			}
			w := httptest.NewRecorder()
			feedback.SubmitFeedback(w, testutil.MakeRequest("POST", "/feedback", body, nil))
		}(i)
	}

	wg.Wait()

	items, err := st.ListFeedback(t.Context(), models.DemoBusinessID)
	if err != nil {
		t.Fatalf("ListFeedback: %v", err)
	}
	if len(items) != 3+rounds {
		t.Errorf("Expected %d feedback entries, got %d", 3+rounds, len(items))
	}
}
