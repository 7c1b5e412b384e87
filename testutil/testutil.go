// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/feedback-page/cliparse"
	"github.com/danielhkuo/feedback-page/kv"
	"github.com/danielhkuo/feedback-page/models"
	"github.com/danielhkuo/feedback-page/store"
)

// TestAnonKey is the anon key GetTestConfig configures
const TestAnonKey = "test-anon-key"

// SetupTestKV opens a fresh SQLite-backed key-value store in a temp dir
func SetupTestKV(t *testing.T) kv.Store {
	t.Helper()

	s, err := kv.OpenSQL(kv.TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

// SetupTestStore returns a domain store over a fresh SQLite database
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(SetupTestKV(t))
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: kv.TypeSQLite,
		DatabaseURL:  "file::memory:",
		BasePath:     "/api",
		AnonKey:      TestAnonKey,
	}
}

// Clock is a controllable time source for store.SetClock
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// CreateTestBusiness stores a business with one review platform
func CreateTestBusiness(t *testing.T, st *store.Store, id string) models.Business {
	t.Helper()

	b, err := st.ReplaceBusiness(context.Background(), id, models.UpdateBusinessRequest{
		Name: "Test Business",
		ReviewPlatforms: []models.ReviewPlatform{
			{Name: "Google Reviews", URL: "https://g.page/r/test", Icon: "google"},
		},
	})
	if err != nil {
		t.Fatalf("Failed to create test business: %v", err)
	}
	return b
}

// CreateTestLocation stores a location with the given name
func CreateTestLocation(t *testing.T, st *store.Store, name string) models.Location {
	t.Helper()

	loc, err := st.CreateLocation(context.Background(), models.CreateLocationRequest{
		Name:    name,
		Address: "1 Test Street",
	})
	if err != nil {
		t.Fatalf("Failed to create test location: %v", err)
	}
	return loc
}

// CreateTestFeedback stores feedback of the given type and rating
func CreateTestFeedback(t *testing.T, st *store.Store, businessID, feedbackType string, rating int, comment string) models.Feedback {
	t.Helper()

	f, err := st.CreateFeedback(context.Background(), models.SubmitFeedbackRequest{
		BusinessID: businessID,
		Rating:     &rating,
		Comment:    comment,
		Type:       feedbackType,
	})
	if err != nil {
		t.Fatalf("Failed to create test feedback: %v", err)
	}
	return f
}

// CreateTestOptIn stores an opt-in for the given email
func CreateTestOptIn(t *testing.T, st *store.Store, businessID, email string) models.OptIn {
	t.Helper()

	o, err := st.CreateOptIn(context.Background(), models.SubmitOptInRequest{
		BusinessID: businessID,
		Name:       "Test Customer",
		Email:      email,
		Phone:      "555-0000",
	})
	if err != nil {
		t.Fatalf("Failed to create test opt-in: %v", err)
	}
	return o
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AnonHeaders returns the Authorization header for the test anon key
func AnonHeaders() map[string]string {
	return map[string]string{"Authorization": "Bearer " + TestAnonKey}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertError decodes an error response and checks its message
func AssertError(t *testing.T, w *httptest.ResponseRecorder, message string) {
	t.Helper()
	var resp models.ErrorResponse
	AssertJSON(t, w, &resp)
	if resp.Error != message {
		t.Errorf("Expected error %q, got %q", message, resp.Error)
	}
}
