// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/feedback-page/models"
)

var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response. Message is the server's {"error": ...}
// text, or the status line when the body had none.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// Is lets callers test a 404 with errors.Is(err, client.ErrNotFound).
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client calls the Feedback Page API with the project anon key.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for the API rooted at baseURL, including the base
// path, e.g. "http://localhost:3318/api".
func New(baseURL, anonKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Health

func (c *Client) Health(ctx context.Context) error {
	var resp models.HealthResponse
	return c.do(ctx, http.MethodGet, "/health", c.anonKey, nil, &resp)
}

// Business

func (c *Client) GetBusiness(ctx context.Context, id string) (models.Business, error) {
	var b models.Business
	err := c.do(ctx, http.MethodGet, "/business/"+url.PathEscape(id), c.anonKey, nil, &b)
	return b, err
}

func (c *Client) UpdateBusiness(ctx context.Context, id string, req models.UpdateBusinessRequest) error {
	var resp models.SuccessResponse
	return c.do(ctx, http.MethodPut, "/business/"+url.PathEscape(id), c.anonKey, req, &resp)
}

func (c *Client) GetStats(ctx context.Context, businessID string) (models.BusinessStats, error) {
	var stats models.BusinessStats
	err := c.do(ctx, http.MethodGet, "/business/"+url.PathEscape(businessID)+"/stats", c.anonKey, nil, &stats)
	return stats, err
}

// Locations

func (c *Client) ListLocations(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	err := c.do(ctx, http.MethodGet, "/locations", c.anonKey, nil, &locations)
	return locations, err
}

func (c *Client) GetLocation(ctx context.Context, id string) (models.Location, error) {
	var loc models.Location
	err := c.do(ctx, http.MethodGet, "/locations/"+url.PathEscape(id), c.anonKey, nil, &loc)
	return loc, err
}

func (c *Client) CreateLocation(ctx context.Context, req models.CreateLocationRequest) (models.Location, error) {
	var loc models.Location
	err := c.do(ctx, http.MethodPost, "/locations", c.anonKey, req, &loc)
	return loc, err
}

func (c *Client) UpdateLocation(ctx context.Context, id string, req models.UpdateLocationRequest) (models.Location, error) {
	var loc models.Location
	err := c.do(ctx, http.MethodPut, "/locations/"+url.PathEscape(id), c.anonKey, req, &loc)
	return loc, err
}

func (c *Client) DeleteLocation(ctx context.Context, id string) error {
	var resp models.SuccessResponse
	return c.do(ctx, http.MethodDelete, "/locations/"+url.PathEscape(id), c.anonKey, nil, &resp)
}

// Feedback

func (c *Client) SubmitFeedback(ctx context.Context, req models.SubmitFeedbackRequest) (models.Feedback, error) {
	var fb models.Feedback
	err := c.do(ctx, http.MethodPost, "/feedback", c.anonKey, req, &fb)
	return fb, err
}

func (c *Client) ListFeedback(ctx context.Context, businessID string, filter models.FeedbackFilter) ([]models.Feedback, error) {
	var items []models.Feedback
	path := "/business/" + url.PathEscape(businessID) + "/feedback" + filterQuery(filter)
	err := c.do(ctx, http.MethodGet, path, c.anonKey, nil, &items)
	return items, err
}

// ExportFeedback returns the CSV export of the filtered feedback list.
func (c *Client) ExportFeedback(ctx context.Context, businessID string, filter models.FeedbackFilter) ([]byte, error) {
	path := "/business/" + url.PathEscape(businessID) + "/feedback/export" + filterQuery(filter)
	resp, err := c.send(ctx, http.MethodGet, path, c.anonKey, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func filterQuery(f models.FeedbackFilter) string {
	q := url.Values{}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.Rating != nil {
		q.Set("rating", strconv.Itoa(*f.Rating))
	}
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// Opt-ins

func (c *Client) SubmitOptIn(ctx context.Context, req models.SubmitOptInRequest) (models.OptIn, error) {
	var resp models.OptInResponse
	err := c.do(ctx, http.MethodPost, "/opt-in", c.anonKey, req, &resp)
	return resp.OptIn, err
}

func (c *Client) ListOptIns(ctx context.Context, businessID string) ([]models.OptIn, error) {
	var optIns []models.OptIn
	err := c.do(ctx, http.MethodGet, "/business/"+url.PathEscape(businessID)+"/opt-ins", c.anonKey, nil, &optIns)
	return optIns, err
}

// Demo, accounts and billing

func (c *Client) InitDemo(ctx context.Context) error {
	var resp models.SuccessResponse
	return c.do(ctx, http.MethodPost, "/init-demo", c.anonKey, nil, &resp)
}

func (c *Client) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	var resp models.SignupResponse
	err := c.do(ctx, http.MethodPost, "/signup", c.anonKey, req, &resp)
	return resp.User, err
}

func (c *Client) ListPlans(ctx context.Context) ([]models.Plan, error) {
	var plans []models.Plan
	err := c.do(ctx, http.MethodGet, "/plans", c.anonKey, nil, &plans)
	return plans, err
}

// CreateCheckoutSession authenticates with the signed-in user's access
// token rather than the anon key.
func (c *Client) CreateCheckoutSession(ctx context.Context, accessToken string, req models.CheckoutRequest) (models.CheckoutResponse, error) {
	var resp models.CheckoutResponse
	err := c.do(ctx, http.MethodPost, "/create-checkout-session", accessToken, req, &resp)
	return resp, err
}

// Transport

func (c *Client) do(ctx context.Context, method, path, bearer string, body, out any) error {
	resp, err := c.send(ctx, method, path, bearer, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// send performs the request and turns non-2xx responses into *APIError.
// The caller closes the body of a successful response.
func (c *Client) send(ctx context.Context, method, path, bearer string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		var e models.ErrorResponse
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			apiErr.Message = e.Error
		}
		return nil, apiErr
	}
	return resp, nil
}
