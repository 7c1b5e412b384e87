// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/danielhkuo/feedback-page/auth"
	"github.com/danielhkuo/feedback-page/kv"
	"github.com/danielhkuo/feedback-page/models"
)

var ErrNotFound = errors.New("not found")

const (
	locationPrefix = "location:"
	feedbackPrefix = "feedback:"
	optInPrefix    = "opt-in:"
)

func businessKey(id string) string      { return "business:" + id }
func feedbackIndexKey(id string) string { return "business:" + id + ":feedback" }
func optInIndexKey(id string) string    { return "business:" + id + ":opt-ins" }

// Store maps the domain types onto a kv.Store.
type Store struct {
	kv  kv.Store
	now func() time.Time
}

func New(s kv.Store) *Store {
	return &Store{kv: s, now: time.Now}
}

// SetClock overrides the time source used for IDs and timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) Close() error {
	return s.kv.Close()
}

func (s *Store) get(ctx context.Context, key string, v any) error {
	err := kv.GetJSON(ctx, s.kv, key, v)
	if errors.Is(err, kv.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// Business

func (s *Store) GetBusiness(ctx context.Context, id string) (models.Business, error) {
	var b models.Business
	if err := s.get(ctx, businessKey(id), &b); err != nil {
		return models.Business{}, err
	}
	return b, nil
}

// ReplaceBusiness overwrites the settings of business id, keeping its
// creation time when it already exists.
func (s *Store) ReplaceBusiness(ctx context.Context, id string, req models.UpdateBusinessRequest) (models.Business, error) {
	now := s.now().UTC()
	createdAt := now
	existing, err := s.GetBusiness(ctx, id)
	switch {
	case err == nil:
		createdAt = existing.CreatedAt
	case !errors.Is(err, ErrNotFound):
		return models.Business{}, err
	}

	notifications := true
	if req.EmailNotifications != nil {
		notifications = *req.EmailNotifications
	}

	b := models.Business{
		ID:                 id,
		Name:               req.Name,
		LogoURL:            req.LogoURL,
		ReviewPlatforms:    nonNil(req.ReviewPlatforms),
		EmailNotifications: notifications,
		NotificationEmail:  req.NotificationEmail,
		AutoReplyEnabled:   req.AutoReplyEnabled,
		AutoReplyMessage:   req.AutoReplyMessage,
		CreatedAt:          createdAt,
		UpdatedAt:          &now,
	}
	if err := kv.SetJSON(ctx, s.kv, businessKey(id), b); err != nil {
		return models.Business{}, err
	}
	return b, nil
}

// Locations

func (s *Store) ListLocations(ctx context.Context) ([]models.Location, error) {
	values, err := s.kv.GetByPrefix(ctx, locationPrefix)
	if err != nil {
		return nil, err
	}

	locations := make([]models.Location, 0, len(values))
	for _, raw := range values {
		var loc models.Location
		if err := json.Unmarshal(raw, &loc); err != nil {
			slog.Warn("skipping undecodable location", "error", err)
			continue
		}
		locations = append(locations, loc)
	}

	slices.SortStableFunc(locations, func(a, b models.Location) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), strings.Compare(a.ID, b.ID))
	})
	return locations, nil
}

func (s *Store) GetLocation(ctx context.Context, id string) (models.Location, error) {
	var loc models.Location
	if err := s.get(ctx, locationPrefix+id, &loc); err != nil {
		return models.Location{}, err
	}
	return loc, nil
}

func (s *Store) CreateLocation(ctx context.Context, req models.CreateLocationRequest) (models.Location, error) {
	now := s.now().UTC()
	id, err := auth.NewLocationID(now)
	if err != nil {
		return models.Location{}, err
	}

	loc := models.Location{
		ID:              id,
		Name:            req.Name,
		Address:         req.Address,
		Phone:           req.Phone,
		Email:           req.Email,
		ReviewPlatforms: nonNil(req.ReviewPlatforms),
		CreatedAt:       now,
	}
	if err := kv.SetJSON(ctx, s.kv, locationPrefix+id, loc); err != nil {
		return models.Location{}, err
	}
	return loc, nil
}

func (s *Store) UpdateLocation(ctx context.Context, id string, req models.UpdateLocationRequest) (models.Location, error) {
	loc, err := s.GetLocation(ctx, id)
	if err != nil {
		return models.Location{}, err
	}

	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.Address != nil {
		loc.Address = *req.Address
	}
	if req.Phone != nil {
		loc.Phone = *req.Phone
	}
	if req.Email != nil {
		loc.Email = *req.Email
	}
	if req.ReviewPlatforms != nil {
		loc.ReviewPlatforms = req.ReviewPlatforms
	}
	now := s.now().UTC()
	loc.ID = id
	loc.UpdatedAt = &now

	if err := kv.SetJSON(ctx, s.kv, locationPrefix+id, loc); err != nil {
		return models.Location{}, err
	}
	return loc, nil
}

// DeleteLocation removes the location. Missing locations are not an error.
// Feedback is not linked to locations, so nothing cascades.
func (s *Store) DeleteLocation(ctx context.Context, id string) error {
	return s.kv.Delete(ctx, locationPrefix+id)
}

// Feedback

// CreateFeedback stores a validated submission and appends it to the
// business's feedback index.
func (s *Store) CreateFeedback(ctx context.Context, req models.SubmitFeedbackRequest) (models.Feedback, error) {
	now := s.now().UTC()
	id, err := auth.NewFeedbackID(req.BusinessID, now)
	if err != nil {
		return models.Feedback{}, err
	}

	rating := 0
	if req.Type == models.TypeFeedback && req.Rating != nil {
		rating = *req.Rating
	}

	f := models.Feedback{
		ID:         id,
		BusinessID: req.BusinessID,
		Rating:     rating,
		Name:       optional(req.Name),
		Email:      optional(req.Email),
		Comment:    req.Comment,
		Type:       req.Type,
		CreatedAt:  now,
	}
	if err := s.putFeedback(ctx, f); err != nil {
		return models.Feedback{}, err
	}
	return f, nil
}

func (s *Store) putFeedback(ctx context.Context, f models.Feedback) error {
	if err := kv.SetJSON(ctx, s.kv, feedbackPrefix+f.ID, f); err != nil {
		return err
	}
	return s.kv.AddToIndex(ctx, feedbackIndexKey(f.BusinessID), f.ID)
}

// ListFeedback returns the business's feedback newest first.
func (s *Store) ListFeedback(ctx context.Context, businessID string) ([]models.Feedback, error) {
	items, err := resolveIndex[models.Feedback](ctx, s.kv, feedbackIndexKey(businessID), feedbackPrefix)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(items, func(a, b models.Feedback) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return items, nil
}

// Opt-ins

func (s *Store) CreateOptIn(ctx context.Context, req models.SubmitOptInRequest) (models.OptIn, error) {
	now := s.now().UTC()
	id, err := auth.NewOptInID(req.BusinessID, now)
	if err != nil {
		return models.OptIn{}, err
	}

	o := models.OptIn{
		ID:         id,
		BusinessID: req.BusinessID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Rating:     req.Rating,
		CreatedAt:  now,
	}
	if err := s.putOptIn(ctx, o); err != nil {
		return models.OptIn{}, err
	}
	return o, nil
}

func (s *Store) putOptIn(ctx context.Context, o models.OptIn) error {
	if err := kv.SetJSON(ctx, s.kv, optInPrefix+o.ID, o); err != nil {
		return err
	}
	return s.kv.AddToIndex(ctx, optInIndexKey(o.BusinessID), o.ID)
}

// ListOptIns returns the business's opt-ins newest first.
func (s *Store) ListOptIns(ctx context.Context, businessID string) ([]models.OptIn, error) {
	items, err := resolveIndex[models.OptIn](ctx, s.kv, optInIndexKey(businessID), optInPrefix)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(items, func(a, b models.OptIn) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return items, nil
}

// resolveIndex loads every member of index in one batch. Members whose
// entity is gone are skipped.
func resolveIndex[T any](ctx context.Context, s kv.Store, index, prefix string) ([]T, error) {
	ids, err := s.IndexMembers(ctx, index)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = prefix + id
	}
	found, err := s.GetMany(ctx, keys)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(found))
	for _, key := range keys {
		raw, ok := found[key]
		if !ok {
			continue
		}
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func newestFirst(a, b time.Time, aID, bID string) int {
	return cmp.Or(b.Compare(a), strings.Compare(bID, aID))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
