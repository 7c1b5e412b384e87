// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"time"

	"github.com/danielhkuo/feedback-page/kv"
	"github.com/danielhkuo/feedback-page/models"
)

const day = 24 * time.Hour

// SeedDemo writes the demo business with three feedback rows and three
// opt-ins under fixed IDs. Running it again overwrites those keys and
// leaves every other record, and every other index member, in place.
func (s *Store) SeedDemo(ctx context.Context) error {
	now := s.now().UTC()

	business := models.Business{
		ID:                 models.DemoBusinessID,
		Name:               "Sunny Side Cafe",
		EmailNotifications: true,
		ReviewPlatforms: []models.ReviewPlatform{
			{Name: "Google Reviews", URL: "https://g.page/r/demo", Icon: "google"},
			{Name: "Yelp", URL: "https://www.yelp.com/biz/demo", Icon: "yelp"},
			{Name: "Facebook", URL: "https://www.facebook.com/demo", Icon: "facebook"},
		},
		CreatedAt: now,
	}
	if err := kv.SetJSON(ctx, s.kv, businessKey(business.ID), business); err != nil {
		return err
	}

	for _, f := range demoFeedback(now) {
		if err := s.putFeedback(ctx, f); err != nil {
			return err
		}
	}
	for _, o := range demoOptIns(now) {
		if err := s.putOptIn(ctx, o); err != nil {
			return err
		}
	}
	return nil
}

func demoFeedback(now time.Time) []models.Feedback {
	return []models.Feedback{
		{
			ID:         models.DemoBusinessID + ":1",
			BusinessID: models.DemoBusinessID,
			Rating:     2,
			Name:       optional("Sarah Johnson"),
			Email:      optional("sarah@example.com"),
			Comment:    "The wait time was way too long - over 45 minutes for a simple breakfast order. The food was good when it finally arrived, but the service needs improvement.",
			Type:       models.TypeFeedback,
			CreatedAt:  now.Add(-2 * day),
		},
		{
			ID:         models.DemoBusinessID + ":2",
			BusinessID: models.DemoBusinessID,
			Rating:     1,
			Comment:    "Coffee was cold and the table was dirty when we sat down. Very disappointed.",
			Type:       models.TypeFeedback,
			CreatedAt:  now.Add(-3 * day),
		},
		{
			ID:         models.DemoBusinessID + ":3",
			BusinessID: models.DemoBusinessID,
			Rating:     0,
			Name:       optional("Alex Rivera"),
			Email:      optional("alex@example.com"),
			Comment:    "Would love to see more vegetarian options on the menu. Maybe add some plant-based protein choices?",
			Type:       models.TypeSuggestion,
			CreatedAt:  now.Add(-5 * day),
		},
	}
}

func demoOptIns(now time.Time) []models.OptIn {
	rating := func(r int) *int { return &r }
	return []models.OptIn{
		{
			ID:         models.DemoBusinessID + ":opt-in:1",
			BusinessID: models.DemoBusinessID,
			Name:       "Emily Chen",
			Email:      "emily.chen@example.com",
			Phone:      "555-0123",
			Rating:     rating(5),
			CreatedAt:  now.Add(-1 * day),
		},
		{
			ID:         models.DemoBusinessID + ":opt-in:2",
			BusinessID: models.DemoBusinessID,
			Name:       "Michael Brown",
			Email:      "michael.brown@example.com",
			Phone:      "555-0456",
			Rating:     rating(4),
			CreatedAt:  now.Add(-4 * day),
		},
		{
			ID:         models.DemoBusinessID + ":opt-in:3",
			BusinessID: models.DemoBusinessID,
			Name:       "Jessica Martinez",
			Email:      "jessica.m@example.com",
			Phone:      "555-0789",
			Rating:     rating(5),
			CreatedAt:  now.Add(-7 * day),
		},
	}
}
