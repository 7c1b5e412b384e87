// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"math"
	"strings"

	"github.com/danielhkuo/feedback-page/models"
)

// FilterFeedback keeps the items matching every set field of f. Query is a
// case-insensitive substring match on comment, name, and email.
func FilterFeedback(items []models.Feedback, f models.FeedbackFilter) []models.Feedback {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]models.Feedback, 0, len(items))
	for _, item := range items {
		if f.Type != "" && item.Type != f.Type {
			continue
		}
		if f.Rating != nil && item.Rating != *f.Rating {
			continue
		}
		if query != "" && !matchesQuery(item, query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesQuery(item models.Feedback, query string) bool {
	if strings.Contains(strings.ToLower(item.Comment), query) {
		return true
	}
	if item.Name != nil && strings.Contains(strings.ToLower(*item.Name), query) {
		return true
	}
	return item.Email != nil && strings.Contains(strings.ToLower(*item.Email), query)
}

// Stats aggregates the dashboard overview for a business. Only rated
// feedback (type feedback, rating 1-5) counts toward the average.
func (s *Store) Stats(ctx context.Context, businessID string) (models.BusinessStats, error) {
	feedback, err := s.ListFeedback(ctx, businessID)
	if err != nil {
		return models.BusinessStats{}, err
	}
	optIns, err := s.ListOptIns(ctx, businessID)
	if err != nil {
		return models.BusinessStats{}, err
	}

	stats := ComputeStats(feedback)
	stats.BusinessID = businessID
	stats.TotalOptIns = len(optIns)
	return stats, nil
}

func ComputeStats(feedback []models.Feedback) models.BusinessStats {
	var (
		stats models.BusinessStats
		sum   int
		rated int
	)
	for _, f := range feedback {
		if f.Type == models.TypeSuggestion {
			stats.TotalSuggestions++
			continue
		}
		stats.TotalFeedback++
		if f.Rating >= 1 && f.Rating <= 5 {
			stats.RatingCounts[f.Rating-1]++
			sum += f.Rating
			rated++
		}
	}
	if rated > 0 {
		stats.AverageRating = math.Round(float64(sum)/float64(rated)*100) / 100
	}
	return stats
}
