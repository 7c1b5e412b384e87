// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Feedback Page API.

# Handler Types

Each handler is a struct over the entity store (or another collaborator):

  - BusinessHandler: business settings and dashboard stats
  - LocationHandler: location CRUD
  - FeedbackHandler: feedback/suggestion intake, listing and CSV export
  - OptInHandler: newsletter/rewards opt-ins
  - DemoHandler: demo data seeding
  - AccountHandler: owner signup through the identity provider
  - BillingHandler: plan catalogue and stubbed checkout/webhook

	feedbackHandler := handlers.NewFeedbackHandler(st, notifier)

# Validation

Request bodies are decoded into models request types and checked with
go-playground/validator. Messages name the JSON field:

	{"error": "email must be a valid email address"}

Feedback and signup keep their fixed combined messages for missing fields:

	Business ID, comment, and type are required
	Rating is required for feedback
	Email, password, and name are required

# Feedback Filters

GET /business/{id}/feedback and its /export variant accept:

	?type=feedback|suggestion|all
	?rating=0..5
	?q=text      case-insensitive match on comment, name, email

The export writes CSV with columns Date, Rating, Name, Email, Comment, Type.
*/
package handlers
