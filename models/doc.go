// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

JSON field names are camelCase to match the browser client.

# Request Types

Types for parsing incoming JSON, validated with go-playground/validator tags:

  - UpdateBusinessRequest: name, logoUrl, reviewPlatforms, notification settings
  - CreateLocationRequest / UpdateLocationRequest: location fields (update merges)
  - SubmitFeedbackRequest: businessId, rating, name, email, comment, type
  - SubmitOptInRequest: businessId, name, email, phone, rating
  - SignupRequest: email, password, name
  - CheckoutRequest: planId, billingPeriod

# Domain Types

  - Business: settings and review platform links
  - Location: a physical site of a business
  - Feedback: private feedback (rating 1-5) or suggestion (rating 0)
  - OptIn: newsletter/rewards consent
  - BusinessStats: dashboard aggregates
  - Plan: billing catalogue entry
  - User: identity-provider account

# Constants

Feedback types:

	TypeFeedback   = "feedback"
	TypeSuggestion = "suggestion"

Errors are always returned as ErrorResponse:

	{"error": "Business not found"}
*/
package models
