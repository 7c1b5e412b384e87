// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Feedback type constants
const (
	TypeFeedback   = "feedback"
	TypeSuggestion = "suggestion"
)

// DemoBusinessID is the single tenant the public pages use.
const DemoBusinessID = "demo-business"

// Stripe webhook event types
const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

// Request types

// UpdateBusinessRequest replaces the settings; EmailNotifications is on when omitted.
type UpdateBusinessRequest struct {
	Name               string           `json:"name" validate:"required"`
	LogoURL            *string          `json:"logoUrl"`
	ReviewPlatforms    []ReviewPlatform `json:"reviewPlatforms" validate:"dive"`
	EmailNotifications *bool            `json:"emailNotifications"`
	NotificationEmail  string           `json:"notificationEmail" validate:"omitempty,email"`
	AutoReplyEnabled   bool             `json:"autoReplyEnabled"`
	AutoReplyMessage   string           `json:"autoReplyMessage"`
}

type CreateLocationRequest struct {
	Name            string           `json:"name" validate:"required"`
	Address         string           `json:"address"`
	Phone           string           `json:"phone"`
	Email           string           `json:"email" validate:"omitempty,email"`
	ReviewPlatforms []ReviewPlatform `json:"reviewPlatforms" validate:"dive"`
}

// UpdateLocationRequest merges into the stored location: nil fields are
// left unchanged.
type UpdateLocationRequest struct {
	Name            *string          `json:"name" validate:"omitempty,min=1"`
	Address         *string          `json:"address"`
	Phone           *string          `json:"phone"`
	Email           *string          `json:"email" validate:"omitempty,email"`
	ReviewPlatforms []ReviewPlatform `json:"reviewPlatforms" validate:"omitempty,dive"`
}

// Rating is a pointer so an absent rating can be told apart from 0.
type SubmitFeedbackRequest struct {
	BusinessID string `json:"businessId" validate:"required"`
	Rating     *int   `json:"rating" validate:"omitempty,min=0,max=5"`
	Name       string `json:"name"`
	Email      string `json:"email" validate:"omitempty,email"`
	Comment    string `json:"comment" validate:"required"`
	Type       string `json:"type" validate:"required,oneof=feedback suggestion"`
}

type SubmitOptInRequest struct {
	BusinessID string `json:"businessId" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone"`
	Rating     *int   `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

type CheckoutRequest struct {
	PlanID        string `json:"planId" validate:"required,oneof=starter pro business"`
	BillingPeriod string `json:"billingPeriod" validate:"required,oneof=monthly yearly"`
}

// FeedbackFilter narrows a feedback listing. Zero values match everything.
type FeedbackFilter struct {
	Type   string
	Rating *int
	Query  string
}

// Response types

type HealthResponse struct {
	Status string `json:"status"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type OptInResponse struct {
	Success bool  `json:"success"`
	OptIn   OptIn `json:"optIn"`
}

type SignupResponse struct {
	User User `json:"user"`
}

type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type WebhookResponse struct {
	Received bool `json:"received"`
}

// Domain types

type ReviewPlatform struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
	Icon string `json:"icon,omitempty"`
}

type Business struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	LogoURL            *string          `json:"logoUrl"`
	ReviewPlatforms    []ReviewPlatform `json:"reviewPlatforms"`
	EmailNotifications bool             `json:"emailNotifications"`
	NotificationEmail  string           `json:"notificationEmail,omitempty"`
	AutoReplyEnabled   bool             `json:"autoReplyEnabled"`
	AutoReplyMessage   string           `json:"autoReplyMessage"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          *time.Time       `json:"updatedAt,omitempty"`
}

type Location struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Address         string           `json:"address"`
	Phone           string           `json:"phone,omitempty"`
	Email           string           `json:"email,omitempty"`
	ReviewPlatforms []ReviewPlatform `json:"reviewPlatforms"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       *time.Time       `json:"updatedAt,omitempty"`
}

// Feedback is immutable once stored. Suggestions carry Rating 0.
type Feedback struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"businessId"`
	Rating     int       `json:"rating"`
	Name       *string   `json:"name"`
	Email      *string   `json:"email"`
	Comment    string    `json:"comment"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"createdAt"`
}

type OptIn struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"businessId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Rating     *int      `json:"rating,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BusinessStats backs the dashboard overview. RatingCounts[i] counts
// feedback with rating i+1.
type BusinessStats struct {
	BusinessID       string  `json:"businessId"`
	TotalFeedback    int     `json:"totalFeedback"`
	TotalSuggestions int     `json:"totalSuggestions"`
	AverageRating    float64 `json:"averageRating"`
	RatingCounts     [5]int  `json:"ratingCounts"`
	TotalOptIns      int     `json:"totalOptIns"`
}

// Plan is display data for the billing panel. Nil Price/Locations mean
// "custom" and "unlimited".
type Plan struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Price     *int     `json:"price"`
	Locations *int     `json:"locations"`
	Features  []string `json:"features"`
}

// User is an identity-provider account.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object map[string]any `json:"object"`
	} `json:"data"`
}

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}
