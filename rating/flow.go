// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rating

import (
	"context"
	"log/slog"
	"strings"

	"github.com/danielhkuo/feedback-page/models"
)

// API is the part of the Feedback Page client a rating flow needs.
// *client.Client satisfies it.
type API interface {
	InitDemo(ctx context.Context) error
	GetBusiness(ctx context.Context, id string) (models.Business, error)
	SubmitFeedback(ctx context.Context, req models.SubmitFeedbackRequest) (models.Feedback, error)
	SubmitOptIn(ctx context.Context, req models.SubmitOptInRequest) (models.OptIn, error)
}

// Outcome is what a form shows after a submit. On failure the caller keeps
// the form data so the customer can retry.
type Outcome struct {
	OK      bool
	Message string
	Err     error
}

type FeedbackForm struct {
	Name    string
	Email   string
	Comment string
}

type OptInForm struct {
	Name  string
	Email string
	Phone string
}

// Inline messages shown to the customer.
const (
	MsgCommentRequired  = "Please enter a comment."
	MsgRatingRequired   = "Please select a rating."
	MsgFeedbackThanks   = "Thank you for your feedback!"
	MsgFeedbackFailed   = "Failed to submit feedback. Please try again."
	MsgSuggestionThanks = "Thank you for your suggestion!"
	MsgSuggestionFailed = "Failed to submit suggestion. Please try again."
	MsgAdditionalThanks = "Thank you for your additional feedback!"
	MsgAdditionalFailed = "Failed to submit comment. Please try again."
	MsgOptInRequired    = "Name and email are required."
	MsgOptInThanks      = "Thanks for signing up!"
	MsgOptInFailed      = "Failed to sign up. Please try again."
)

// Flow drives one customer through the rating page and the page it routes
// to, on top of a Session.
type Flow struct {
	api     API
	session *Session
}

func NewFlow(api API, businessID string) *Flow {
	return &Flow{api: api, session: NewSession(businessID)}
}

func (f *Flow) Session() *Session { return f.session }

// Bootstrap seeds demo data through the API, bounded by the session's
// bootstrap timeout.
func (f *Flow) Bootstrap(ctx context.Context) BootstrapResult {
	res := f.session.Bootstrap(ctx, f.api.InitDemo)
	if res != BootstrapOK {
		slog.Warn("demo bootstrap did not complete", "business_id", f.session.BusinessID, "result", res.String())
	}
	return res
}

// SubmitFeedback posts a private feedback with the session's rating.
func (f *Flow) SubmitFeedback(ctx context.Context, form FeedbackForm) Outcome {
	r := f.session.Rating()
	if r == 0 {
		return Outcome{Message: MsgRatingRequired, Err: ErrNoRating}
	}
	return f.submit(ctx, models.TypeFeedback, r, form, MsgFeedbackThanks, MsgFeedbackFailed)
}

// SubmitSuggestion posts a suggestion. Suggestions carry no rating.
func (f *Flow) SubmitSuggestion(ctx context.Context, form FeedbackForm) Outcome {
	return f.submit(ctx, models.TypeSuggestion, 0, form, MsgSuggestionThanks, MsgSuggestionFailed)
}

// SubmitAdditionalComment is the optional comment box on the thank-you page.
// It is stored as feedback with the high rating that routed the customer
// there, without contact details.
func (f *Flow) SubmitAdditionalComment(ctx context.Context, comment string) Outcome {
	r := f.session.Rating()
	if r == 0 {
		return Outcome{Message: MsgRatingRequired, Err: ErrNoRating}
	}
	return f.submit(ctx, models.TypeFeedback, r, FeedbackForm{Comment: comment}, MsgAdditionalThanks, MsgAdditionalFailed)
}

func (f *Flow) submit(ctx context.Context, typ string, r int, form FeedbackForm, okMsg, failMsg string) Outcome {
	if strings.TrimSpace(form.Comment) == "" {
		return Outcome{Message: MsgCommentRequired}
	}
	req := models.SubmitFeedbackRequest{
		BusinessID: f.session.BusinessID,
		Rating:     &r,
		Name:       strings.TrimSpace(form.Name),
		Email:      strings.TrimSpace(form.Email),
		Comment:    form.Comment,
		Type:       typ,
	}
	if _, err := f.api.SubmitFeedback(ctx, req); err != nil {
		slog.Error("Failed to submit feedback", "business_id", req.BusinessID, "type", typ, "error", err)
		return Outcome{Message: failMsg, Err: err}
	}
	return Outcome{OK: true, Message: okMsg}
}

// ReviewLinks returns the business's public review platforms. Any failure
// yields an empty list; the thank-you page still renders.
func (f *Flow) ReviewLinks(ctx context.Context) []models.ReviewPlatform {
	b, err := f.api.GetBusiness(ctx, f.session.BusinessID)
	if err != nil {
		slog.Warn("Failed to load review platforms", "business_id", f.session.BusinessID, "error", err)
		return []models.ReviewPlatform{}
	}
	if b.ReviewPlatforms == nil {
		return []models.ReviewPlatform{}
	}
	return b.ReviewPlatforms
}

// SubmitOptIn signs the customer up for updates, attaching the session's
// rating when one was selected.
func (f *Flow) SubmitOptIn(ctx context.Context, form OptInForm) Outcome {
	name, email := strings.TrimSpace(form.Name), strings.TrimSpace(form.Email)
	if name == "" || email == "" {
		return Outcome{Message: MsgOptInRequired}
	}
	req := models.SubmitOptInRequest{
		BusinessID: f.session.BusinessID,
		Name:       name,
		Email:      email,
		Phone:      strings.TrimSpace(form.Phone),
	}
	if r := f.session.Rating(); r != 0 {
		req.Rating = &r
	}
	if _, err := f.api.SubmitOptIn(ctx, req); err != nil {
		slog.Error("Failed to submit opt-in", "business_id", req.BusinessID, "error", err)
		return Outcome{Message: MsgOptInFailed, Err: err}
	}
	return Outcome{OK: true, Message: MsgOptInThanks}
}
