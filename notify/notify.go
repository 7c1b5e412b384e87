// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/danielhkuo/feedback-page/models"
)

// Notifier is told about every stored feedback or suggestion.
type Notifier interface {
	FeedbackReceived(ctx context.Context, business models.Business, fb models.Feedback) error
}

// Nop drops every notification. Used when SMTP is not configured.
type Nop struct{}

func (Nop) FeedbackReceived(context.Context, models.Business, models.Feedback) error { return nil }

// SMTPConfig is the outbound mail server.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SendFunc delivers a batch of messages over one connection.
type SendFunc func(msgs ...*gomail.Message) error

// Mailer sends owner notifications and customer auto-replies over SMTP.
type Mailer struct {
	from string
	send SendFunc
}

func NewMailer(cfg SMTPConfig) *Mailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &Mailer{from: cfg.From, send: dialer.DialAndSend}
}

// NewMailerWithSender swaps the SMTP transport, e.g. for tests.
func NewMailerWithSender(from string, send SendFunc) *Mailer {
	return &Mailer{from: from, send: send}
}

func (m *Mailer) FeedbackReceived(ctx context.Context, business models.Business, fb models.Feedback) error {
	msgs := m.Messages(business, fb)
	if len(msgs) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.send(msgs...); err != nil {
		return fmt.Errorf("send %d message(s): %w", len(msgs), err)
	}
	return nil
}

// Messages builds what the business settings ask for: an owner notification
// when email notifications are on and an address is set, and an auto-reply
// when enabled and the customer left an email.
func (m *Mailer) Messages(business models.Business, fb models.Feedback) []*gomail.Message {
	var msgs []*gomail.Message

	if business.EmailNotifications && business.NotificationEmail != "" {
		msgs = append(msgs, m.ownerMessage(business, fb))
	}

	if business.AutoReplyEnabled && strings.TrimSpace(business.AutoReplyMessage) != "" &&
		fb.Email != nil && *fb.Email != "" {
		msg := gomail.NewMessage()
		msg.SetHeader("From", m.from)
		msg.SetHeader("To", *fb.Email)
		msg.SetHeader("Subject", "Thanks for your "+fb.Type+" - "+business.Name)
		msg.SetBody("text/plain", business.AutoReplyMessage)
		msgs = append(msgs, msg)
	}

	return msgs
}

func (m *Mailer) ownerMessage(business models.Business, fb models.Feedback) *gomail.Message {
	var body strings.Builder
	if fb.Type == models.TypeSuggestion {
		fmt.Fprintf(&body, "New suggestion for %s\n\n", business.Name)
	} else {
		fmt.Fprintf(&body, "New feedback for %s (rating %d/5)\n\n", business.Name, fb.Rating)
	}
	fmt.Fprintf(&body, "%s\n\n", fb.Comment)
	if fb.Name != nil {
		fmt.Fprintf(&body, "Name: %s\n", *fb.Name)
	}
	if fb.Email != nil {
		fmt.Fprintf(&body, "Email: %s\n", *fb.Email)
	}
	fmt.Fprintf(&body, "Received: %s\n", fb.CreatedAt.Format("2006-01-02 15:04 MST"))

	subject := "New " + fb.Type
	if fb.Type == models.TypeFeedback {
		subject = fmt.Sprintf("New feedback (%d/5)", fb.Rating)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", business.NotificationEmail)
	msg.SetHeader("Subject", subject+" - "+business.Name)
	if fb.Email != nil {
		msg.SetHeader("Reply-To", *fb.Email)
	}
	msg.SetBody("text/plain", body.String())
	return msg
}
