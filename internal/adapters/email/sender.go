// Package email delivers outbound notifications through an external provider.
package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ErrNoRecipients is returned when a request has nobody to send to.
var ErrNoRecipients = errors.New("email has no recipients")

// SendRequest is one outbound email.
type SendRequest struct {
	To      []string
	From    string // empty uses the sender's default
	Subject string
	HTML    string
	Text    string // plain-text alternative
	ReplyTo string
	// Category tags the message at the provider, e.g. "contact".
	Category string
}

// SendResult identifies an accepted email.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers a SendRequest.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}

// NewSender returns a Resend-backed sender when apiKey is set and a
// logging no-op otherwise.
func NewSender(apiKey, from string) Sender {
	if apiKey == "" {
		return NoopSender{}
	}
	return NewResendSender(apiKey, from)
}

// NoopSender accepts every request and only logs it.
type NoopSender struct{}

// Send logs the subject and recipient count.
func (NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	if len(req.To) == 0 {
		return SendResult{}, ErrNoRecipients
	}
	id := "noop-" + uuid.NewString()
	slog.Info("email_skipped", "message_id", id, "recipients", len(req.To), "subject", req.Subject)
	return SendResult{MessageID: id, SentAt: time.Now()}, nil
}
