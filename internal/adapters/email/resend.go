package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
)

// DefaultSendTimeout bounds one provider call.
const DefaultSendTimeout = 10 * time.Second

// ResendSender sends emails through the Resend API.
type ResendSender struct {
	client  *resend.Client
	from    string
	timeout time.Duration
}

// NewResendSender creates a sender for apiKey whose default From is from.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client:  resend.NewClient(apiKey),
		from:    from,
		timeout: DefaultSendTimeout,
	}
}

// Send submits req to Resend.
// PRE: req has at least one recipient
// POST: returns the provider message id once Resend accepts the email
func (s *ResendSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	if len(req.To) == 0 {
		return SendResult{}, ErrNoRecipients
	}
	params := s.params(req)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		slog.Error("email_send_failed", "provider", "resend", "recipients", len(req.To), "error", err)
		return SendResult{}, fmt.Errorf("resend: %w", err)
	}

	slog.Info("email_sent", "provider", "resend", "message_id", sent.Id, "recipients", len(req.To))
	return SendResult{MessageID: sent.Id, SentAt: time.Now()}, nil
}

func (s *ResendSender) params(req SendRequest) *resend.SendEmailRequest {
	from := req.From
	if from == "" {
		from = s.from
	}
	p := &resend.SendEmailRequest{
		From:    from,
		To:      req.To,
		Subject: req.Subject,
		Html:    req.HTML,
		Text:    req.Text,
		ReplyTo: req.ReplyTo,
	}
	if req.Category != "" {
		p.Tags = []resend.Tag{{Name: "category", Value: req.Category}}
	}
	return p
}
