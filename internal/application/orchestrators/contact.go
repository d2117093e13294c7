package orchestrators

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"furnitech/internal/adapters/email"
	"furnitech/internal/domain/message"
)

// MessageStoreForSubmit defines the store interface needed by SubmitContact.
type MessageStoreForSubmit interface {
	Save(ctx context.Context, m message.Message) error
}

// SubmitContactInput carries the public contact form.
type SubmitContactInput struct {
	Name            string
	Phone           string
	ServiceInterest string
	Message         string
}

// SubmitContactDeps holds dependencies for SubmitContact.
// Sender and SettingsStore are optional; without them no notification is sent.
// When Outbox is set a failed notification is queued for retry.
type SubmitContactDeps struct {
	MessageStore  MessageStoreForSubmit
	SettingsStore SettingsStoreForSingleton
	Sender        email.Sender
	Outbox        OutboxStoreForEnqueue
	GenerateID    func() string
	Now           func() time.Time
}

// ExecuteSubmitContact records a visitor enquiry and notifies the business inbox.
// PRE: all four fields non-blank after trimming
// POST: One unread message persisted; notification failures are logged, never returned
func ExecuteSubmitContact(ctx context.Context, input SubmitContactInput, deps SubmitContactDeps) (message.Message, error) {
	m := message.Message{
		ID:              idOr(deps.GenerateID),
		Name:            strings.TrimSpace(input.Name),
		Phone:           strings.TrimSpace(input.Phone),
		ServiceInterest: strings.TrimSpace(input.ServiceInterest),
		Body:            strings.TrimSpace(input.Message),
		CreatedAt:       nowOr(deps.Now),
	}
	if err := m.Validate(); err != nil {
		return message.Message{}, err
	}

	if err := deps.MessageStore.Save(ctx, m); err != nil {
		return message.Message{}, fmt.Errorf("save message: %w", err)
	}
	slog.Info("contact_event", "event", "message_received", "message_id", m.ID, "service_interest", m.ServiceInterest)

	notifyContact(ctx, m, deps)
	return m, nil
}

func notifyContact(ctx context.Context, m message.Message, deps SubmitContactDeps) {
	if deps.Sender == nil || deps.SettingsStore == nil {
		return
	}
	st, err := GetOrCreateSettings(ctx, SettingsDeps{SettingsStore: deps.SettingsStore, Now: deps.Now})
	if err != nil {
		slog.Warn("contact_notify_failed", "message_id", m.ID, "error", err)
		return
	}
	if st.Email == "" {
		return
	}

	req := email.SendRequest{
		To:       []string{st.Email},
		Subject:  fmt.Sprintf("New enquiry from %s: %s", m.Name, m.ServiceInterest),
		HTML:     contactHTML(m),
		Text:     contactText(m),
		Category: "contact",
	}
	if _, err := deps.Sender.Send(ctx, req); err != nil {
		slog.Warn("contact_notify_failed", "message_id", m.ID, "error", err)
		if deps.Outbox == nil {
			return
		}
		if err := enqueueNotification(ctx, deps.Outbox, req, idOr(deps.GenerateID), nowOr(deps.Now)); err != nil {
			slog.Error("contact_notify_enqueue_failed", "message_id", m.ID, "error", err)
		}
	}
}

func contactText(m message.Message) string {
	return fmt.Sprintf("Name: %s\nPhone: %s\nService: %s\n\n%s\n", m.Name, m.Phone, m.ServiceInterest, m.Body)
}

func contactHTML(m message.Message) string {
	var b strings.Builder
	b.WriteString("<p><strong>Name:</strong> ")
	b.WriteString(html.EscapeString(m.Name))
	b.WriteString("<br><strong>Phone:</strong> ")
	b.WriteString(html.EscapeString(m.Phone))
	b.WriteString("<br><strong>Service:</strong> ")
	b.WriteString(html.EscapeString(m.ServiceInterest))
	b.WriteString("</p><p>")
	b.WriteString(strings.ReplaceAll(html.EscapeString(m.Body), "\n", "<br>"))
	b.WriteString("</p>")
	return b.String()
}
