package orchestrators

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"furnitech/internal/adapters/email"
	"furnitech/internal/domain/outbox"
)

// Retry tuning for queued notifications.
const (
	DefaultRetryBaseDelay = 30 * time.Second
	DefaultRetryMaxDelay  = time.Hour
	DefaultRetryBatchSize = 10
)

// OutboxStoreForEnqueue defines the store interface needed to queue a notification.
type OutboxStoreForEnqueue interface {
	Save(ctx context.Context, e outbox.Entry) error
}

// OutboxStoreForRetry defines the store interface needed by RetryNotifications.
type OutboxStoreForRetry interface {
	Save(ctx context.Context, e outbox.Entry) error
	ListPending(ctx context.Context, limit int) ([]outbox.Entry, error)
}

// notificationPayload is the stored form of an email.SendRequest.
type notificationPayload struct {
	To       []string `json:"to"`
	Subject  string   `json:"subject"`
	HTML     string   `json:"html"`
	Text     string   `json:"text"`
	ReplyTo  string   `json:"reply_to,omitempty"`
	Category string   `json:"category,omitempty"`
}

// enqueueNotification stores req for a later delivery attempt.
func enqueueNotification(ctx context.Context, store OutboxStoreForEnqueue, req email.SendRequest, id string, now time.Time) error {
	payload, err := json.Marshal(notificationPayload{
		To:       req.To,
		Subject:  req.Subject,
		HTML:     req.HTML,
		Text:     req.Text,
		ReplyTo:  req.ReplyTo,
		Category: req.Category,
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	e := outbox.New(id, outbox.ActionContactNotify, string(payload), now)
	if err := e.Validate(); err != nil {
		return err
	}
	return store.Save(ctx, e)
}

// RetryNotificationsDeps holds dependencies for RetryNotifications.
// Zero delays and batch size fall back to the Default* values.
type RetryNotificationsDeps struct {
	OutboxStore OutboxStoreForRetry
	Sender      email.Sender
	Now         func() time.Time
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	BatchSize   int
}

// RetryNotificationsResult counts what one pass did.
type RetryNotificationsResult struct {
	Attempted int
	Delivered int
	GaveUp    int
}

// ExecuteRetryNotifications redelivers queued notifications whose backoff has elapsed.
// PRE: deps.OutboxStore and deps.Sender are set
// POST: each due entry is attempted once and saved as done, retrying or failed
func ExecuteRetryNotifications(ctx context.Context, deps RetryNotificationsDeps) (RetryNotificationsResult, error) {
	var res RetryNotificationsResult
	base, max, batch := deps.BaseDelay, deps.MaxDelay, deps.BatchSize
	if base <= 0 {
		base = DefaultRetryBaseDelay
	}
	if max <= 0 {
		max = DefaultRetryMaxDelay
	}
	if batch <= 0 {
		batch = DefaultRetryBatchSize
	}

	entries, err := deps.OutboxStore.ListPending(ctx, batch)
	if err != nil {
		return res, fmt.Errorf("list pending notifications: %w", err)
	}

	now := nowOr(deps.Now)
	for _, entry := range entries {
		if !entry.CanRetry() {
			// Limit lowered after the entry was queued.
			entry.MarkFailed(errors.New("max attempts reached"))
		} else if now.Before(entry.DueAt(base, max)) {
			continue
		} else {
			res.Attempted++
			entry.MarkAttempt(now)
			if err := deliver(ctx, deps.Sender, entry); err != nil {
				entry.MarkFailed(err)
				slog.Warn("notify_retry_failed", "entry_id", entry.ID, "attempt", entry.Attempts, "error", err)
			} else {
				entry.MarkSuccess()
				res.Delivered++
				slog.Info("notify_retry_succeeded", "entry_id", entry.ID, "attempt", entry.Attempts)
			}
		}
		if entry.Status == outbox.StatusFailed {
			res.GaveUp++
			slog.Error("notify_abandoned", "entry_id", entry.ID, "attempts", entry.Attempts, "error", entry.ErrorMessage)
		}
		if err := deps.OutboxStore.Save(ctx, entry); err != nil {
			return res, fmt.Errorf("save notification %s: %w", entry.ID, err)
		}
	}
	return res, nil
}

func deliver(ctx context.Context, sender email.Sender, entry outbox.Entry) error {
	if entry.ActionType != outbox.ActionContactNotify {
		return fmt.Errorf("unknown action type: %s", entry.ActionType)
	}
	var p notificationPayload
	if err := json.Unmarshal([]byte(entry.Payload), &p); err != nil {
		return fmt.Errorf("decode notification: %w", err)
	}
	_, err := sender.Send(ctx, email.SendRequest{
		To:       p.To,
		Subject:  p.Subject,
		HTML:     p.HTML,
		Text:     p.Text,
		ReplyTo:  p.ReplyTo,
		Category: p.Category,
	})
	return err
}

// StartNotificationRetry runs ExecuteRetryNotifications every interval until ctx is done.
func StartNotificationRetry(ctx context.Context, deps RetryNotificationsDeps, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				slog.Info("notify_retry_stopped")
				return
			case <-ticker.C:
				runCtx, cancel := context.WithTimeout(ctx, time.Minute)
				if _, err := ExecuteRetryNotifications(runCtx, deps); err != nil {
					slog.Error("notify_retry_pass_failed", "error", err)
				}
				cancel()
			}
		}
	}()
}
