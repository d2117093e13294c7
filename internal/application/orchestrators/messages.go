package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"furnitech/internal/domain/message"
)

// MessageStoreForOrchestrator defines the store interface needed by inbox commands.
type MessageStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (message.Message, error)
	Save(ctx context.Context, m message.Message) error
	Delete(ctx context.Context, id string) error
}

// MessageDeps holds dependencies for inbox commands.
type MessageDeps struct {
	MessageStore MessageStoreForOrchestrator
}

// ErrMessageNotFound is returned for unknown message ids.
var ErrMessageNotFound = errors.New("message not found")

// ExecuteMarkMessageRead flags a message as read. Repeating it is harmless.
// PRE: id names an existing message
// POST: The message is read
func ExecuteMarkMessageRead(ctx context.Context, id string, deps MessageDeps) error {
	m, err := getMessage(ctx, deps.MessageStore, id)
	if err != nil {
		return err
	}
	if m.Read {
		return nil
	}
	m.MarkRead()
	if err := deps.MessageStore.Save(ctx, m); err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	return nil
}

// ExecuteDeleteMessage removes a message permanently.
// PRE: id names an existing message
// POST: The message is gone
func ExecuteDeleteMessage(ctx context.Context, id string, deps MessageDeps) error {
	if _, err := getMessage(ctx, deps.MessageStore, id); err != nil {
		return err
	}
	if err := deps.MessageStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	slog.Info("contact_event", "event", "message_deleted", "message_id", id)
	return nil
}

func getMessage(ctx context.Context, store MessageStoreForOrchestrator, id string) (message.Message, error) {
	if id == "" {
		return message.Message{}, ErrMessageNotFound
	}
	m, err := store.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return message.Message{}, ErrMessageNotFound
	}
	if err != nil {
		return message.Message{}, fmt.Errorf("load message: %w", err)
	}
	return m, nil
}
