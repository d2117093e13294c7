package projections

import (
	"context"
	"fmt"

	"furnitech/internal/domain/message"
)

// MessageLister defines the message store interface needed by the inbox projection.
type MessageLister interface {
	List(ctx context.Context) ([]message.Message, error)
}

// GetMessagesDeps holds dependencies for the inbox projection.
type GetMessagesDeps struct {
	MessageStore MessageLister
}

// MessagesResult carries the inbox.
type MessagesResult struct {
	Messages []message.Message
	Unread   int
}

// QueryGetMessages returns every contact message, newest first.
func QueryGetMessages(ctx context.Context, deps GetMessagesDeps) (MessagesResult, error) {
	list, err := deps.MessageStore.List(ctx)
	if err != nil {
		return MessagesResult{}, fmt.Errorf("list messages: %w", err)
	}
	res := MessagesResult{Messages: list}
	for _, m := range list {
		if !m.Read {
			res.Unread++
		}
	}
	return res, nil
}
