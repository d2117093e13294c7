package message_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"furnitech/internal/domain/message"
)

func validMessage() message.Message {
	return message.Message{
		ID:              "1",
		Name:            "Asha",
		Phone:           "+91 98200 00000",
		ServiceInterest: "Modular Kitchen Installation",
		Body:            "Please call me back.",
		CreatedAt:       time.Now(),
	}
}

// TestMessage_Validate tests validation of Message.
func TestMessage_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m *message.Message)
		wantErr error
	}{
		{name: "valid message", mutate: func(m *message.Message) {}},
		{name: "empty name", mutate: func(m *message.Message) { m.Name = "" }, wantErr: message.ErrMissingField},
		{name: "empty phone", mutate: func(m *message.Message) { m.Phone = "" }, wantErr: message.ErrMissingField},
		{name: "blank service interest", mutate: func(m *message.Message) { m.ServiceInterest = "  " }, wantErr: message.ErrMissingField},
		{name: "empty body", mutate: func(m *message.Message) { m.Body = "" }, wantErr: message.ErrMissingField},
		{name: "name too long", mutate: func(m *message.Message) { m.Name = strings.Repeat("n", 101) }, wantErr: message.ErrNameTooLong},
		{name: "phone too long", mutate: func(m *message.Message) { m.Phone = strings.Repeat("9", 21) }, wantErr: message.ErrPhoneTooLong},
		{name: "service interest too long", mutate: func(m *message.Message) { m.ServiceInterest = strings.Repeat("s", 101) }, wantErr: message.ErrServiceInterestTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMessage()
			tt.mutate(&m)
			err := m.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("zero created_at", func(t *testing.T) {
		m := validMessage()
		m.CreatedAt = time.Time{}
		if err := m.Validate(); err == nil {
			t.Error("expected error for zero created_at")
		}
	})
}

// TestMessage_MarkRead tests the read flag transitions.
func TestMessage_MarkRead(t *testing.T) {
	m := validMessage()
	if m.Read {
		t.Fatal("new message should be unread")
	}
	m.MarkRead()
	if !m.Read {
		t.Error("message should be read after MarkRead")
	}
	m.MarkRead()
	if !m.Read {
		t.Error("MarkRead should be idempotent")
	}
}
