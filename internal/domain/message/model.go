package message

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for visitor-supplied fields.
const (
	MaxNameLength            = 100
	MaxPhoneLength           = 20
	MaxServiceInterestLength = 100
)

// Domain errors
var (
	ErrMissingField           = errors.New("name, phone, service interest and message are all required")
	ErrNameTooLong            = errors.New("name cannot exceed 100 characters")
	ErrPhoneTooLong           = errors.New("phone cannot exceed 20 characters")
	ErrServiceInterestTooLong = errors.New("service interest cannot exceed 100 characters")
)

// Message is a contact-form submission from a site visitor.
type Message struct {
	ID              string
	Name            string
	Phone           string
	ServiceInterest string
	Body            string
	Read            bool
	CreatedAt       time.Time
}

// Validate checks if the Message has valid data.
// PRE: Message struct is populated
// POST: Returns nil if valid, error otherwise
func (m *Message) Validate() error {
	if strings.TrimSpace(m.Name) == "" ||
		strings.TrimSpace(m.Phone) == "" ||
		strings.TrimSpace(m.ServiceInterest) == "" ||
		strings.TrimSpace(m.Body) == "" {
		return ErrMissingField
	}
	if len(m.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if len(m.Phone) > MaxPhoneLength {
		return ErrPhoneTooLong
	}
	if len(m.ServiceInterest) > MaxServiceInterestLength {
		return ErrServiceInterestTooLong
	}
	if m.CreatedAt.IsZero() {
		return errors.New("created_at must be set")
	}
	return nil
}

// MarkRead flags the message as read.
// POST: Read is true; calling again has no further effect
func (m *Message) MarkRead() {
	m.Read = true
}
