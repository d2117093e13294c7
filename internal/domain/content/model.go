package content

import (
	"errors"
	"strings"
	"time"
)

// Section tags for editable page text.
const (
	SectionHome  = "home"
	SectionAbout = "about"
)

// MaxSectionLength bounds the section column.
const MaxSectionLength = 50

// Domain errors
var (
	ErrEmptySection   = errors.New("section cannot be empty")
	ErrSectionTooLong = errors.New("section cannot exceed 50 characters")
	ErrEmptyBody      = errors.New("content cannot be empty")
)

// Block is the editable rich-text body of one page section.
// At most one Block exists per Section.
type Block struct {
	ID        string
	Section   string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks if the Block has valid data.
// PRE: Block struct is populated
// POST: Returns nil if valid, error otherwise
func (b *Block) Validate() error {
	if strings.TrimSpace(b.Section) == "" {
		return ErrEmptySection
	}
	if len(b.Section) > MaxSectionLength {
		return ErrSectionTooLong
	}
	if b.Body == "" {
		return ErrEmptyBody
	}
	return nil
}

// SetBody replaces the body and refreshes UpdatedAt.
// POST: Body == body, UpdatedAt == now
func (b *Block) SetBody(body string, now time.Time) {
	b.Body = body
	b.UpdatedAt = now
}

var defaultBodies = map[string]string{
	SectionHome: "We specialize in <span class='fw-bold text-success'>professional</span> " +
		"<span class='fw-bold text-primary'>furniture</span> <span class='fw-bold text-warning'>installation</span> " +
		"services for homes and offices, including <span class='fw-bold text-info'>modular furniture</span>, " +
		"<span class='fw-bold text-danger'>workstations</span>, <span class='fw-bold text-success'>kitchen units</span>, " +
		"and more. Our experienced technicians ensure <span class='fw-bold text-primary'>precise</span>, " +
		"<span class='fw-bold text-success'>safe</span>, and <span class='fw-bold text-warning'>fast</span> installations " +
		"using <span class='fw-bold text-info'>advanced tools</span>, helping you enjoy your space without hassle, " +
		"all at <span class='fw-bold text-dark'>affordable</span> prices.",
	SectionAbout: "At MTS Furnitech, we are dedicated to providing <span class='fw-bold text-success'>professional</span> " +
		"furniture installation services that transform your space efficiently and affordably. Our experienced team " +
		"specializes in both office and home furniture installations, ensuring every piece is assembled with precision " +
		"and care. We understand that your time is valuable, which is why we focus on " +
		"<span class='fw-bold text-primary'>fast</span>, reliable service without compromising on quality. " +
		"From modular workstations to custom kitchen units, we handle every installation with the expertise and " +
		"attention to detail that your furniture deserves.",
}

// DefaultBody returns the text a section starts with. Unknown sections start empty.
func DefaultBody(section string) string {
	return defaultBodies[section]
}

// NewDefault builds the Block created on first access to a section.
func NewDefault(id, section string, now time.Time) Block {
	return Block{
		ID:        id,
		Section:   section,
		Body:      DefaultBody(section),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
