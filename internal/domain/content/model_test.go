package content_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"furnitech/internal/domain/content"
)

// TestBlock_Validate tests validation of Block.
func TestBlock_Validate(t *testing.T) {
	tests := []struct {
		name    string
		block   content.Block
		wantErr error
	}{
		{name: "valid", block: content.Block{Section: content.SectionHome, Body: "Hello"}},
		{name: "empty section", block: content.Block{Body: "Hello"}, wantErr: content.ErrEmptySection},
		{name: "section too long", block: content.Block{Section: strings.Repeat("x", 51), Body: "Hello"}, wantErr: content.ErrSectionTooLong},
		{name: "empty body", block: content.Block{Section: content.SectionAbout}, wantErr: content.ErrEmptyBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.block.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestDefaultBody verifies each known section has its own default text.
func TestDefaultBody(t *testing.T) {
	home := content.DefaultBody(content.SectionHome)
	about := content.DefaultBody(content.SectionAbout)

	if !strings.HasPrefix(home, "We specialize in") {
		t.Errorf("home default = %q", home)
	}
	if !strings.HasPrefix(about, "At MTS Furnitech") {
		t.Errorf("about default = %q", about)
	}
	if got := content.DefaultBody("faq"); got != "" {
		t.Errorf("unknown section default = %q, want empty", got)
	}
}

// TestBlock_Timestamps verifies NewDefault and SetBody track timestamps.
func TestBlock_Timestamps(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b := content.NewDefault("b1", content.SectionHome, created)
	if !b.CreatedAt.Equal(created) || !b.UpdatedAt.Equal(created) {
		t.Fatalf("timestamps = %v/%v, want %v", b.CreatedAt, b.UpdatedAt, created)
	}

	later := created.Add(time.Hour)
	b.SetBody("New text", later)
	if b.Body != "New text" {
		t.Errorf("Body = %q", b.Body)
	}
	if !b.UpdatedAt.Equal(later) {
		t.Errorf("UpdatedAt = %v, want %v", b.UpdatedAt, later)
	}
	if !b.CreatedAt.Equal(created) {
		t.Error("CreatedAt must not change on SetBody")
	}
}
