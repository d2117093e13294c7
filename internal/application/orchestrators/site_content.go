package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"furnitech/internal/adapters/upload"
	"furnitech/internal/domain/content"
	"furnitech/internal/domain/settings"
)

// ContentStoreForUpdate defines the store interface needed by UpdateContent.
type ContentStoreForUpdate interface {
	Save(ctx context.Context, b content.Block) error
}

// UpdateContentInput carries a section edit.
type UpdateContentInput struct {
	Section string
	Body    string
}

// UpdateContentDeps holds dependencies for UpdateContent.
type UpdateContentDeps struct {
	ContentStore ContentStoreForUpdate
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteUpdateContent replaces a section's body, creating the block if needed.
// PRE: Section and Body non-empty
// POST: The section's block holds Body with a fresh updated_at; id and created_at of an existing block are kept
func ExecuteUpdateContent(ctx context.Context, input UpdateContentInput, deps UpdateContentDeps) (content.Block, error) {
	now := nowOr(deps.Now)
	b := content.Block{
		ID:        idOr(deps.GenerateID),
		Section:   strings.TrimSpace(input.Section),
		CreatedAt: now,
	}
	b.SetBody(input.Body, now)
	if err := b.Validate(); err != nil {
		return content.Block{}, err
	}

	if err := deps.ContentStore.Save(ctx, b); err != nil {
		return content.Block{}, fmt.Errorf("save content: %w", err)
	}
	slog.Info("content_event", "event", "content_updated", "section", b.Section)
	return b, nil
}

// SettingsStoreForUpdate defines the store interface needed by settings edits.
type SettingsStoreForUpdate interface {
	SettingsStoreForSingleton
	Save(ctx context.Context, s settings.Settings) error
}

// UpdateContactDeps holds dependencies for UpdateContact.
type UpdateContactDeps struct {
	SettingsStore SettingsStoreForUpdate
	Now           func() time.Time
}

// ExecuteUpdateContact applies the non-empty contact fields in one save.
// POST: Returns false and changes nothing when every field is empty
func ExecuteUpdateContact(ctx context.Context, input settings.ContactUpdate, deps UpdateContactDeps) (bool, error) {
	if input.IsEmpty() {
		return false, nil
	}

	st, err := GetOrCreateSettings(ctx, SettingsDeps{SettingsStore: deps.SettingsStore, Now: deps.Now})
	if err != nil {
		return false, err
	}
	st.ApplyContact(input, nowOr(deps.Now))
	if err := deps.SettingsStore.Save(ctx, st); err != nil {
		return false, fmt.Errorf("save settings: %w", err)
	}
	slog.Info("content_event", "event", "contact_updated")
	return true, nil
}

// UpdateLogoInput carries an uploaded logo.
type UpdateLogoInput struct {
	Filename string
	File     io.Reader
}

// UpdateLogoDeps holds dependencies for UpdateLogo.
type UpdateLogoDeps struct {
	SettingsStore SettingsStoreForUpdate
	Images        ImageSaver
	Now           func() time.Time
}

// ExecuteUpdateLogo stores the upload and points the settings at it.
// POST: On upload error the settings are untouched and the upload error is returned;
// upload.ErrNoFile means no file was chosen
func ExecuteUpdateLogo(ctx context.Context, input UpdateLogoInput, deps UpdateLogoDeps) (string, error) {
	path, err := deps.Images.Save(input.Filename, input.File)
	if err != nil {
		if !errors.Is(err, upload.ErrNoFile) {
			slog.Warn("upload_rejected", "target", "logo", "filename", input.Filename, "error", err)
		}
		return "", err
	}

	st, err := GetOrCreateSettings(ctx, SettingsDeps{SettingsStore: deps.SettingsStore, Now: deps.Now})
	if err != nil {
		return "", err
	}
	st.SetLogo(path, nowOr(deps.Now))
	if err := deps.SettingsStore.Save(ctx, st); err != nil {
		return "", fmt.Errorf("save settings: %w", err)
	}
	slog.Info("content_event", "event", "logo_updated", "path", path)
	return path, nil
}
