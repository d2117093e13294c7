package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"furnitech/internal/domain/content"
	"furnitech/internal/domain/settings"
)

// SettingsStoreForSingleton defines the store interface needed to read settings.
type SettingsStoreForSingleton interface {
	Get(ctx context.Context) (settings.Settings, error)
	CreateIfAbsent(ctx context.Context, s settings.Settings) error
}

// SettingsDeps holds dependencies for GetOrCreateSettings.
type SettingsDeps struct {
	SettingsStore SettingsStoreForSingleton
	Now           func() time.Time
}

// GetOrCreateSettings returns the site settings, inserting defaults on first access.
// POST: Exactly one settings row exists; concurrent first calls agree on it
func GetOrCreateSettings(ctx context.Context, deps SettingsDeps) (settings.Settings, error) {
	st, err := deps.SettingsStore.Get(ctx)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return settings.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	if err := deps.SettingsStore.CreateIfAbsent(ctx, settings.NewDefault(nowOr(deps.Now))); err != nil {
		return settings.Settings{}, fmt.Errorf("create settings: %w", err)
	}
	return deps.SettingsStore.Get(ctx)
}

// ContentStoreForSingleton defines the store interface needed to read content.
type ContentStoreForSingleton interface {
	GetBySection(ctx context.Context, section string) (content.Block, error)
	CreateIfAbsent(ctx context.Context, b content.Block) error
}

// ContentDeps holds dependencies for GetOrCreateContent.
type ContentDeps struct {
	ContentStore ContentStoreForSingleton
	GenerateID   func() string
	Now          func() time.Time
}

// GetOrCreateContent returns a section's block, inserting its default text on first access.
// Unknown sections start with an empty body.
// POST: Exactly one block exists for section
func GetOrCreateContent(ctx context.Context, section string, deps ContentDeps) (content.Block, error) {
	b, err := deps.ContentStore.GetBySection(ctx, section)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return content.Block{}, fmt.Errorf("load content %q: %w", section, err)
	}

	fresh := content.NewDefault(idOr(deps.GenerateID), section, nowOr(deps.Now))
	if err := deps.ContentStore.CreateIfAbsent(ctx, fresh); err != nil {
		return content.Block{}, fmt.Errorf("create content %q: %w", section, err)
	}
	return deps.ContentStore.GetBySection(ctx, section)
}
