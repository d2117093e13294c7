package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"furnitech/internal/domain/admin"
)

// AdminStoreForSeed defines the store interface needed by SeedAdmin.
type AdminStoreForSeed interface {
	Save(ctx context.Context, a admin.Admin) error
	Count(ctx context.Context) (int, error)
}

// SeedAdminInput carries the first-boot credential.
type SeedAdminInput struct {
	Username string
	Password string
}

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	AdminStore AdminStoreForSeed
	GenerateID func() string
}

// ExecuteSeedAdmin creates the administrator when none exists.
// PRE: Username non-empty; Password admin.MinPasswordLength to admin.MaxPasswordLength bytes
// POST: Exactly one admin exists; returns true if this call created it
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, deps SeedAdminDeps) (bool, error) {
	n, err := deps.AdminStore.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	a := admin.Admin{
		ID:       idOr(deps.GenerateID),
		Username: input.Username,
	}
	if err := a.Validate(); err != nil {
		return false, err
	}
	if err := a.SetPassword(input.Password); err != nil {
		return false, fmt.Errorf("admin password: %w", err)
	}
	if err := deps.AdminStore.Save(ctx, a); err != nil {
		return false, fmt.Errorf("save admin: %w", err)
	}

	slog.Info("auth_event", "event", "admin_seeded", "username", a.Username)
	return true, nil
}
