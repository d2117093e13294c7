package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"furnitech/internal/domain/admin"
)

// ChangePasswordInput carries input for the change-password orchestrator.
type ChangePasswordInput struct {
	AdminID         string
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// AdminStoreForChangePassword defines the store interface needed by ChangePassword.
type AdminStoreForChangePassword interface {
	GetByID(ctx context.Context, id string) (admin.Admin, error)
	Save(ctx context.Context, a admin.Admin) error
}

// ChangePasswordDeps holds dependencies for ChangePassword.
type ChangePasswordDeps struct {
	AdminStore AdminStoreForChangePassword
}

var (
	ErrAdminNotFound        = errors.New("admin no longer exists")
	ErrCurrentPasswordWrong = errors.New("current password is incorrect")
	ErrPasswordMismatch     = errors.New("new passwords do not match")
)

// ExecuteChangePassword verifies the current password and stores the new one.
// Checks run in order: current password, confirmation match, length.
// PRE: AdminID comes from an authenticated session
// POST: On success the stored hash verifies NewPassword; on any error nothing changes
func ExecuteChangePassword(ctx context.Context, input ChangePasswordInput, deps ChangePasswordDeps) error {
	a, err := deps.AdminStore.GetByID(ctx, input.AdminID)
	if errors.Is(err, sql.ErrNoRows) {
		slog.Info("auth_event", "event", "password_change_failed", "admin_id", input.AdminID, "reason", "not_found")
		return ErrAdminNotFound
	}
	if err != nil {
		return fmt.Errorf("load admin: %w", err)
	}

	if err := a.CheckPassword(input.CurrentPassword); err != nil {
		slog.Info("auth_event", "event", "password_change_failed", "admin_id", a.ID, "reason", "wrong_password")
		return ErrCurrentPasswordWrong
	}

	if input.NewPassword != input.ConfirmPassword {
		return ErrPasswordMismatch
	}

	if len(input.NewPassword) < admin.MinPasswordLength {
		return admin.ErrPasswordTooShort
	}
	if len(input.NewPassword) > admin.MaxPasswordLength {
		return admin.ErrPasswordTooLong
	}

	if err := a.SetPassword(input.NewPassword); err != nil {
		return err
	}
	if err := deps.AdminStore.Save(ctx, a); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "password_changed", "admin_id", a.ID)
	return nil
}
