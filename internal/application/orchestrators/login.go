package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"furnitech/internal/domain/admin"
)

// AdminStoreForLogin defines the store interface needed by Login.
type AdminStoreForLogin interface {
	GetByUsername(ctx context.Context, username string) (admin.Admin, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult carries the identity to store in the session.
type LoginResult struct {
	AdminID  string
	Username string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	AdminStore AdminStoreForLogin
}

// ErrInvalidCredentials covers both unknown usernames and wrong passwords.
var ErrInvalidCredentials = errors.New("invalid username or password")

var (
	dummyOnce  sync.Once
	dummyAdmin admin.Admin
)

// burnCompare spends one bcrypt comparison for unknown usernames so both
// failure paths take about the same time.
func burnCompare(password string) {
	dummyOnce.Do(func() {
		_ = dummyAdmin.SetPassword("not-a-real-password")
	})
	_ = dummyAdmin.CheckPassword(password)
}

// ExecuteLogin validates credentials and returns the identity for the session.
// PRE: none; empty fields are rejected as invalid credentials
// POST: Returns the admin identity on success; no state is changed either way.
// Store failures other than a missing admin are returned as they are.
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Username == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	a, err := deps.AdminStore.GetByUsername(ctx, input.Username)
	if errors.Is(err, sql.ErrNoRows) {
		burnCompare(input.Password)
		slog.Info("auth_event", "event", "login_failed", "username", input.Username, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("load admin: %w", err)
	}

	if err := a.CheckPassword(input.Password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "username", input.Username, "reason", "wrong_password")
		return LoginResult{}, ErrInvalidCredentials
	}

	slog.Info("auth_event", "event", "login_success", "username", a.Username)
	return LoginResult{AdminID: a.ID, Username: a.Username}, nil
}
