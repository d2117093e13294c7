package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"

	storeAdmin "furnitech/internal/adapters/storage/admin"
	"furnitech/internal/adapters/storage/storagetest"
	"furnitech/internal/domain/admin"
)

func seededAdminStore(t *testing.T) *storeAdmin.SQLiteStore {
	t.Helper()
	store := storeAdmin.NewSQLiteStore(storagetest.OpenDB(t))
	created, err := ExecuteSeedAdmin(context.Background(), SeedAdminInput{Username: "admin", Password: "admin123"},
		SeedAdminDeps{AdminStore: store, GenerateID: func() string { return "admin-1" }})
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if !created {
		t.Fatal("expected seed to create the admin")
	}
	return store
}

func TestExecuteSeedAdmin_OnlyOnce(t *testing.T) {
	store := seededAdminStore(t)
	created, err := ExecuteSeedAdmin(context.Background(), SeedAdminInput{Username: "other", Password: "secret99"},
		SeedAdminDeps{AdminStore: store})
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if created {
		t.Error("second seed should be a no-op")
	}
	n, _ := store.Count(context.Background())
	if n != 1 {
		t.Errorf("admin count = %d, want 1", n)
	}
	if _, err := store.GetByUsername(context.Background(), "other"); err == nil {
		t.Error("second username should not exist")
	}
}

func TestExecuteSeedAdmin_ShortPassword(t *testing.T) {
	store := storeAdmin.NewSQLiteStore(storagetest.OpenDB(t))
	_, err := ExecuteSeedAdmin(context.Background(), SeedAdminInput{Username: "admin", Password: "123"},
		SeedAdminDeps{AdminStore: store})
	if !errors.Is(err, admin.ErrPasswordTooShort) {
		t.Fatalf("err = %v, want ErrPasswordTooShort", err)
	}
}

func TestExecuteSeedAdmin_LongPassword(t *testing.T) {
	store := storeAdmin.NewSQLiteStore(storagetest.OpenDB(t))
	_, err := ExecuteSeedAdmin(context.Background(), SeedAdminInput{Username: "admin", Password: strings.Repeat("a", 73)},
		SeedAdminDeps{AdminStore: store})
	if !errors.Is(err, admin.ErrPasswordTooLong) {
		t.Fatalf("err = %v, want ErrPasswordTooLong", err)
	}
	if n, _ := store.Count(context.Background()); n != 0 {
		t.Errorf("admins = %d, want 0", n)
	}
}

func TestExecuteLogin(t *testing.T) {
	store := seededAdminStore(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"valid", "admin", "admin123", false},
		{"wrong password", "admin", "wrong", true},
		{"unknown user", "nobody", "admin123", true},
		{"empty username", "", "admin123", true},
		{"empty password", "admin", "", true},
		{"case sensitive", "Admin", "admin123", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ExecuteLogin(ctx, LoginInput{Username: tt.username, Password: tt.password}, LoginDeps{AdminStore: store})
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCredentials) {
					t.Fatalf("err = %v, want ErrInvalidCredentials", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.AdminID != "admin-1" || res.Username != "admin" {
				t.Errorf("result = %+v", res)
			}
		})
	}
}

func TestExecuteChangePassword(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   ChangePasswordInput
		wantErr error
	}{
		{"unknown admin", ChangePasswordInput{AdminID: "ghost", CurrentPassword: "admin123", NewPassword: "newpass1", ConfirmPassword: "newpass1"}, ErrAdminNotFound},
		{"wrong current", ChangePasswordInput{AdminID: "admin-1", CurrentPassword: "nope", NewPassword: "newpass1", ConfirmPassword: "newpass1"}, ErrCurrentPasswordWrong},
		{"mismatch", ChangePasswordInput{AdminID: "admin-1", CurrentPassword: "admin123", NewPassword: "newpass1", ConfirmPassword: "newpass2"}, ErrPasswordMismatch},
		{"too short", ChangePasswordInput{AdminID: "admin-1", CurrentPassword: "admin123", NewPassword: "abc", ConfirmPassword: "abc"}, admin.ErrPasswordTooShort},
		{"too long", ChangePasswordInput{AdminID: "admin-1", CurrentPassword: "admin123", NewPassword: strings.Repeat("a", 80), ConfirmPassword: strings.Repeat("a", 80)}, admin.ErrPasswordTooLong},
		{"wrong current beats mismatch", ChangePasswordInput{AdminID: "admin-1", CurrentPassword: "nope", NewPassword: "a", ConfirmPassword: "b"}, ErrCurrentPasswordWrong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seededAdminStore(t)
			err := ExecuteChangePassword(ctx, tt.input, ChangePasswordDeps{AdminStore: store})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if _, err := ExecuteLogin(ctx, LoginInput{Username: "admin", Password: "admin123"}, LoginDeps{AdminStore: store}); err != nil {
				t.Errorf("old password should still work after failed change: %v", err)
			}
		})
	}
}

func TestExecuteChangePassword_Success(t *testing.T) {
	ctx := context.Background()
	store := seededAdminStore(t)

	err := ExecuteChangePassword(ctx, ChangePasswordInput{
		AdminID:         "admin-1",
		CurrentPassword: "admin123",
		NewPassword:     "hunter22",
		ConfirmPassword: "hunter22",
	}, ChangePasswordDeps{AdminStore: store})
	if err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, err := ExecuteLogin(ctx, LoginInput{Username: "admin", Password: "admin123"}, LoginDeps{AdminStore: store}); err == nil {
		t.Error("old password should no longer work")
	}
	if _, err := ExecuteLogin(ctx, LoginInput{Username: "admin", Password: "hunter22"}, LoginDeps{AdminStore: store}); err != nil {
		t.Errorf("new password should work: %v", err)
	}
}

// brokenAdminStore fails every lookup the way an unreachable database would.
type brokenAdminStore struct{ err error }

func (b brokenAdminStore) GetByID(context.Context, string) (admin.Admin, error) {
	return admin.Admin{}, b.err
}

func (b brokenAdminStore) GetByUsername(context.Context, string) (admin.Admin, error) {
	return admin.Admin{}, b.err
}

func (b brokenAdminStore) Save(context.Context, admin.Admin) error { return b.err }

func TestAuth_StoreFailureIsNotACredentialError(t *testing.T) {
	ctx := context.Background()
	dbDown := errors.New("database is locked")
	store := brokenAdminStore{err: dbDown}

	_, err := ExecuteLogin(ctx, LoginInput{Username: "admin", Password: "admin123"}, LoginDeps{AdminStore: store})
	if !errors.Is(err, dbDown) || errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("login err = %v, want the store error", err)
	}

	err = ExecuteChangePassword(ctx, ChangePasswordInput{
		AdminID: "admin-1", CurrentPassword: "admin123", NewPassword: "hunter22", ConfirmPassword: "hunter22",
	}, ChangePasswordDeps{AdminStore: store})
	if !errors.Is(err, dbDown) || errors.Is(err, ErrAdminNotFound) {
		t.Errorf("change password err = %v, want the store error", err)
	}
}
