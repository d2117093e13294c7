package web

import (
	"errors"
	"net/http"

	"furnitech/internal/adapters/http/middleware"
	"furnitech/internal/application/orchestrators"
	"furnitech/internal/domain/admin"
)

// handleLoginPage renders the login form, or skips it for a logged-in admin.
func handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
		redirect(w, r, "/admin")
		return
	}
	renderTemplate(w, r, "admin/login.html", map[string]any{"Username": ""})
}

// handleLogin checks the credentials and stores the identity in the session.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	username := r.PostFormValue("username")

	res, err := orchestrators.ExecuteLogin(ctx, orchestrators.LoginInput{
		Username: username,
		Password: r.PostFormValue("password"),
	}, orchestrators.LoginDeps{AdminStore: stores.AdminStore})
	if errors.Is(err, orchestrators.ErrInvalidCredentials) {
		flash(r, middleware.FlashError, "Invalid username or password.")
		renderTemplate(w, r, "admin/login.html", map[string]any{"Username": username})
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	middleware.SetIdentity(ctx, res.AdminID, res.Username)
	flash(r, middleware.FlashSuccess, "Login successful!")
	redirect(w, r, "/admin")
}

// handleLogout clears the identity whether or not one was present.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearIdentity(r.Context())
	flash(r, middleware.FlashInfo, "You have been logged out.")
	redirect(w, r, "/admin/login")
}

func handleChangePasswordPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "admin/change_password.html", nil)
}

var passwordMessages = []struct {
	err error
	msg string
}{
	{orchestrators.ErrCurrentPasswordWrong, "Current password is incorrect!"},
	{orchestrators.ErrPasswordMismatch, "New passwords do not match!"},
	{admin.ErrPasswordTooShort, "Password must be at least 6 characters long!"},
	{admin.ErrPasswordTooLong, "Password must be at most 72 bytes long!"},
}

// handleChangePassword re-hashes the administrator's password.
func handleChangePassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)

	err := orchestrators.ExecuteChangePassword(ctx, orchestrators.ChangePasswordInput{
		AdminID:         sess.AdminID,
		CurrentPassword: r.PostFormValue("current_password"),
		NewPassword:     r.PostFormValue("new_password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}, orchestrators.ChangePasswordDeps{AdminStore: stores.AdminStore})

	if errors.Is(err, orchestrators.ErrAdminNotFound) {
		middleware.ClearIdentity(ctx)
		flash(r, middleware.FlashError, "Session expired. Please login again.")
		redirect(w, r, "/admin/login")
		return
	}
	for _, pm := range passwordMessages {
		if errors.Is(err, pm.err) {
			flash(r, middleware.FlashError, pm.msg)
			renderTemplate(w, r, "admin/change_password.html", nil)
			return
		}
	}
	if err != nil {
		internalError(w, err)
		return
	}

	flash(r, middleware.FlashSuccess, "Password changed successfully!")
	redirect(w, r, "/admin")
}
