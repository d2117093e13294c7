package web

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"furnitech/internal/adapters/http/middleware"
	"furnitech/internal/adapters/upload"
	"furnitech/internal/application/orchestrators"
	"furnitech/internal/application/projections"
	"furnitech/internal/domain/content"
	"furnitech/internal/domain/service"
	"furnitech/internal/domain/settings"
)

// multipartMemory is how much of a multipart body is held in memory before
// spilling to temp files. Bodies are already capped by MaxBytes.
const multipartMemory = 8 << 20

// parseAdminForm parses a urlencoded or multipart body.
// POST: returns a *http.MaxBytesError when the body exceeded the cap
func parseAdminForm(r *http.Request) error {
	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

// badForm answers a form that could not be parsed. Oversize bodies never get
// here; MaxBytes refuses them first.
func badForm(w http.ResponseWriter) {
	http.Error(w, "Invalid form submission", http.StatusBadRequest)
}

// formFile returns the named upload, or an empty name and nil reader when
// none was chosen.
func formFile(r *http.Request, field string) (string, io.Reader, func()) {
	f, header, err := r.FormFile(field)
	if err != nil {
		return "", nil, func() {}
	}
	return header.Filename, f, func() { closeFile(f) }
}

func closeFile(f multipart.File) {
	if err := f.Close(); err != nil {
		slog.Debug("upload_close_failed", "error", err)
	}
}

// uploadMessage maps an upload failure onto its flash text.
func uploadMessage(err error) string {
	switch {
	case errors.Is(err, upload.ErrDisallowedType):
		return "File type not allowed. Please use JPG, PNG, GIF, SVG, or WebP images."
	case errors.Is(err, upload.ErrTooLarge):
		return "File too large. Maximum size is 5MB."
	default:
		return "Error uploading image. Please try again."
	}
}

// handleDashboard shows message and service counts with recent timings.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	deps := projections.GetDashboardDeps{
		MessageStore: stores.MessageStore,
		ServiceStore: stores.ServiceStore,
	}
	if stores.OutboxStore != nil {
		deps.OutboxStore = stores.OutboxStore
	}
	if perfCollector != nil {
		deps.Perf = perfCollector
	}
	result, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardQuery{Now: timeNow()}, deps)
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "admin/dashboard.html", result)
}

// handleContentPage renders the site text, logo and contact editors.
func handleContentPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	home, err := orchestrators.GetOrCreateContent(ctx, content.SectionHome, contentDeps())
	if err != nil {
		internalError(w, err)
		return
	}
	about, err := orchestrators.GetOrCreateContent(ctx, content.SectionAbout, contentDeps())
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "admin/content.html", map[string]any{
		"Home":  home,
		"About": about,
	})
}

// handleContentUpdate applies whichever of the three editors were submitted:
// a section body, a logo upload and the contact fields.
func handleContentUpdate(w http.ResponseWriter, r *http.Request) {
	if err := parseAdminForm(r); err != nil {
		badForm(w)
		return
	}
	ctx := r.Context()

	section := strings.TrimSpace(r.PostFormValue("section"))
	body := r.PostFormValue("content")
	if section != "" && body != "" {
		_, err := orchestrators.ExecuteUpdateContent(ctx, orchestrators.UpdateContentInput{Section: section, Body: body},
			orchestrators.UpdateContentDeps{ContentStore: stores.ContentStore, Now: timeNow})
		switch {
		case errors.Is(err, content.ErrSectionTooLong):
			flash(r, middleware.FlashError, sentence(err))
		case err != nil:
			internalError(w, err)
			return
		default:
			flash(r, middleware.FlashSuccess, titleCase(section)+" content updated successfully!")
		}
	}

	filename, file, done := formFile(r, "logo")
	defer done()
	if file != nil {
		_, err := orchestrators.ExecuteUpdateLogo(ctx, orchestrators.UpdateLogoInput{Filename: filename, File: file},
			orchestrators.UpdateLogoDeps{SettingsStore: stores.SettingsStore, Images: images, Now: timeNow})
		switch {
		case errors.Is(err, upload.ErrNoFile):
			// empty file input
		case errors.Is(err, upload.ErrDisallowedType), errors.Is(err, upload.ErrTooLarge):
			flash(r, middleware.FlashError, uploadMessage(err))
		case err != nil:
			slog.Error("logo_update_failed", "error", err)
			flash(r, middleware.FlashError, uploadMessage(err))
		default:
			flash(r, middleware.FlashSuccess, "Logo updated successfully!")
		}
	}

	changed, err := orchestrators.ExecuteUpdateContact(ctx, settings.ContactUpdate{
		PhoneNumber:    strings.TrimSpace(r.PostFormValue("phone_number")),
		Email:          strings.TrimSpace(r.PostFormValue("email")),
		WhatsAppNumber: strings.TrimSpace(r.PostFormValue("whatsapp_number")),
		Address:        strings.TrimSpace(r.PostFormValue("address")),
	}, orchestrators.UpdateContactDeps{SettingsStore: stores.SettingsStore, Now: timeNow})
	if err != nil {
		internalError(w, err)
		return
	}
	if changed {
		flash(r, middleware.FlashSuccess, "Contact information updated successfully!")
	}

	redirect(w, r, "/admin/content")
}

// handleServicesAdmin lists every service for editing.
func handleServicesAdmin(w http.ResponseWriter, r *http.Request) {
	list, err := projections.QueryGetAdminServices(r.Context(), projections.GetServicesDeps{ServiceStore: stores.ServiceStore})
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "admin/services.html", map[string]any{
		"Services":   list,
		"Categories": service.ValidCategories,
	})
}

// handleServicesAction dispatches the add, edit and delete forms.
func handleServicesAction(w http.ResponseWriter, r *http.Request) {
	if err := parseAdminForm(r); err != nil {
		badForm(w)
		return
	}
	ctx := r.Context()
	deps := serviceDeps()

	filename, file, done := formFile(r, "image")
	defer done()
	input := orchestrators.ServiceInput{
		ID:            r.PostFormValue("service_id"),
		Title:         r.PostFormValue("title"),
		Description:   r.PostFormValue("description"),
		Category:      r.PostFormValue("category"),
		ImageFilename: filename,
		Image:         file,
	}

	var (
		res     orchestrators.ServiceResult
		err     error
		success string
	)
	switch r.PostFormValue("action") {
	case "add":
		res, err = orchestrators.ExecuteAddService(ctx, input, deps)
		success = "Service added successfully!"
	case "edit":
		res, err = orchestrators.ExecuteEditService(ctx, input, deps)
		success = "Service updated successfully!"
	case "delete":
		err = orchestrators.ExecuteDeleteService(ctx, input.ID, deps)
		success = "Service deleted successfully!"
	default:
		http.Error(w, "Unknown action", http.StatusBadRequest)
		return
	}

	switch {
	case errors.Is(err, orchestrators.ErrServiceNotFound):
		http.NotFound(w, r)
		return
	case isServiceValidation(err):
		flash(r, middleware.FlashError, sentence(err))
		redirect(w, r, "/admin/services")
		return
	case err != nil:
		internalError(w, err)
		return
	}

	if res.ImageErr != nil {
		flash(r, middleware.FlashError, uploadMessage(res.ImageErr))
	}
	flash(r, middleware.FlashSuccess, success)
	redirect(w, r, "/admin/services")
}

func isServiceValidation(err error) bool {
	return errors.Is(err, service.ErrEmptyTitle) ||
		errors.Is(err, service.ErrTitleTooLong) ||
		errors.Is(err, service.ErrEmptyDescription) ||
		errors.Is(err, service.ErrInvalidCategory)
}

// handleMessages renders the inbox, newest first.
func handleMessages(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetMessages(r.Context(), projections.GetMessagesDeps{MessageStore: stores.MessageStore})
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "admin/messages.html", result)
}

// handleMessageRead marks one message read.
func handleMessageRead(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteMarkMessageRead(r.Context(), r.PathValue("id"), orchestrators.MessageDeps{MessageStore: stores.MessageStore})
	if errors.Is(err, orchestrators.ErrMessageNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	redirect(w, r, "/admin/messages")
}

// handleMessageDelete removes one message.
func handleMessageDelete(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteMessage(r.Context(), r.PathValue("id"), orchestrators.MessageDeps{MessageStore: stores.MessageStore})
	if errors.Is(err, orchestrators.ErrMessageNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	flash(r, middleware.FlashSuccess, "Message deleted successfully!")
	redirect(w, r, "/admin/messages")
}
