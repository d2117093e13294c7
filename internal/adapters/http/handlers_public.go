package web

import (
	"errors"
	"net/http"

	"furnitech/internal/adapters/http/middleware"
	"furnitech/internal/application/orchestrators"
	"furnitech/internal/application/projections"
	"furnitech/internal/domain/content"
	"furnitech/internal/domain/message"
)

func settingsDeps() orchestrators.SettingsDeps {
	return orchestrators.SettingsDeps{SettingsStore: stores.SettingsStore, Now: timeNow}
}

func contentDeps() orchestrators.ContentDeps {
	return orchestrators.ContentDeps{ContentStore: stores.ContentStore, Now: timeNow}
}

func serviceDeps() orchestrators.ServiceDeps {
	return orchestrators.ServiceDeps{ServiceStore: stores.ServiceStore, Images: images, Now: timeNow}
}

// handleHome renders the landing page with the editable home text.
func handleHome(w http.ResponseWriter, r *http.Request) {
	block, err := orchestrators.GetOrCreateContent(r.Context(), content.SectionHome, contentDeps())
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "index.html", map[string]any{"Content": block})
}

// handleAbout renders the about page.
func handleAbout(w http.ResponseWriter, r *http.Request) {
	block, err := orchestrators.GetOrCreateContent(r.Context(), content.SectionAbout, contentDeps())
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "about.html", map[string]any{"Content": block})
}

// handleServices seeds the default catalogue on first visit, then lists
// active services by category.
func handleServices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, err := orchestrators.ExecuteSeedServices(ctx, serviceDeps()); err != nil {
		internalError(w, err)
		return
	}
	result, err := projections.QueryGetServicesPage(ctx, projections.GetServicesDeps{ServiceStore: stores.ServiceStore})
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "services.html", result)
}

// contactForm holds submitted values so a rejected form is re-rendered filled in.
type contactForm struct {
	Name            string
	Phone           string
	ServiceInterest string
	Message         string
}

func renderContact(w http.ResponseWriter, r *http.Request, form contactForm) {
	result, err := projections.QueryGetServicesPage(r.Context(), projections.GetServicesDeps{ServiceStore: stores.ServiceStore})
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "contact.html", map[string]any{
		"Form":     form,
		"Services": append(result.Office, result.Home...),
	})
}

// handleContact renders the empty contact form.
func handleContact(w http.ResponseWriter, r *http.Request) {
	renderContact(w, r, contactForm{})
}

// handleContactSubmit stores a visitor enquiry.
func handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	form := contactForm{
		Name:            r.PostFormValue("name"),
		Phone:           r.PostFormValue("phone"),
		ServiceInterest: r.PostFormValue("service_interest"),
		Message:         r.PostFormValue("message"),
	}

	_, err := orchestrators.ExecuteSubmitContact(r.Context(), orchestrators.SubmitContactInput{
		Name:            form.Name,
		Phone:           form.Phone,
		ServiceInterest: form.ServiceInterest,
		Message:         form.Message,
	}, orchestrators.SubmitContactDeps{
		MessageStore:  stores.MessageStore,
		SettingsStore: stores.SettingsStore,
		Sender:        emailSender,
		Outbox:        stores.OutboxStore,
		Now:           timeNow,
	})
	switch {
	case errors.Is(err, message.ErrMissingField):
		flash(r, middleware.FlashError, "Please fill in all fields.")
		renderContact(w, r, form)
		return
	case isContactValidation(err):
		flash(r, middleware.FlashError, sentence(err))
		renderContact(w, r, form)
		return
	case err != nil:
		internalError(w, err)
		return
	}

	flash(r, middleware.FlashSuccess, "Your message has been sent successfully! We will contact you soon.")
	redirect(w, r, "/contact")
}

func isContactValidation(err error) bool {
	return errors.Is(err, message.ErrNameTooLong) ||
		errors.Is(err, message.ErrPhoneTooLong) ||
		errors.Is(err, message.ErrServiceInterestTooLong)
}
