package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"furnitech/internal/adapters/http/middleware"
	"furnitech/internal/application/orchestrators"
)

//go:embed templates
var templateFS embed.FS

// mdRenderer renders administrator-authored content. Raw HTML passes
// through because the default bodies carry inline <span> markup.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithUnsafe(),
		goldmarkHTML.WithHardWraps(),
	),
)

var funcMap = template.FuncMap{
	"renderMarkdown": func(md string) template.HTML {
		var buf bytes.Buffer
		if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
			return template.HTML(template.HTMLEscapeString(md))
		}
		return template.HTML(buf.String())
	},
	"whatsappLink": func(number string) string {
		digits := strings.Map(func(r rune) rune {
			if unicode.IsDigit(r) {
				return r
			}
			return -1
		}, number)
		return "https://wa.me/" + digits
	},
	"titleCase": titleCase,
	"list":      func(items ...any) []any { return items },
	"year":      func() int { return timeNow().Year() },
	"fmtDate":   func(t time.Time) string { return t.Format("02 Jan 2006, 15:04") },
}

// pages maps a page template name to its parsed layout+page set.
var pages = mustParsePages()

func mustParsePages() map[string]*template.Template {
	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		panic(err)
	}
	adminNames, err := fs.Glob(templateFS, "templates/admin/*.html")
	if err != nil {
		panic(err)
	}

	out := make(map[string]*template.Template)
	for _, path := range append(names, adminNames...) {
		name := strings.TrimPrefix(path, "templates/")
		if name == "layout.html" {
			continue
		}
		out[name] = template.Must(template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", path))
	}
	return out
}

// titleCase upper-cases the first letter of each word.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// renderTemplate executes a page inside the layout. The layout sees the page
// data under .Data alongside site settings, pending flashes, the CSRF field
// and the logged-in username.
func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	renderStatus(w, r, http.StatusOK, templateName, data)
}

func renderStatus(w http.ResponseWriter, r *http.Request, status int, templateName string, data any) {
	tpl, ok := pages[templateName]
	if !ok {
		internalError(w, errors.New("unknown template "+templateName))
		return
	}

	st, err := orchestrators.GetOrCreateSettings(r.Context(), settingsDeps())
	if err != nil {
		internalError(w, err)
		return
	}

	sess := middleware.CurrentSession(r.Context())
	view := map[string]any{
		"Settings":  st,
		"AdminUser": sess.Username,
		"IsAdmin":   sess.IsAuthenticated(),
		"Path":      r.URL.Path,
		"CSRFField": csrf.TemplateField(r),
		"Flashes":   middleware.PopFlashes(r.Context()),
		"Data":      data,
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, view); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// sentence turns a lower-case domain error into a flash message.
func sentence(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	r := []rune(msg)
	r[0] = unicode.ToUpper(r[0])
	if !strings.HasSuffix(msg, ".") {
		return string(r) + "."
	}
	return string(r)
}

func flash(r *http.Request, kind, message string) {
	middleware.AddFlash(r.Context(), kind, message)
}

func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}
