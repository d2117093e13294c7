package web

import (
	"crypto/sha256"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/crypto/hkdf"

	"furnitech/internal/adapters/email"
	"furnitech/internal/adapters/http/middleware"
	"furnitech/internal/adapters/http/perf"
	adminStore "furnitech/internal/adapters/storage/admin"
	contentStore "furnitech/internal/adapters/storage/content"
	messageStore "furnitech/internal/adapters/storage/message"
	outboxStore "furnitech/internal/adapters/storage/outbox"
	serviceStore "furnitech/internal/adapters/storage/service"
	settingsStore "furnitech/internal/adapters/storage/settings"
	"furnitech/internal/adapters/upload"
)

// Stores holds all storage dependencies.
type Stores struct {
	AdminStore    adminStore.Store
	ContentStore  contentStore.Store
	ServiceStore  serviceStore.Store
	MessageStore  messageStore.Store
	SettingsStore settingsStore.Store
	OutboxStore   outboxStore.Store // optional: nil drops failed notifications
}

// Options configures NewMux.
type Options struct {
	StaticDir       string
	UploadDir       string
	SessionSecret   string
	Secure          bool // production: Secure cookies and strict CSRF origin checks
	TrustedOrigins  []string
	MaxRequestBytes int64
	SlowRequestMs   int
	RateLimiter     *middleware.RateLimiter // nil disables POST rate limiting
	Sender          email.Sender            // nil disables contact notifications
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global upload store (set by NewMux)
var images *upload.Store

// Global email sender (set by NewMux)
var emailSender email.Sender

// timeNow is a variable for testability.
var timeNow = time.Now

// deriveKey expands the session secret into an independent key per purpose.
func deriveKey(secret, purpose string, size int) []byte {
	key := make([]byte, size)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("furnitech "+purpose))
	if _, err := io.ReadFull(r, key); err != nil {
		log.Fatalf("derive %s key: %v", purpose, err)
	}
	return key
}

// NewMux wires HTTP handlers for the app.
func NewMux(opts Options, s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	emailSender = opts.Sender
	images = upload.NewStore(opts.UploadDir, upload.DefaultMaxBytes)

	maxBytes := opts.MaxRequestBytes
	if maxBytes <= 0 {
		maxBytes = upload.DefaultMaxBytes
	}

	sessions := middleware.NewSessionStore(
		deriveKey(opts.SessionSecret, "session hash", 64),
		deriveKey(opts.SessionSecret, "session block", 32),
		opts.Secure,
	)
	csrfKey := deriveKey(opts.SessionSecret, "csrf", 32)

	mux := http.NewServeMux()
	if opts.UploadDir != "" {
		mux.Handle("GET /static/uploads/", http.StripPrefix("/static/uploads/", http.FileServer(http.Dir(opts.UploadDir))))
	}
	if opts.StaticDir != "" {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir))))
	}
	registerRoutes(mux)

	chain := []func(http.Handler) http.Handler{
		middleware.SecurityHeaders,
		middleware.Sessions(sessions),
		middleware.MaxBytes(maxBytes),
		middleware.CSRF(csrfKey, opts.Secure, opts.TrustedOrigins),
	}
	if opts.RateLimiter != nil {
		chain = append(chain, middleware.RateLimit(opts.RateLimiter))
	}
	chain = append(chain, middleware.Timing(collector, opts.SlowRequestMs))

	return middleware.Chain(mux, chain...)
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", handleHome)
	mux.HandleFunc("GET /services", handleServices)
	mux.HandleFunc("GET /about", handleAbout)
	mux.HandleFunc("GET /contact", handleContact)
	mux.HandleFunc("POST /contact", handleContactSubmit)

	mux.HandleFunc("GET /admin/login", handleLoginPage)
	mux.HandleFunc("POST /admin/login", handleLogin)
	mux.HandleFunc("GET /admin/logout", handleLogout)

	mux.Handle("GET /admin", requireAdmin(handleDashboard))
	mux.Handle("GET /admin/content", requireAdmin(handleContentPage))
	mux.Handle("POST /admin/content", requireAdmin(handleContentUpdate))
	mux.Handle("GET /admin/services", requireAdmin(handleServicesAdmin))
	mux.Handle("POST /admin/services", requireAdmin(handleServicesAction))
	mux.Handle("GET /admin/change-password", requireAdmin(handleChangePasswordPage))
	mux.Handle("POST /admin/change-password", requireAdmin(handleChangePassword))
	mux.Handle("GET /admin/messages", requireAdmin(handleMessages))
	mux.Handle("POST /admin/message/{id}/read", requireAdmin(handleMessageRead))
	mux.Handle("POST /admin/message/{id}/delete", requireAdmin(handleMessageDelete))
}

func requireAdmin(h http.HandlerFunc) http.Handler {
	return middleware.RequireAdmin(h)
}
