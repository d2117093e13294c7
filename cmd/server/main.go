package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"furnitech/internal/adapters/email"
	web "furnitech/internal/adapters/http"
	"furnitech/internal/adapters/http/middleware"
	"furnitech/internal/adapters/http/perf"
	"furnitech/internal/adapters/storage"
	adminStore "furnitech/internal/adapters/storage/admin"
	contentStore "furnitech/internal/adapters/storage/content"
	messageStore "furnitech/internal/adapters/storage/message"
	outboxStore "furnitech/internal/adapters/storage/outbox"
	serviceStore "furnitech/internal/adapters/storage/service"
	settingsStore "furnitech/internal/adapters/storage/settings"
	"furnitech/internal/application/orchestrators"
	"furnitech/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbcfg, err := cfg.Database()
	if err != nil {
		log.Fatalf("invalid DATABASE_URL: %v", err)
	}
	db, err := storage.Open(ctx, dbcfg)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := storage.InitDB(ctx, db, dbcfg.Dialect); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	log.Printf("Database initialized (%s)", dbcfg.Dialect)

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector, storage.TimedDBOptions{
		Dialect:     dbcfg.Dialect,
		SlowQueryMs: cfg.SlowQueryMs,
	})

	stores := &web.Stores{
		AdminStore:    adminStore.NewSQLiteStore(timedDB),
		ContentStore:  contentStore.NewSQLiteStore(timedDB),
		ServiceStore:  serviceStore.NewSQLiteStore(timedDB),
		MessageStore:  messageStore.NewSQLiteStore(timedDB),
		SettingsStore: settingsStore.NewSQLiteStore(timedDB),
		OutboxStore:   outboxStore.NewSQLiteStore(timedDB),
	}

	created, err := orchestrators.ExecuteSeedAdmin(ctx,
		orchestrators.SeedAdminInput{Username: cfg.AdminUsername, Password: cfg.AdminPassword},
		orchestrators.SeedAdminDeps{AdminStore: stores.AdminStore})
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	if created {
		log.Printf("Default admin %q created; change the password after first login", cfg.AdminUsername)
	}

	sender := email.NewSender(cfg.ResendKey, cfg.EmailFrom)
	if cfg.ResendKey == "" {
		if cfg.IsProduction() {
			log.Println("WARNING: FURNITECH_RESEND_KEY is not set; contact notifications are DISABLED in production")
		} else {
			log.Println("Email sender configured (noop; set FURNITECH_RESEND_KEY for real delivery)")
		}
	}

	// Redeliver contact notifications the provider rejected
	orchestrators.StartNotificationRetry(ctx, orchestrators.RetryNotificationsDeps{
		OutboxStore: stores.OutboxStore,
		Sender:      sender,
	}, time.Minute)

	limiterStop := make(chan struct{})
	defer close(limiterStop)
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, time.Second)
	limiter.StartCleanup(limiterStop)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("failed to create upload dir: %v", err)
	}

	mux := web.NewMux(web.Options{
		StaticDir:       cfg.StaticDir,
		UploadDir:       cfg.UploadDir,
		SessionSecret:   cfg.SessionSecret,
		Secure:          cfg.IsProduction(),
		MaxRequestBytes: cfg.MaxRequestBytes,
		SlowRequestMs:   cfg.SlowRequestMs,
		RateLimiter:     limiter,
		Sender:          sender,
	}, stores, collector)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Furnitech %s starting on %s (env=%s)", version, cfg.Addr, cfg.Env)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	case <-ctx.Done():
		log.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown_failed", "error", err)
		}
	}
}
