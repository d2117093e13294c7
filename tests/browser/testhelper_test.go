package browser_test

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"golang.org/x/crypto/bcrypt"

	web "furnitech/internal/adapters/http"
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
	"furnitech/internal/domain/admin"
)

const (
	adminUsername = "admin"
	adminPassword = "admin123"
)

// testApp holds the running test server and Playwright handles.
type testApp struct {
	BaseURL   string
	DB        *storage.TimedDB
	Server    *http.Server
	PW        *playwright.Playwright
	Browser   playwright.Browser
	Stores    *web.Stores
	UploadDir string
}

// newTestApp creates a fully wired app with a temp SQLite DB and starts an HTTP server.
// The test is skipped in -short mode or when no Playwright driver is installed.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	admin.HashCost = bcrypt.MinCost

	tmpDir := t.TempDir()
	dbcfg, err := config.Config{DatabaseURL: "sqlite:///" + filepath.Join(tmpDir, "test.db")}.Database()
	if err != nil {
		t.Fatalf("resolve test DB: %v", err)
	}
	ctx := context.Background()
	raw, err := storage.Open(ctx, dbcfg)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	if err := storage.InitDB(ctx, raw, dbcfg.Dialect); err != nil {
		t.Fatalf("failed to migrate test DB: %v", err)
	}
	collector := perf.NewCollector(perf.DefaultRingSize)
	db := storage.NewTimedDB(raw, collector, storage.TimedDBOptions{Dialect: dbcfg.Dialect})

	stores := &web.Stores{
		AdminStore:    adminStore.NewSQLiteStore(db),
		ContentStore:  contentStore.NewSQLiteStore(db),
		ServiceStore:  serviceStore.NewSQLiteStore(db),
		MessageStore:  messageStore.NewSQLiteStore(db),
		SettingsStore: settingsStore.NewSQLiteStore(db),
		OutboxStore:   outboxStore.NewSQLiteStore(db),
	}
	if _, err := orchestrators.ExecuteSeedAdmin(ctx,
		orchestrators.SeedAdminInput{Username: adminUsername, Password: adminPassword},
		orchestrators.SeedAdminDeps{AdminStore: stores.AdminStore}); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	uploadDir := filepath.Join(tmpDir, "uploads")
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		t.Fatalf("failed to create upload dir: %v", err)
	}
	mux := web.NewMux(web.Options{
		StaticDir:       filepath.Join(findProjectRoot(t), "static"),
		UploadDir:       uploadDir,
		SessionSecret:   "browser-test-secret",
		TrustedOrigins:  []string{fmt.Sprintf("127.0.0.1:%d", port), fmt.Sprintf("localhost:%d", port)},
		MaxRequestBytes: 5 << 20,
	}, stores, collector)
	srv := &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/admin/login")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		srv.Close()
		db.Close()
		t.Skipf("playwright driver unavailable: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		pw.Stop()
		srv.Close()
		db.Close()
		t.Skipf("chromium unavailable: %v", err)
	}

	app := &testApp{
		BaseURL:   baseURL,
		DB:        db,
		Server:    srv,
		PW:        pw,
		Browser:   browser,
		Stores:    stores,
		UploadDir: uploadDir,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		db.Close()
	})

	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// visit navigates and fails the test on a non-2xx response.
func (a *testApp) visit(t *testing.T, page playwright.Page, path string) {
	t.Helper()
	resp, err := page.Goto(a.BaseURL + path)
	if err != nil {
		t.Fatalf("failed to navigate to %s: %v", path, err)
	}
	if resp == nil || !resp.Ok() {
		status := 0
		if resp != nil {
			status = resp.Status()
		}
		t.Fatalf("GET %s: status %d", path, status)
	}
}

// login signs in through the login form and waits for the dashboard.
func (a *testApp) login(t *testing.T, page playwright.Page) {
	t.Helper()
	a.visit(t, page, "/admin/login")
	if err := page.Locator("input[name=username]").Fill(adminUsername); err != nil {
		t.Fatalf("failed to fill username: %v", err)
	}
	if err := page.Locator("input[name=password]").Fill(adminPassword); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("form[action='/admin/login'] button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+"/admin", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect to dashboard: %v", err)
	}
}

// textOf returns the inner text of the first element matching selector.
func textOf(t *testing.T, page playwright.Page, selector string) string {
	t.Helper()
	text, err := page.Locator(selector).First().InnerText()
	if err != nil {
		t.Fatalf("read %s: %v", selector, err)
	}
	return text
}

// findProjectRoot walks up from the working directory to find the project root (contains go.mod).
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (go.mod) from working directory")
		}
		dir = parent
	}
}
