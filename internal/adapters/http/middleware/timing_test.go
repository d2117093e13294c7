package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"furnitech/internal/adapters/http/perf"
)

func timed(collector *perf.Collector, h http.HandlerFunc) http.Handler {
	return Timing(collector, DefaultSlowRequestMs)(h)
}

// TestTimingMiddleware_EmitsEntry verifies that a request entry is recorded.
func TestTimingMiddleware_EmitsEntry(t *testing.T) {
	collector := perf.NewCollector(100)
	handler := timed(collector, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/services", nil))

	if collector.TotalRecorded() != 1 {
		t.Errorf("TotalRecorded = %d, want 1", collector.TotalRecorded())
	}
}

// TestTimingMiddleware_SkipsStatic verifies static assets are excluded from timing.
func TestTimingMiddleware_SkipsStatic(t *testing.T) {
	collector := perf.NewCollector(100)
	handler := timed(collector, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/static/uploads/desk_1.png", nil))

	if collector.TotalRecorded() != 0 {
		t.Errorf("TotalRecorded = %d, want 0 (static excluded)", collector.TotalRecorded())
	}
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

// TestTimingMiddleware_HandlerPanic verifies the deferred timing still runs.
func TestTimingMiddleware_HandlerPanic(t *testing.T) {
	collector := perf.NewCollector(100)
	handler := timed(collector, func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic to propagate, got nil")
		}
		if collector.TotalRecorded() != 1 {
			t.Errorf("TotalRecorded = %d, want 1", collector.TotalRecorded())
		}
	}()

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/admin", nil))
}

// TestTimingMiddleware_GroupsByPattern verifies per-id paths share one mux pattern entry.
func TestTimingMiddleware_GroupsByPattern(t *testing.T) {
	collector := perf.NewCollector(100)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/message/{id}/read", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusSeeOther)
	})
	handler := Timing(collector, DefaultSlowRequestMs)(mux)

	for _, id := range []string{"a", "b", "c"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/admin/message/"+id+"/read", nil))
	}

	snap := collector.Snapshot(time.Now().Add(-time.Minute), 10)
	if len(snap.SlowestPaths) != 1 {
		t.Fatalf("SlowestPaths len = %d, want 1", len(snap.SlowestPaths))
	}
	got := snap.SlowestPaths[0]
	if got.Path != "POST /admin/message/{id}/read" {
		t.Errorf("Path = %q", got.Path)
	}
	if got.Count != 3 {
		t.Errorf("Count = %d, want 3", got.Count)
	}
}

// TestTimingMiddleware_RequestIDs verifies each request gets its own ID and status.
func TestTimingMiddleware_RequestIDs(t *testing.T) {
	collector := perf.NewCollector(100)

	fail := timed(collector, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	rr1 := httptest.NewRecorder()
	fail.ServeHTTP(rr1, httptest.NewRequest("GET", "/fail", nil))
	if rr1.Code != http.StatusInternalServerError {
		t.Errorf("request 1 status = %d, want 500", rr1.Code)
	}

	ok := timed(collector, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	rr2 := httptest.NewRecorder()
	ok.ServeHTTP(rr2, httptest.NewRequest("GET", "/ok", nil))
	if rr2.Code != http.StatusOK {
		t.Errorf("request 2 status = %d, want 200", rr2.Code)
	}

	id1, id2 := rr1.Header().Get("X-Request-ID"), rr2.Header().Get("X-Request-ID")
	if id1 == "" || id2 == "" || id1 == id2 {
		t.Errorf("X-Request-ID = %q, %q; want two distinct values", id1, id2)
	}
	if rr2.Body.String() != "ok" {
		t.Errorf("body = %q", rr2.Body.String())
	}
}

// TestTimingMiddleware_NilCollector verifies middleware works without a collector.
func TestTimingMiddleware_NilCollector(t *testing.T) {
	handler := Timing(nil, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}
