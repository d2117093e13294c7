package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"furnitech/internal/adapters/http/perf"
)

// DefaultSlowRequestMs is the default threshold for slow request warnings.
const DefaultSlowRequestMs = 200

var requestSeq atomic.Uint64

// recorder captures what the handler wrote so it can be logged afterwards.
type recorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rec *recorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *recorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rec *recorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

// Timing returns middleware that measures each page request.
// Static files pass straight through. Every other request gets an
// X-Request-ID header, is logged at DEBUG (WARN at or above slowMs)
// and, when collector is non-nil, feeds the dashboard latency panel.
func Timing(collector *perf.Collector, slowMs int) func(http.Handler) http.Handler {
	if slowMs <= 0 {
		slowMs = DefaultSlowRequestMs
	}
	threshold := float64(slowMs)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/static/") {
				next.ServeHTTP(w, r)
				return
			}

			id := requestSeq.Add(1)
			w.Header().Set("X-Request-ID", strconv.FormatUint(id, 10))
			rec := &recorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			// Deferred so a panicking handler is still measured.
			defer func() {
				ms := float64(time.Since(start).Microseconds()) / 1000.0
				level, event := slog.LevelDebug, "request"
				if ms >= threshold {
					level, event = slog.LevelWarn, "slow_request"
				}
				slog.Log(context.Background(), level, event,
					"request_id", id,
					"method", r.Method,
					"path", r.URL.Path,
					"status", rec.status,
					"bytes", rec.bytes,
					"duration_ms", ms,
				)
				if collector == nil {
					return
				}
				collector.Record(perf.Entry{
					Kind:       perf.KindRequest,
					Path:       r.Method + " " + routeLabel(r),
					StatusCode: rec.status,
					DurationMs: ms,
					Timestamp:  start,
				})
			}()

			next.ServeHTTP(rec, r)
		})
	}
}

// routeLabel groups requests by mux pattern so per-id paths share one entry.
func routeLabel(r *http.Request) string {
	if r.Pattern == "" {
		return r.URL.Path
	}
	if _, p, ok := strings.Cut(r.Pattern, " "); ok {
		return p
	}
	return r.Pattern
}
