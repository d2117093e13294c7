package projections

import (
	"context"
	"fmt"
	"time"

	"furnitech/internal/adapters/http/perf"
)

// DashboardMessageStore defines the message store interface needed by the dashboard projection.
type DashboardMessageStore interface {
	Count(ctx context.Context) (int, error)
	CountUnread(ctx context.Context) (int, error)
}

// DashboardServiceStore defines the service store interface needed by the dashboard projection.
type DashboardServiceStore interface {
	Count(ctx context.Context) (int, error)
}

// DashboardOutboxStore reports notifications that could not be delivered.
type DashboardOutboxStore interface {
	CountFailed(ctx context.Context) (int, error)
}

// PerfSource yields aggregated timing data.
type PerfSource interface {
	Snapshot(since time.Time, topN int) perf.Snapshot
}

// GetDashboardQuery carries input for the dashboard projection.
type GetDashboardQuery struct {
	Now    time.Time
	Window time.Duration // zero means DefaultPerfWindow
	TopN   int           // zero means DefaultPerfTopN
}

// Defaults for the timing panel.
const (
	DefaultPerfWindow = time.Hour
	DefaultPerfTopN   = 5
)

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	MessageStore DashboardMessageStore
	ServiceStore DashboardServiceStore
	OutboxStore  DashboardOutboxStore // optional
	Perf         PerfSource           // optional: nil leaves the timing panel empty
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	MessageCount int
	UnreadCount  int
	ServiceCount int
	// FailedNotifications counts contact emails that exhausted their retries.
	FailedNotifications int

	HasPerf bool
	Perf    perf.Snapshot
}

// QueryGetDashboard counts messages and services and summarises recent timings.
// PRE: stores are non-nil
// POST: Counts reflect the store at call time
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps) (DashboardResult, error) {
	var res DashboardResult
	var err error

	if res.MessageCount, err = deps.MessageStore.Count(ctx); err != nil {
		return DashboardResult{}, fmt.Errorf("count messages: %w", err)
	}
	if res.UnreadCount, err = deps.MessageStore.CountUnread(ctx); err != nil {
		return DashboardResult{}, fmt.Errorf("count unread: %w", err)
	}
	if res.ServiceCount, err = deps.ServiceStore.Count(ctx); err != nil {
		return DashboardResult{}, fmt.Errorf("count services: %w", err)
	}
	if deps.OutboxStore != nil {
		if res.FailedNotifications, err = deps.OutboxStore.CountFailed(ctx); err != nil {
			return DashboardResult{}, fmt.Errorf("count failed notifications: %w", err)
		}
	}

	if deps.Perf != nil {
		window := query.Window
		if window <= 0 {
			window = DefaultPerfWindow
		}
		topN := query.TopN
		if topN <= 0 {
			topN = DefaultPerfTopN
		}
		now := query.Now
		if now.IsZero() {
			now = time.Now()
		}
		res.Perf = deps.Perf.Snapshot(now.Add(-window), topN)
		res.HasPerf = true
	}
	return res, nil
}
