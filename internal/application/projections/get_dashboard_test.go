package projections

import (
	"context"
	"errors"
	"testing"
	"time"

	"furnitech/internal/adapters/http/perf"
)

type mockDashboardMessageStore struct {
	total, unread int
	err           error
}

func (m *mockDashboardMessageStore) Count(_ context.Context) (int, error) {
	return m.total, m.err
}

func (m *mockDashboardMessageStore) CountUnread(_ context.Context) (int, error) {
	return m.unread, m.err
}

type mockDashboardServiceStore struct{ total int }

func (m *mockDashboardServiceStore) Count(_ context.Context) (int, error) {
	return m.total, nil
}

func TestQueryGetDashboard_Counts(t *testing.T) {
	res, err := QueryGetDashboard(context.Background(), GetDashboardQuery{}, GetDashboardDeps{
		MessageStore: &mockDashboardMessageStore{total: 7, unread: 3},
		ServiceStore: &mockDashboardServiceStore{total: 12},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.MessageCount != 7 || res.UnreadCount != 3 || res.ServiceCount != 12 {
		t.Errorf("counts = %d/%d/%d", res.MessageCount, res.UnreadCount, res.ServiceCount)
	}
	if res.HasPerf {
		t.Error("HasPerf should be false without a collector")
	}
}

func TestQueryGetDashboard_PerfWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := perf.NewCollector(16)
	c.Record(perf.Entry{Kind: perf.KindRequest, Path: "GET /", StatusCode: 200, DurationMs: 10, Timestamp: now.Add(-10 * time.Minute)})
	c.Record(perf.Entry{Kind: perf.KindRequest, Path: "GET /old", StatusCode: 200, DurationMs: 99, Timestamp: now.Add(-2 * time.Hour)})

	res, err := QueryGetDashboard(context.Background(), GetDashboardQuery{Now: now}, GetDashboardDeps{
		MessageStore: &mockDashboardMessageStore{},
		ServiceStore: &mockDashboardServiceStore{},
		Perf:         c,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.HasPerf {
		t.Fatal("HasPerf should be true")
	}
	if res.Perf.WindowRequests != 1 {
		t.Errorf("window requests = %d, want 1", res.Perf.WindowRequests)
	}
	if res.Perf.TotalRequests != 2 {
		t.Errorf("total requests = %d, want 2", res.Perf.TotalRequests)
	}
	if len(res.Perf.SlowestPaths) != 1 || res.Perf.SlowestPaths[0].Path != "GET /" {
		t.Errorf("slowest = %+v", res.Perf.SlowestPaths)
	}
}

func TestQueryGetDashboard_StoreError(t *testing.T) {
	boom := errors.New("boom")
	_, err := QueryGetDashboard(context.Background(), GetDashboardQuery{}, GetDashboardDeps{
		MessageStore: &mockDashboardMessageStore{err: boom},
		ServiceStore: &mockDashboardServiceStore{},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
}

type mockDashboardOutboxStore struct{ failed int }

func (m *mockDashboardOutboxStore) CountFailed(_ context.Context) (int, error) {
	return m.failed, nil
}

func TestQueryGetDashboard_FailedNotifications(t *testing.T) {
	res, err := QueryGetDashboard(context.Background(), GetDashboardQuery{}, GetDashboardDeps{
		MessageStore: &mockDashboardMessageStore{},
		ServiceStore: &mockDashboardServiceStore{},
		OutboxStore:  &mockDashboardOutboxStore{failed: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.FailedNotifications != 2 {
		t.Errorf("FailedNotifications = %d, want 2", res.FailedNotifications)
	}
}
