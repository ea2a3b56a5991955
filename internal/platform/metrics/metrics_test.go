package metrics

import (
	"testing"
	"time"
)

func TestCollectorSnapshot(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(500, 30*time.Millisecond)
	c.Record(429, 20*time.Millisecond)

	snap := c.Snapshot()
	if snap.RequestsTotal != 3 {
		t.Fatalf("expected 3 requests, got %d", snap.RequestsTotal)
	}
	if snap.ErrorsTotal != 1 {
		t.Fatalf("expected 1 server error, got %d", snap.ErrorsTotal)
	}
	if snap.RateLimitedTotal != 1 {
		t.Fatalf("expected 1 rate-limited request, got %d", snap.RateLimitedTotal)
	}
	if snap.AvgDurationMs != 20 {
		t.Fatalf("expected 20ms average, got %v", snap.AvgDurationMs)
	}
}

func TestCollectorEmptySnapshot(t *testing.T) {
	snap := New().Snapshot()
	if snap.RequestsTotal != 0 || snap.AvgDurationMs != 0 {
		t.Fatalf("expected zero snapshot, got %+v", snap)
	}
}
