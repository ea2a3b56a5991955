// Package metrics keeps in-process request counters for the dashboard's
// admin metrics endpoint. Counters are plain atomics; there is no external
// metrics backend.
package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	requests        uint64
	serverErrors    uint64
	rateLimited     uint64
	totalDurationMs uint64
}

func New() *Collector {
	return &Collector{}
}

// Record is called by the access-log middleware once per finished request.
func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.requests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.serverErrors, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// Snapshot is a point-in-time read of the counters. Reads are not mutually
// atomic; a request landing mid-snapshot can skew the average by one.
type Snapshot struct {
	RequestsTotal    uint64  `json:"requestsTotal"`
	ErrorsTotal      uint64  `json:"errorsTotal"`
	RateLimitedTotal uint64  `json:"rateLimitedTotal"`
	TotalDurationMs  uint64  `json:"totalDurationMs"`
	AvgDurationMs    float64 `json:"avgDurationMs"`
}

func (c *Collector) Snapshot() Snapshot {
	snap := Snapshot{
		RequestsTotal:    atomic.LoadUint64(&c.requests),
		ErrorsTotal:      atomic.LoadUint64(&c.serverErrors),
		RateLimitedTotal: atomic.LoadUint64(&c.rateLimited),
		TotalDurationMs:  atomic.LoadUint64(&c.totalDurationMs),
	}
	if snap.RequestsTotal > 0 {
		snap.AvgDurationMs = float64(snap.TotalDurationMs) / float64(snap.RequestsTotal)
	}
	return snap
}
