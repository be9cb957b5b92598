package metrics

import (
	"sync/atomic"
	"time"
)

// Counter is a concurrency-safe monotonic counter.
type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

// GatewayStats tracks outbound gateway traffic for a client instance.
type GatewayStats struct {
	Requests Counter // every outbound call
	Failures Counter // transport errors and non-2xx statuses
}

// Snapshot is a point-in-time copy suitable for logging.
type Snapshot struct {
	Requests uint64 `json:"requests"`
	Failures uint64 `json:"failures"`
}

func (g *GatewayStats) Snapshot() Snapshot {
	return Snapshot{
		Requests: g.Requests.Load(),
		Failures: g.Failures.Load(),
	}
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
