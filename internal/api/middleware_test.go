package api

import (
	"testing"
	"time"
)

func TestClientLimiterDropsIdleClients(t *testing.T) {
	now := time.Date(2024, 1, 17, 10, 0, 0, 0, time.UTC)
	cl := newClientLimiter(1, 1)
	cl.now = func() time.Time { return now }
	cl.lastSweep = now

	first := cl.get("10.0.0.1")
	cl.get("10.0.0.2")

	now = now.Add(limiterIdle / 2)
	if cl.get("10.0.0.1") != first {
		t.Fatalf("active client got a new bucket")
	}

	now = now.Add(limiterIdle)
	cl.get("10.0.0.3")
	if _, ok := cl.limiters["10.0.0.2"]; ok {
		t.Fatalf("idle client kept its bucket")
	}
	if len(cl.limiters) != 1 {
		t.Fatalf("%d buckets after sweep, want 1", len(cl.limiters))
	}
}
