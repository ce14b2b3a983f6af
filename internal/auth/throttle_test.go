package auth

import (
	"testing"
	"time"
)

func TestThrottleAllowsBudgetThenBlocks(t *testing.T) {
	now := time.Unix(1700000000, 0)
	th := NewThrottle(3)
	th.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !th.Allow("10.0.0.1") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if th.Allow("10.0.0.1") {
		t.Fatalf("4th attempt should be throttled")
	}
	if !th.Allow("10.0.0.2") {
		t.Fatalf("other IPs have their own budget")
	}

	// One token refills every 20s at 3/min.
	now = now.Add(21 * time.Second)
	if !th.Allow("10.0.0.1") {
		t.Fatalf("expected refill")
	}
}

func TestThrottleSweepDropsIdle(t *testing.T) {
	now := time.Unix(1700000000, 0)
	th := NewThrottle(5)
	th.now = func() time.Time { return now }

	th.Allow("a")
	now = now.Add(9 * time.Minute)
	th.Allow("b")
	now = now.Add(2 * time.Minute)

	if n := th.Sweep(); n != 1 {
		t.Fatalf("expected 1 swept, got %d", n)
	}
	if th.size() != 1 {
		t.Fatalf("expected b to remain")
	}
}
