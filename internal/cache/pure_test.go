package cache

// Tests in this file do not require a running Redis instance.

import (
	"context"
	"testing"
)

func TestCheckAuthRateLimit_ZeroRateIsUnlimited(t *testing.T) {
	t.Parallel()

	// Rate 0 means no limit; the check must short-circuit before any
	// Redis call (the client here is nil) and must not divide by the rate.
	c := &Cache{}

	for i := 0; i < 50; i++ {
		result, err := c.CheckAuthRateLimit(context.Background(), "203.0.113.1", 0, 10)
		if err != nil {
			t.Fatalf("CheckAuthRateLimit failed: %v", err)
		}
		if !result.Allowed {
			t.Fatalf("request %d denied with unlimited rate", i+1)
		}
		if result.Remaining != 10 {
			t.Errorf("remaining = %d, want full burst 10", result.Remaining)
		}
	}
}

func TestCheckAuthRateLimit_NegativeRateIsUnlimited(t *testing.T) {
	t.Parallel()

	c := &Cache{}

	result, err := c.CheckAuthRateLimit(context.Background(), "203.0.113.1", -1, 5)
	if err != nil {
		t.Fatalf("CheckAuthRateLimit failed: %v", err)
	}
	if !result.Allowed {
		t.Error("negative rate should behave as unlimited, not deny")
	}
}

func TestHashIP(t *testing.T) {
	t.Parallel()

	a := hashIP("203.0.113.10")
	b := hashIP("203.0.113.11")

	if a == b {
		t.Error("distinct IPs should hash differently")
	}
	if a != hashIP("203.0.113.10") {
		t.Error("hash must be stable for the same IP")
	}
	if len(a) != 16 {
		t.Errorf("expected 16 hex chars, got %d", len(a))
	}
	if a == "203.0.113.10" {
		t.Error("raw IP must not appear in the key")
	}
}
