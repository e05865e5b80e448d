package ratelimit

import (
	"testing"
	"time"
)

func TestAllowWithinLimit(t *testing.T) {
	l := NewLimiter(3, time.Minute)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		if !l.Allow("alice") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("alice") {
		t.Fatalf("fourth request should be rejected")
	}
}

func TestLimitIsPerUsername(t *testing.T) {
	l := NewLimiter(1, time.Minute)
	defer l.Stop()

	if !l.Allow("alice") {
		t.Fatalf("alice's first request should be allowed")
	}
	if !l.Allow("bob") {
		t.Fatalf("bob's first request should be allowed")
	}
	if l.Allow("alice") {
		t.Fatalf("alice's second request should be rejected")
	}
}

func TestWindowSlides(t *testing.T) {
	l := NewLimiter(1, 50*time.Millisecond)
	defer l.Stop()

	if !l.Allow("alice") {
		t.Fatalf("first request should be allowed")
	}
	time.Sleep(75 * time.Millisecond)
	if !l.Allow("alice") {
		t.Fatalf("request after window should be allowed")
	}
}

func TestEmptyUsernameNotLimited(t *testing.T) {
	l := NewLimiter(1, time.Minute)
	defer l.Stop()

	for i := 0; i < 5; i++ {
		if !l.Allow("") {
			t.Fatalf("unauthenticated callers are not limited here")
		}
	}
}
