package middleware

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterFixedWindow(t *testing.T) {
	limiter := NewRateLimiter()

	for i := 0; i < 3; i++ {
		if !limiter.Allow("apply:key", 3, time.Minute) {
			t.Fatalf("expected request %d to pass", i+1)
		}
	}
	if limiter.Allow("apply:key", 3, time.Minute) {
		t.Fatal("expected fourth request to be limited")
	}
	if !limiter.Allow("apply:other", 3, time.Minute) {
		t.Fatal("expected independent key to pass")
	}
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	limiter := NewRateLimiter()

	if !limiter.Allow("apply:key", 1, 10*time.Millisecond) {
		t.Fatal("expected first request to pass")
	}
	if limiter.Allow("apply:key", 1, 10*time.Millisecond) {
		t.Fatal("expected second request to be limited")
	}
	time.Sleep(15 * time.Millisecond)
	if !limiter.Allow("apply:key", 1, 10*time.Millisecond) {
		t.Fatal("expected a fresh window after expiry")
	}
}

func TestClientIPPrefersForwardedHeader(t *testing.T) {
	req := httptest.NewRequest("GET", "/jobs", nil)
	req.RemoteAddr = "10.0.0.1:4321"
	if got := ClientIP(req); got != "10.0.0.1" {
		t.Fatalf("expected remote host, got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	if got := ClientIP(req); got != "203.0.113.9" {
		t.Fatalf("expected forwarded address, got %q", got)
	}
}
