package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crewwell/crewwell-api/internal/auth"
)

func TestTokenBucketBurst(t *testing.T) {
	// Near-zero refill so the test only observes the burst capacity
	tb := NewTokenBucket(3, 0.0001)

	for i := 0; i < 3; i++ {
		allowed, _, _ := tb.Allow()
		if !allowed {
			t.Fatalf("request %d denied within burst capacity", i+1)
		}
	}

	allowed, remaining, next := tb.Allow()
	if allowed {
		t.Error("request allowed after burst exhausted")
	}
	if remaining != 0 {
		t.Errorf("remaining = %d, want 0", remaining)
	}
	if !next.After(time.Now()) {
		t.Error("nextTokenTime not in the future")
	}
}

func TestTokenBucketRefills(t *testing.T) {
	tb := NewTokenBucket(1, 100) // refills in 10ms

	if allowed, _, _ := tb.Allow(); !allowed {
		t.Fatal("first request denied")
	}
	time.Sleep(30 * time.Millisecond)
	if allowed, _, _ := tb.Allow(); !allowed {
		t.Error("request denied after refill window")
	}
}

func TestTokenBucketCapsAtCapacity(t *testing.T) {
	tb := NewTokenBucket(2, 1000)
	time.Sleep(10 * time.Millisecond) // would refill far past capacity

	count := 0
	for i := 0; i < 10; i++ {
		if allowed, _, _ := tb.Allow(); allowed {
			count++
		} else {
			break
		}
	}
	if count > 3 { // capacity plus at most a refilled token
		t.Errorf("burst of %d exceeds capacity 2", count)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	mw := RateLimitMiddleware(RateLimitConfig{WindowSeconds: 3600, MaxRequests: 1, Burst: 2})
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))

	ident := testIdentity()
	do := func(withIdent bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/sync", nil)
		if withIdent {
			req = req.WithContext(auth.WithIdentity(context.Background(), ident))
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 2; i++ {
		if w := do(true); w.Code != 200 {
			t.Fatalf("request %d status = %d, want 200", i+1, w.Code)
		}
	}

	w := do(true)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}

	// Unauthenticated requests pass through to be rejected by the handler
	if w := do(false); w.Code != 200 {
		t.Errorf("unauthenticated passthrough status = %d, want 200", w.Code)
	}
}
