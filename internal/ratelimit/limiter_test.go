package ratelimit

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"vaultkeep/internal/core"
)

type stubVerifier struct {
	claims map[string]any
	err    error
}

func (v stubVerifier) Verify(string) (map[string]any, error) {
	return v.claims, v.err
}

type failingCounter struct{}

func (failingCounter) Incr(context.Context, string, time.Duration) (int64, time.Duration, error) {
	return 0, 0, errors.New("connection refused")
}

func newTestLimiter(store core.CounterStore, verifier TokenVerifier, write, read int, window time.Duration) *Limiter {
	return New(Options{
		Store:        store,
		Verifier:     verifier,
		WriteLimit:   write,
		ReadLimit:    read,
		Window:       window,
		StoreTimeout: time.Second,
	})
}

func TestLimiter_AllowsUpToLimitThenRejects(t *testing.T) {
	l := newTestLimiter(NewMemoryCounter(), nil, 2, 3, time.Minute)

	for i := 1; i <= 3; i++ {
		r := httptest.NewRequest("GET", "/api/users", nil)
		r.RemoteAddr = "1.2.3.4:5678"
		if dec := l.Check(r); !dec.Allowed {
			t.Fatalf("request %d: rejected, want allowed", i)
		}
	}

	r := httptest.NewRequest("GET", "/api/users", nil)
	r.RemoteAddr = "1.2.3.4:5678"
	dec := l.Check(r)
	if dec.Allowed {
		t.Fatal("request 4: allowed, want rejected")
	}
	if dec.RetryAfter <= 0 || dec.RetryAfter > time.Minute {
		t.Errorf("RetryAfter = %v, want within (0, window]", dec.RetryAfter)
	}
}

func TestLimiter_WriteMethodsUseStricterLimit(t *testing.T) {
	l := newTestLimiter(NewMemoryCounter(), nil, 1, 10, time.Minute)

	for _, method := range []string{"POST", "PUT"} {
		r := httptest.NewRequest(method, "/api/users", nil)
		r.RemoteAddr = "5.6.7.8:1234"

		dec := l.Check(r)
		if method == "POST" && !dec.Allowed {
			t.Fatal("first write: rejected, want allowed")
		}
		if method == "PUT" && dec.Allowed {
			t.Fatal("second write: allowed, want rejected at write limit 1")
		}
	}
}

func TestLimiter_WindowResets(t *testing.T) {
	l := newTestLimiter(NewMemoryCounter(), nil, 10, 1, 50*time.Millisecond)

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "9.9.9.9:1"
	if dec := l.Check(r); !dec.Allowed {
		t.Fatal("first request rejected")
	}
	if dec := l.Check(r); dec.Allowed {
		t.Fatal("second request in the same window allowed")
	}

	time.Sleep(60 * time.Millisecond)

	if dec := l.Check(r); !dec.Allowed {
		t.Fatal("request after window expiry rejected, want fresh quota")
	}
}

// Quota accounting must be atomic: a concurrent burst over the limit gets
// exactly limit requests through, never more.
func TestLimiter_ConcurrentBurstAllowsExactlyLimit(t *testing.T) {
	const limit = 10
	const burst = 50

	l := newTestLimiter(NewMemoryCounter(), nil, 100, limit, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < burst; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := httptest.NewRequest("GET", "/api/users", nil)
			r.RemoteAddr = "1.2.3.4:5678"
			if l.Check(r).Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != limit {
		t.Fatalf("allowed = %d, want exactly %d", allowed, limit)
	}
}

func TestLimiter_IdentityFromValidToken(t *testing.T) {
	store := NewMemoryCounter()
	l := newTestLimiter(store, stubVerifier{claims: map[string]any{"id": "u1"}}, 10, 1, time.Minute)

	// same principal from two different addresses shares one quota
	r1 := httptest.NewRequest("GET", "/", nil)
	r1.RemoteAddr = "1.1.1.1:1"
	r1.Header.Set("Authorization", "Bearer sometoken")

	r2 := httptest.NewRequest("GET", "/", nil)
	r2.RemoteAddr = "2.2.2.2:2"
	r2.Header.Set("Authorization", "Bearer sometoken")

	if dec := l.Check(r1); !dec.Allowed {
		t.Fatal("first request rejected")
	}
	if dec := l.Check(r2); dec.Allowed {
		t.Fatal("second request allowed, want shared principal quota exhausted")
	}
}

// An invalid token must not be rejected by the limiter; it falls back to
// the address identity and is left for the auth gate to reject.
func TestLimiter_InvalidTokenFallsBackToAddress(t *testing.T) {
	l := newTestLimiter(NewMemoryCounter(), stubVerifier{err: errors.New("rejected")}, 10, 2, time.Minute)

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "3.3.3.3:3"
	r.Header.Set("Authorization", "Bearer garbage")

	if dec := l.Check(r); !dec.Allowed {
		t.Fatal("request with invalid token rejected by limiter, want allowed through to auth")
	}

	// the quota it spent belongs to the address identity
	r2 := httptest.NewRequest("GET", "/", nil)
	r2.RemoteAddr = "3.3.3.3:4"
	if dec := l.Check(r2); !dec.Allowed {
		t.Fatal("second address request rejected, want allowed (limit 2)")
	}
	r3 := httptest.NewRequest("GET", "/", nil)
	r3.RemoteAddr = "3.3.3.3:5"
	if dec := l.Check(r3); dec.Allowed {
		t.Fatal("third address request allowed, want address quota exhausted")
	}
}

func TestLimiter_FailsOpenWhenStoreUnavailable(t *testing.T) {
	l := newTestLimiter(failingCounter{}, nil, 1, 1, time.Minute)

	for i := 0; i < 5; i++ {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "4.4.4.4:4"
		if dec := l.Check(r); !dec.Allowed {
			t.Fatalf("request %d rejected, want fail-open allow", i+1)
		}
	}
}

func TestMemoryCounter_TTLOnlySetOnCreation(t *testing.T) {
	store := NewMemoryCounter()

	_, first, err := store.Incr(context.Background(), "k", time.Minute)
	if err != nil {
		t.Fatalf("Incr() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	_, second, err := store.Incr(context.Background(), "k", time.Minute)
	if err != nil {
		t.Fatalf("Incr() error = %v", err)
	}
	if second >= first {
		t.Errorf("remaining ttl grew from %v to %v, want monotonically shrinking window", first, second)
	}
}
