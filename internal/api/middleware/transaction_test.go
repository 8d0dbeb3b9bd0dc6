package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func TestTransactionIDMiddleware_ReusesHeader(t *testing.T) {
	var seen string
	h := TransactionIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TransactionCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TransactionIDHeader, "tx-abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "tx-abc" {
		t.Errorf("context transaction id = %q, want tx-abc", seen)
	}
	if got := rec.Header().Get(TransactionIDHeader); got != "tx-abc" {
		t.Errorf("response header = %q, want tx-abc", got)
	}
}

func TestTransactionIDMiddleware_MintsWhenAbsent(t *testing.T) {
	var seen string
	h := TransactionIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TransactionCtx(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" || seen == NoTransaction {
		t.Errorf("context transaction id = %q, want a minted id", seen)
	}
	if got := rec.Header().Get(TransactionIDHeader); got != seen {
		t.Errorf("response header = %q, want %q", got, seen)
	}
}

func TestTransactionCtx_NoRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := TransactionCtx(req.Context()); got != NoTransaction {
		t.Errorf("TransactionCtx outside middleware = %q, want %q", got, NoTransaction)
	}
}

// Two requests handled at the same time must each observe their own id;
// the binding lives in the request context, never in shared state.
func TestTransactionIDMiddleware_ConcurrentRequestsAreIsolated(t *testing.T) {
	release := make(chan struct{})
	results := make(map[string]string)
	var mu sync.Mutex

	h := TransactionIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release // hold both requests in flight simultaneously
		mu.Lock()
		results[r.Header.Get("X-Probe")] = TransactionCtx(r.Context())
		mu.Unlock()
	}))

	var wg sync.WaitGroup
	for _, probe := range []struct{ name, txID string }{
		{name: "a", txID: "tx-from-a"},
		{name: "b", txID: ""}, // minted
	} {
		wg.Add(1)
		go func(name, txID string) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-Probe", name)
			if txID != "" {
				req.Header.Set(TransactionIDHeader, txID)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
		}(probe.name, probe.txID)
	}
	close(release)
	wg.Wait()

	if results["a"] != "tx-from-a" {
		t.Errorf("request a saw id %q, want tx-from-a", results["a"])
	}
	if results["b"] == "" || results["b"] == "tx-from-a" {
		t.Errorf("request b saw id %q, want its own minted id", results["b"])
	}
}
