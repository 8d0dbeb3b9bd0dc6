package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"vaultkeep/internal/core"
)

const keyPrefix = "ratelimit:"

// TokenVerifier is the subset of the token codec the limiter needs to key
// quotas by principal. Verification failures are not the limiter's concern.
type TokenVerifier interface {
	Verify(token string) (map[string]any, error)
}

// Decision is the outcome of a quota check.
type Decision struct {
	Allowed bool

	// RetryAfter is the remaining window lifetime, returned as a retry hint
	// when the request is rejected.
	RetryAfter time.Duration
}

type Options struct {
	Store    core.CounterStore
	Verifier TokenVerifier

	// WriteLimit applies to mutating methods (POST, PUT, PATCH, DELETE),
	// ReadLimit to everything else.
	WriteLimit int
	ReadLimit  int

	// Window is the fixed interval a quota accumulates over. The TTL is set
	// when a key is first created and never slides.
	Window time.Duration

	// StoreTimeout bounds each counter-store round trip. A timeout is
	// treated like any other store failure.
	StoreTimeout time.Duration
}

// Limiter enforces a per-window request quota against a shared counter
// store. Quota accounting is a single atomic increment-with-expiry per
// request, so concurrent bursts for the same identity can never be
// double-allowed past the limit.
//
// Failure policy: fail-open. If the counter store is unreachable or times
// out, the request is allowed and a warning is logged. This is applied
// uniformly; the limiter contains abuse, it is not an availability gate.
type Limiter struct {
	opts Options
}

func New(opts Options) *Limiter {
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = 5 * time.Second
	}
	return &Limiter{opts: opts}
}

// Check resolves the caller's quota identity and spends one unit of it.
func (l *Limiter) Check(r *http.Request) Decision {
	identity := l.identityFor(r)
	limit := l.limitFor(r.Method)

	ctx, cancel := context.WithTimeout(r.Context(), l.opts.StoreTimeout)
	defer cancel()

	count, remaining, err := l.opts.Store.Incr(ctx, keyPrefix+identity, l.opts.Window)
	if err != nil {
		// fail-open: quota enforcement degrades, requests keep flowing
		log.Ctx(r.Context()).Warn().Err(err).
			Str("identity", identity).
			Msg("counter store unavailable, allowing request")
		return Decision{Allowed: true}
	}

	if count > int64(limit) {
		return Decision{Allowed: false, RetryAfter: remaining}
	}
	return Decision{Allowed: true}
}

// identityFor keys the quota by principal id when the request carries a
// verifiable bearer token, else by caller network address.
//
// A request with an invalid or expired token is deliberately NOT rejected
// here: it falls back to the address identity and proceeds, and the auth
// gate rejects it for authentication reasons instead. Quota enforcement and
// credential validation stay separate concerns.
func (l *Limiter) identityFor(r *http.Request) string {
	token := bearerToken(r)
	if token != "" && l.opts.Verifier != nil {
		claims, err := l.opts.Verifier.Verify(token)
		if err == nil {
			if id, ok := claims["id"].(string); ok && id != "" {
				return id
			}
		}
		// invalid token: fall through to the address identity
	}
	return callerAddr(r)
}

func (l *Limiter) limitFor(method string) int {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return l.opts.WriteLimit
	default:
		return l.opts.ReadLimit
	}
}

func bearerToken(r *http.Request) string {
	return strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer"))
}

func callerAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
