package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenRejected is the single error returned for every verification
// failure. Malformed, badly signed, expired and exp-less tokens are
// indistinguishable to callers so rejections leak nothing about the cause.
var ErrTokenRejected = errors.New("token rejected")

// Codec signs and verifies time-bound claim sets.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewCodec builds a codec for the given HMAC algorithm (HS256/HS384/HS512).
// An empty secret or unknown algorithm is a configuration error; the caller
// is expected to treat it as fatal at startup.
func NewCodec(secret, algorithm string, defaultTTL time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("signing secret is required")
	}
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not an HMAC method", algorithm)
	}
	if defaultTTL <= 0 {
		return nil, fmt.Errorf("default token ttl must be positive")
	}
	return &Codec{
		secret: []byte(secret),
		method: method,
		ttl:    defaultTTL,
	}, nil
}

// Issue merges claims with an absolute expiry (now + ttl) and signs the
// result. A non-positive ttl selects the configured default.
func (c *Codec) Issue(claims map[string]any, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = c.ttl
	}

	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	mc["exp"] = jwt.NewNumericDate(time.Now().Add(ttl))

	signed, err := jwt.NewWithClaims(c.method, mc).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify re-checks signature and expiry and returns the decoded claims.
// Any failure collapses into ErrTokenRejected.
func (c *Codec) Verify(tokenStr string) (map[string]any, error) {
	if tokenStr == "" {
		return nil, ErrTokenRejected
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrTokenRejected
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenRejected
	}
	return claims, nil
}
