package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestCodec(t *testing.T, secret string) *Codec {
	t.Helper()
	c, err := NewCodec(secret, "HS256", 30*time.Minute)
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}
	return c
}

func TestNewCodec_ConfigErrors(t *testing.T) {
	tests := []struct {
		name      string
		secret    string
		algorithm string
	}{
		{name: "missing secret", secret: "", algorithm: "HS256"},
		{name: "unknown algorithm", secret: "s3cret", algorithm: "HS9000"},
		{name: "non-HMAC algorithm", secret: "s3cret", algorithm: "RS256"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCodec(tt.secret, tt.algorithm, time.Minute); err == nil {
				t.Fatalf("NewCodec(%q, %q) expected error, got nil", tt.secret, tt.algorithm)
			}
		})
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	c := newTestCodec(t, "s3cret")

	in := map[string]any{
		"id":       "u1",
		"username": "alice",
		"name":     "Alice",
	}

	token, err := c.Issue(in, 0)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := c.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	for k, want := range in {
		if got := claims[k]; got != want {
			t.Errorf("claim %q = %v, want %v", k, got, want)
		}
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		t.Fatalf("exp claim missing or not numeric: %v", claims["exp"])
	}
	if int64(exp) <= time.Now().Unix() {
		t.Errorf("exp = %v, want a future timestamp", int64(exp))
	}
}

func TestCodec_VerifyRejectsUniformly(t *testing.T) {
	c := newTestCodec(t, "s3cret")
	other := newTestCodec(t, "different-secret")

	wrongSecret, err := other.Issue(map[string]any{"id": "u1"}, time.Minute)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "u1",
		"exp": jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte("s3cret"))
	if err != nil {
		t.Fatalf("signing expired token: %v", err)
	}

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": "u1",
	}).SignedString([]byte("s3cret"))
	if err != nil {
		t.Fatalf("signing exp-less token: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "malformed", token: "definitely.not.a.jwt"},
		{name: "wrong secret", token: wrongSecret},
		{name: "expired", token: expired},
		{name: "missing exp", token: noExp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := c.Verify(tt.token)
			if claims != nil {
				t.Errorf("Verify() claims = %v, want nil", claims)
			}
			// every cause must collapse into the same rejection
			if !errors.Is(err, ErrTokenRejected) {
				t.Errorf("Verify() error = %v, want ErrTokenRejected", err)
			}
		})
	}
}

func TestCodec_IssueUsesDefaultTTL(t *testing.T) {
	c, err := NewCodec("s3cret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}

	token, err := c.Issue(map[string]any{"id": "u1"}, 0)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	claims, err := c.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	exp := int64(claims["exp"].(float64))
	want := time.Now().Add(time.Hour).Unix()
	if exp < want-5 || exp > want+5 {
		t.Errorf("exp = %d, want roughly %d", exp, want)
	}
}
