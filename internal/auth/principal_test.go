package auth

import (
	"errors"
	"testing"

	"vaultkeep/internal/core"
)

func TestPrincipalFromClaims(t *testing.T) {
	p, err := PrincipalFromClaims(map[string]any{
		"id":       "u1",
		"username": "alice",
		"name":     "Alice",
		"exp":      float64(1900000000),
	})
	if err != nil {
		t.Fatalf("PrincipalFromClaims() error = %v", err)
	}
	if p.ID != "u1" || p.Username != "alice" {
		t.Errorf("principal = %+v, want id=u1 username=alice", p)
	}
	if p.Claims["name"] != "Alice" {
		t.Errorf("remaining claims = %v, want name=Alice carried over", p.Claims)
	}
}

func TestPrincipalFromClaims_MissingID(t *testing.T) {
	if _, err := PrincipalFromClaims(map[string]any{"username": "alice"}); !errors.Is(err, ErrTokenRejected) {
		t.Errorf("PrincipalFromClaims() error = %v, want ErrTokenRejected", err)
	}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name      string
		principal *core.Principal
		ownerID   string
		wantErr   bool
	}{
		{
			name:      "owner matches",
			principal: &core.Principal{ID: "u1"},
			ownerID:   "u1",
		},
		{
			name:      "owner mismatch",
			principal: &core.Principal{ID: "u1"},
			ownerID:   "u2",
			wantErr:   true,
		},
		{
			name:    "nil principal",
			ownerID: "u1",
			wantErr: true,
		},
		{
			name:      "empty owner id",
			principal: &core.Principal{ID: "u1"},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.principal, tt.ownerID)
			if tt.wantErr && !errors.Is(err, ErrNotOwner) {
				t.Errorf("Authorize() error = %v, want ErrNotOwner", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Authorize() error = %v, want nil", err)
			}
		})
	}
}
