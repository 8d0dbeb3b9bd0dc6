package auth

import (
	"errors"

	"github.com/mitchellh/mapstructure"

	"vaultkeep/internal/core"
)

// ErrNotOwner is returned when a principal acts on a resource it does not own.
// This is an authorization failure distinct from authentication: the token was
// valid, the identity just isn't allowed to touch the resource.
var ErrNotOwner = errors.New("not authorized")

// PrincipalFromClaims builds a Principal from verified token claims.
// Claims without a subject id are rejected the same way a bad token is.
func PrincipalFromClaims(claims map[string]any) (*core.Principal, error) {
	var p core.Principal
	if err := mapstructure.Decode(claims, &p); err != nil {
		return nil, ErrTokenRejected
	}
	if p.ID == "" {
		return nil, ErrTokenRejected
	}
	return &p, nil
}

// Authorize enforces the ownership rule: a principal may act on resource
// owner id R iff its own id equals R. The check runs on every
// resource-scoped operation and is never downgraded to "not found".
func Authorize(p *core.Principal, ownerID string) error {
	if p == nil || ownerID == "" || p.ID != ownerID {
		return ErrNotOwner
	}
	return nil
}
