package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"vaultkeep/internal/api/presenter"
	"vaultkeep/internal/auth"
	"vaultkeep/internal/core"
)

const principalKey = "principal"

// PrincipalCtx retrieves the authenticated principal bound by BearerAuth.
func PrincipalCtx(ctx context.Context) (*core.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*core.Principal)
	return p, ok
}

// BearerAuth verifies the bearer token and binds the resulting principal
// to the request context. Missing, malformed, expired and badly signed
// tokens all get the same rejection so callers learn nothing about why
// a token failed.
func BearerAuth(codec *auth.Codec) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))

			claims, err := codec.Verify(tokenStr)
			if err != nil {
				presenter.Error(w, r, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			principal, err := auth.PrincipalFromClaims(claims)
			if err != nil {
				presenter.Error(w, r, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			log.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("sub", principal.ID)
			})

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
