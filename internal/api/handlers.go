package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"vaultkeep/internal/api/middleware"
	"vaultkeep/internal/api/presenter"
	"vaultkeep/internal/auth"
	"vaultkeep/internal/core"
)

func DecodePayload(r *http.Request, dest any, allowEmpty bool) error {
	switch r.Header.Get("Content-Type") {
	case "application/json", "":
		// strict encoding for JSON
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(dest); err != nil {
			if !errors.Is(err, io.EOF) || !allowEmpty {
				return err
			}
		}
		// ensure there's no extra data
		if dec.More() {
			return errors.New("extra data in request body")
		}
		return nil
	default:
		return errors.New("unsupported content type")
	}
}

// authorizeOwner enforces the ownership rule on resource-scoped routes.
// A mismatch is answered with 403 and audited; it is never downgraded to
// a 404, so "exists but not yours" and "does not exist" stay distinct.
func (s *Server) authorizeOwner(w http.ResponseWriter, r *http.Request, ownerID string) bool {
	principal, ok := middleware.PrincipalCtx(r.Context())
	if !ok {
		presenter.Error(w, r, "invalid or expired token", http.StatusUnauthorized)
		return false
	}

	if err := auth.Authorize(principal, ownerID); err != nil {
		entry := core.AuditEntry{
			ID:          middleware.TransactionCtx(r.Context()),
			Time:        time.Now(),
			Action:      core.AuditActionDenied,
			PrincipalID: principal.ID,
			Resource:    r.URL.Path,
			Error:       err.Error(),
		}
		if logErr := s.auditor.Log(entry); logErr != nil {
			log.Ctx(r.Context()).Error().Err(logErr).Msg("failed to write audit log")
		}

		log.Ctx(r.Context()).Warn().
			Str("owner_id", ownerID).
			Msg("ownership check failed")
		presenter.Error(w, r, "not authorized", http.StatusForbidden)
		return false
	}
	return true
}
