package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"vaultkeep/internal/api/presenter"
	"vaultkeep/internal/core"
)

// Credential routes are scoped under the owning user's id; every handler
// re-checks ownership before touching the vault.

func (s *Server) handleCreateCredential(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if !s.authorizeOwner(w, r, userID) {
		return
	}

	var payload core.CredentialUpdate
	if err := DecodePayload(r, &payload, false); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("failed to decode credential payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	cred, err := s.creds.Create(r.Context(), userID, payload)
	if err != nil {
		presenter.Err(w, r, err, "failed to create credential")
		return
	}
	presenter.JSON(w, r, cred, http.StatusCreated)
}

func (s *Server) handleListCredentials(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if !s.authorizeOwner(w, r, userID) {
		return
	}

	creds, err := s.creds.List(r.Context(), userID, r.URL.Query().Get("search"))
	if err != nil {
		presenter.Err(w, r, err, "failed to list credentials")
		return
	}
	presenter.JSON(w, r, creds, http.StatusOK)
}

func (s *Server) handleGetCredential(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if !s.authorizeOwner(w, r, userID) {
		return
	}

	cred, err := s.creds.GetByID(r.Context(), userID, r.PathValue("credential_id"))
	if err != nil {
		presenter.Err(w, r, err, "failed to fetch credential")
		return
	}
	presenter.JSON(w, r, cred, http.StatusOK)
}

func (s *Server) handleUpdateCredential(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if !s.authorizeOwner(w, r, userID) {
		return
	}

	var payload core.CredentialUpdate
	if err := DecodePayload(r, &payload, false); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("failed to decode credential update payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	if err := s.creds.Update(r.Context(), userID, r.PathValue("credential_id"), payload); err != nil {
		presenter.Err(w, r, err, "failed to update credential")
		return
	}
	presenter.JSON(w, r, map[string]string{"message": "credential updated"}, http.StatusOK)
}

func (s *Server) handleDeleteCredential(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if !s.authorizeOwner(w, r, userID) {
		return
	}

	if err := s.creds.Delete(r.Context(), userID, r.PathValue("credential_id")); err != nil {
		presenter.Err(w, r, err, "failed to delete credential")
		return
	}
	presenter.JSON(w, r, map[string]string{"message": "credential deleted"}, http.StatusOK)
}
