package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"vaultkeep/internal/api/middleware"
	"vaultkeep/internal/api/presenter"
	"vaultkeep/internal/core"
	"vaultkeep/internal/service"
)

// handleRegister creates a new account. This is the only unauthenticated
// write endpoint.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload service.CreateUserRequest
	if err := DecodePayload(r, &payload, false); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("failed to decode register payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	user, err := s.users.Create(r.Context(), payload)
	if err != nil {
		presenter.Err(w, r, err, "failed to create user")
		return
	}
	presenter.JSON(w, r, user, http.StatusCreated)
}

type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin exchanges credentials for a signed bearer token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := DecodePayload(r, &payload, false); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("failed to decode login payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	token, err := s.users.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		presenter.Err(w, r, err, "login failed")
		return
	}
	presenter.JSON(w, r, token, http.StatusOK)
}

// handleListUsers lists accounts. sort_by and sort_type control ordering,
// every other query parameter is an exact-match filter.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sortBy := q.Get("sort_by")
	sortType := q.Get("sort_type")

	filters := make(map[string]string)
	for field, values := range q {
		if field == "sort_by" || field == "sort_type" || len(values) == 0 {
			continue
		}
		filters[field] = values[0]
	}

	users, err := s.users.List(r.Context(), sortBy, sortType, filters)
	if err != nil {
		presenter.Err(w, r, err, "failed to list users")
		return
	}
	presenter.JSON(w, r, users, http.StatusOK)
}

// handleMe echoes the verified claims of the calling principal.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalCtx(r.Context())
	if !ok {
		presenter.Error(w, r, "invalid or expired token", http.StatusUnauthorized)
		return
	}
	presenter.JSON(w, r, principal, http.StatusOK)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.authorizeOwner(w, r, id) {
		return
	}

	user, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		presenter.Err(w, r, err, "failed to fetch user")
		return
	}
	presenter.JSON(w, r, user, http.StatusOK)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.authorizeOwner(w, r, id) {
		return
	}

	var payload core.UserUpdate
	if err := DecodePayload(r, &payload, false); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("failed to decode user update payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	if err := s.users.Update(r.Context(), id, payload); err != nil {
		presenter.Err(w, r, err, "failed to update user")
		return
	}
	presenter.JSON(w, r, map[string]string{"message": "user updated"}, http.StatusOK)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.authorizeOwner(w, r, id) {
		return
	}

	if err := s.users.Delete(r.Context(), id); err != nil {
		presenter.Err(w, r, err, "failed to delete user")
		return
	}
	presenter.JSON(w, r, map[string]string{"message": "user deleted"}, http.StatusOK)
}
