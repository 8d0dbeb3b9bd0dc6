package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
	"unicode"

	"github.com/rs/zerolog/log"

	"vaultkeep/internal/auth"
	"vaultkeep/internal/core"
)

// Fields users may sort and filter listings by. The password digest is
// deliberately absent.
var allowedUserFields = map[string]struct{}{
	"id":            {},
	"username":      {},
	"name":          {},
	"email_id":      {},
	"date_of_birth": {},
}

// UserService implements account management on top of a UserStore.
type UserService struct {
	users        core.UserStore
	codec        *auth.Codec
	auditor      core.Auditor
	storeTimeout time.Duration
}

func NewUserService(users core.UserStore, codec *auth.Codec, auditor core.Auditor, storeTimeout time.Duration) *UserService {
	return &UserService{
		users:        users,
		codec:        codec,
		auditor:      auditor,
		storeTimeout: storeTimeout,
	}
}

func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*core.User, error) {
	logger := log.Ctx(ctx)

	if err := validateNewUser(req); err != nil {
		return nil, httpError(http.StatusBadRequest, err)
	}

	tctx, cancel := s.storeCtx(ctx)
	defer cancel()

	if _, err := s.users.GetByUsername(tctx, req.Username); err == nil {
		return nil, httpError(http.StatusBadRequest, core.ErrDuplicateUsername)
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, httpError(http.StatusInternalServerError, fmt.Errorf("checking username: %w", err))
	}

	digest, err := auth.Hash(req.Password)
	if err != nil {
		return nil, httpError(http.StatusInternalServerError, err)
	}

	u := core.User{
		Username:    req.Username,
		Password:    digest,
		Name:        req.Name,
		EmailID:     req.EmailID,
		DateOfBirth: req.DateOfBirth,
	}
	id, err := s.users.Create(tctx, u)
	if err != nil {
		return nil, httpError(http.StatusInternalServerError, fmt.Errorf("creating user: %w", err))
	}
	u.ID = id

	logger.Info().Str("user_id", id).Msg("user created")
	return &u, nil
}

// Login verifies the credentials and issues a signed token carrying the
// user's public claims. Unknown username and wrong password are rejected
// identically; both attempts are audited.
func (s *UserService) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	logger := log.Ctx(ctx)
	txid, _ := ctx.Value("transaction_id").(string)

	entry := core.AuditEntry{
		ID:     txid,
		Time:   time.Now(),
		Action: core.AuditActionLogin,
	}
	defer func() {
		if err := s.auditor.Log(entry); err != nil {
			logger.Error().Err(err).Msg("failed to write audit log entry for login")
		}
	}()

	tctx, cancel := s.storeCtx(ctx)
	defer cancel()

	u, err := s.users.GetByUsername(tctx, username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			entry.Error = "unknown username"
			return nil, httpError(http.StatusUnauthorized, ErrInvalidCredentials)
		}
		entry.Error = "store failure"
		return nil, httpError(http.StatusInternalServerError, fmt.Errorf("looking up user: %w", err))
	}
	entry.PrincipalID = u.ID

	if !auth.VerifyPassword(password, u.Password) {
		entry.Error = "wrong password"
		return nil, httpError(http.StatusUnauthorized, ErrInvalidCredentials)
	}

	token, err := s.codec.Issue(map[string]any{
		"id":            u.ID,
		"username":      u.Username,
		"name":          u.Name,
		"email_id":      u.EmailID,
		"date_of_birth": u.DateOfBirth,
	}, 0)
	if err != nil {
		entry.Error = "token issuance failed"
		return nil, httpError(http.StatusInternalServerError, err)
	}

	entry.Granted = true
	logger.Info().Str("user_id", u.ID).Msg("user logged in")

	return &TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

func (s *UserService) List(ctx context.Context, sortBy, sortType string, filters map[string]string) ([]core.User, error) {
	if sortBy == "" {
		sortBy = "id"
	}
	if sortType == "" {
		sortType = "asc"
	}

	if _, ok := allowedUserFields[sortBy]; !ok {
		return nil, httpError(http.StatusBadRequest, fmt.Errorf("invalid sort_by field %q", sortBy))
	}
	if sortType != "asc" && sortType != "desc" {
		return nil, httpError(http.StatusBadRequest, fmt.Errorf("invalid sort_type %q", sortType))
	}
	for field := range filters {
		if _, ok := allowedUserFields[field]; !ok {
			return nil, httpError(http.StatusBadRequest, fmt.Errorf("invalid filter field %q", field))
		}
	}

	tctx, cancel := s.storeCtx(ctx)
	defer cancel()

	users, err := s.users.List(tctx, core.ListOptions{
		SortBy:     sortBy,
		Descending: sortType == "desc",
		Filters:    filters,
	})
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return []core.User{}, nil
		}
		return nil, httpError(http.StatusInternalServerError, fmt.Errorf("listing users: %w", err))
	}
	return users, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*core.User, error) {
	tctx, cancel := s.storeCtx(ctx)
	defer cancel()

	u, err := s.users.GetByID(tctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, httpError(http.StatusNotFound, fmt.Errorf("user not found for id: %s", id))
		}
		return nil, httpError(http.StatusInternalServerError, fmt.Errorf("fetching user: %w", err))
	}
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id string, upd core.UserUpdate) error {
	if upd.Username == "" {
		return httpError(http.StatusBadRequest, fmt.Errorf("username must not be empty"))
	}

	tctx, cancel := s.storeCtx(ctx)
	defer cancel()

	if err := s.users.Update(tctx, id, upd); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return httpError(http.StatusNotFound, fmt.Errorf("user not found for id: %s", id))
		}
		return httpError(http.StatusInternalServerError, fmt.Errorf("updating user: %w", err))
	}

	log.Ctx(ctx).Info().Str("user_id", id).Msg("user updated")
	return nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	tctx, cancel := s.storeCtx(ctx)
	defer cancel()

	if err := s.users.Delete(tctx, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return httpError(http.StatusNotFound, fmt.Errorf("user not found for id: %s", id))
		}
		return httpError(http.StatusInternalServerError, fmt.Errorf("deleting user: %w", err))
	}

	log.Ctx(ctx).Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}

func validateNewUser(req CreateUserRequest) error {
	if req.Username == "" {
		return fmt.Errorf("username is required")
	}
	if req.Password == "" {
		return fmt.Errorf("password is required")
	}
	for _, r := range req.Password {
		if unicode.IsUpper(r) {
			return nil
		}
	}
	return fmt.Errorf("password must contain at least one capital letter")
}
