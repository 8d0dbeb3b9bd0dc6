package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"vaultkeep/internal/core"
)

// CredentialService manages vault entries. Every operation first checks
// that the owning user exists and is not deleted.
type CredentialService struct {
	creds        core.CredentialStore
	users        core.UserStore
	storeTimeout time.Duration
}

func NewCredentialService(creds core.CredentialStore, users core.UserStore, storeTimeout time.Duration) *CredentialService {
	return &CredentialService{
		creds:        creds,
		users:        users,
		storeTimeout: storeTimeout,
	}
}

func (s *CredentialService) Create(ctx context.Context, userID string, upd core.CredentialUpdate) (*core.Credential, error) {
	if upd.Title == "" {
		return nil, httpError(http.StatusBadRequest, fmt.Errorf("title is required"))
	}

	tctx, cancel := s.storeCtx(ctx)
	defer cancel()

	if err := s.ensureUser(tctx, userID); err != nil {
		return nil, err
	}

	c := core.Credential{
		UserID:   userID,
		Title:    upd.Title,
		Username: upd.Username,
		Password: upd.Password,
		URL:      upd.URL,
		Notes:    upd.Notes,
	}
	id, err := s.creds.Create(tctx, c)
	if err != nil {
		return nil, httpError(http.StatusInternalServerError, fmt.Errorf("creating credential: %w", err))
	}
	c.ID = id

	log.Ctx(ctx).Info().
		Str("user_id", userID).
		Str("credential_id", id).
		Msg("credential created")
	return &c, nil
}

func (s *CredentialService) GetByID(ctx context.Context, userID, credentialID string) (*core.Credential, error) {
	tctx, cancel := s.storeCtx(ctx)
	defer cancel()

	if err := s.ensureUser(tctx, userID); err != nil {
		return nil, err
	}

	c, err := s.creds.GetByID(tctx, userID, credentialID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, httpError(http.StatusNotFound, fmt.Errorf("credential not found for id: %s", credentialID))
		}
		return nil, httpError(http.StatusInternalServerError, fmt.Errorf("fetching credential: %w", err))
	}
	return c, nil
}

func (s *CredentialService) List(ctx context.Context, userID, search string) ([]core.Credential, error) {
	tctx, cancel := s.storeCtx(ctx)
	defer cancel()

	if err := s.ensureUser(tctx, userID); err != nil {
		return nil, err
	}

	creds, err := s.creds.ListByUser(tctx, userID, search)
	if err != nil {
		return nil, httpError(http.StatusInternalServerError, fmt.Errorf("listing credentials: %w", err))
	}
	return creds, nil
}

func (s *CredentialService) Update(ctx context.Context, userID, credentialID string, upd core.CredentialUpdate) error {
	tctx, cancel := s.storeCtx(ctx)
	defer cancel()

	if err := s.ensureUser(tctx, userID); err != nil {
		return err
	}

	if err := s.creds.Update(tctx, userID, credentialID, upd); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return httpError(http.StatusNotFound, fmt.Errorf("credential not found for id: %s", credentialID))
		}
		return httpError(http.StatusInternalServerError, fmt.Errorf("updating credential: %w", err))
	}

	log.Ctx(ctx).Info().
		Str("user_id", userID).
		Str("credential_id", credentialID).
		Msg("credential updated")
	return nil
}

func (s *CredentialService) Delete(ctx context.Context, userID, credentialID string) error {
	tctx, cancel := s.storeCtx(ctx)
	defer cancel()

	if err := s.ensureUser(tctx, userID); err != nil {
		return err
	}

	if err := s.creds.Delete(tctx, userID, credentialID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return httpError(http.StatusNotFound, fmt.Errorf("credential not found for id: %s", credentialID))
		}
		return httpError(http.StatusInternalServerError, fmt.Errorf("deleting credential: %w", err))
	}

	log.Ctx(ctx).Info().
		Str("user_id", userID).
		Str("credential_id", credentialID).
		Msg("credential deleted")
	return nil
}

func (s *CredentialService) ensureUser(ctx context.Context, userID string) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return httpError(http.StatusNotFound, fmt.Errorf("user not found for id: %s", userID))
		}
		return httpError(http.StatusInternalServerError, fmt.Errorf("checking user: %w", err))
	}
	return nil
}

func (s *CredentialService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}
