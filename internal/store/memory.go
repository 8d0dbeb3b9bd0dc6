package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/xid"

	"vaultkeep/internal/core"
)

var (
	_ core.UserStore       = (*InMemoryUserStore)(nil)
	_ core.CredentialStore = (*InMemoryCredentialStore)(nil)
)

// InMemoryUserStore keeps users in process memory. Used by tests and dev
// mode; it mirrors the Mongo store's soft-delete and filtering behavior.
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]core.User
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		users: make(map[string]core.User),
	}
}

func (s *InMemoryUserStore) Create(_ context.Context, u core.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = xid.New().String()
	now := time.Now().Unix()
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = u
	return u.ID, nil
}

func (s *InMemoryUserStore) GetByID(_ context.Context, id string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok || u.IsDeleted {
		return nil, core.ErrNotFound
	}
	return &u, nil
}

func (s *InMemoryUserStore) GetByUsername(_ context.Context, username string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username && !u.IsDeleted {
			return &u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (s *InMemoryUserStore) List(_ context.Context, opts core.ListOptions) ([]core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var users []core.User
	for _, u := range s.users {
		if u.IsDeleted || !matchesFilters(u, opts.Filters) {
			continue
		}
		users = append(users, u)
	}

	sort.Slice(users, func(i, j int) bool {
		less := userField(users[i], opts.SortBy) < userField(users[j], opts.SortBy)
		if opts.Descending {
			return !less
		}
		return less
	})
	return users, nil
}

func (s *InMemoryUserStore) Update(_ context.Context, id string, upd core.UserUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok || u.IsDeleted {
		return core.ErrNotFound
	}
	u.Username = upd.Username
	u.Name = upd.Name
	u.EmailID = upd.EmailID
	u.DateOfBirth = upd.DateOfBirth
	u.UpdatedAt = time.Now().Unix()
	s.users[id] = u
	return nil
}

func (s *InMemoryUserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok || u.IsDeleted {
		return core.ErrNotFound
	}
	u.IsDeleted = true
	u.UpdatedAt = time.Now().Unix()
	s.users[id] = u
	return nil
}

func matchesFilters(u core.User, filters map[string]string) bool {
	for field, value := range filters {
		if userField(u, field) != value {
			return false
		}
	}
	return true
}

func userField(u core.User, field string) string {
	switch field {
	case "username":
		return u.Username
	case "name":
		return u.Name
	case "email_id":
		return u.EmailID
	case "date_of_birth":
		return u.DateOfBirth
	default:
		return u.ID
	}
}

// InMemoryCredentialStore keeps vault entries in process memory.
type InMemoryCredentialStore struct {
	mu    sync.RWMutex
	creds map[string]core.Credential
}

func NewInMemoryCredentialStore() *InMemoryCredentialStore {
	return &InMemoryCredentialStore{
		creds: make(map[string]core.Credential),
	}
}

func (s *InMemoryCredentialStore) Create(_ context.Context, c core.Credential) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = xid.New().String()
	now := time.Now().Unix()
	c.CreatedAt, c.UpdatedAt = now, now
	s.creds[c.ID] = c
	return c.ID, nil
}

func (s *InMemoryCredentialStore) GetByID(_ context.Context, userID, credentialID string) (*core.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.creds[credentialID]
	if !ok || c.IsDeleted || c.UserID != userID {
		return nil, core.ErrNotFound
	}
	return &c, nil
}

func (s *InMemoryCredentialStore) ListByUser(_ context.Context, userID, search string) ([]core.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var creds []core.Credential
	for _, c := range s.creds {
		if c.IsDeleted || c.UserID != userID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Title), strings.ToLower(search)) {
			continue
		}
		creds = append(creds, c)
	}

	sort.Slice(creds, func(i, j int) bool { return creds[i].ID < creds[j].ID })
	return creds, nil
}

func (s *InMemoryCredentialStore) Update(_ context.Context, userID, credentialID string, upd core.CredentialUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.creds[credentialID]
	if !ok || c.IsDeleted || c.UserID != userID {
		return core.ErrNotFound
	}
	c.Title = upd.Title
	c.Username = upd.Username
	c.Password = upd.Password
	c.URL = upd.URL
	c.Notes = upd.Notes
	c.UpdatedAt = time.Now().Unix()
	s.creds[credentialID] = c
	return nil
}

func (s *InMemoryCredentialStore) Delete(_ context.Context, userID, credentialID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.creds[credentialID]
	if !ok || c.IsDeleted || c.UserID != userID {
		return core.ErrNotFound
	}
	c.IsDeleted = true
	c.UpdatedAt = time.Now().Unix()
	s.creds[credentialID] = c
	return nil
}
