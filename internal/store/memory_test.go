package store

import (
	"context"
	"errors"
	"testing"

	"vaultkeep/internal/core"
)

func TestInMemoryUserStore_SoftDelete(t *testing.T) {
	s := NewInMemoryUserStore()
	ctx := context.Background()

	id, err := s.Create(ctx, core.User{Username: "alice", Name: "Alice"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := s.GetByID(ctx, id); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
	if _, err := s.GetByUsername(ctx, "alice"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("GetByUsername() after delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, id); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestInMemoryUserStore_ListSortAndFilter(t *testing.T) {
	s := NewInMemoryUserStore()
	ctx := context.Background()

	for _, u := range []core.User{
		{Username: "carol", Name: "Carol", EmailID: "carol@example.com"},
		{Username: "alice", Name: "Alice", EmailID: "alice@example.com"},
		{Username: "bob", Name: "Bob", EmailID: "bob@example.com"},
	} {
		if _, err := s.Create(ctx, u); err != nil {
			t.Fatalf("Create(%q) error = %v", u.Username, err)
		}
	}

	users, err := s.List(ctx, core.ListOptions{SortBy: "username"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("List() returned %d users, want 3", len(users))
	}
	if users[0].Username != "alice" || users[2].Username != "carol" {
		t.Errorf("sort order = [%s %s %s], want alphabetical", users[0].Username, users[1].Username, users[2].Username)
	}

	users, err = s.List(ctx, core.ListOptions{SortBy: "username", Descending: true})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if users[0].Username != "carol" {
		t.Errorf("descending sort first = %s, want carol", users[0].Username)
	}

	users, err = s.List(ctx, core.ListOptions{Filters: map[string]string{"username": "bob"}})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 1 || users[0].Username != "bob" {
		t.Errorf("filtered list = %v, want just bob", users)
	}
}

func TestInMemoryCredentialStore_ScopedToOwner(t *testing.T) {
	s := NewInMemoryCredentialStore()
	ctx := context.Background()

	id, err := s.Create(ctx, core.Credential{UserID: "u1", Title: "GitHub"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := s.GetByID(ctx, "u1", id); err != nil {
		t.Errorf("GetByID() as owner error = %v", err)
	}
	// the same entry must be invisible under another user's scope
	if _, err := s.GetByID(ctx, "u2", id); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("GetByID() as non-owner error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "u2", id); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Delete() as non-owner error = %v, want ErrNotFound", err)
	}
}

func TestInMemoryCredentialStore_SearchByTitle(t *testing.T) {
	s := NewInMemoryCredentialStore()
	ctx := context.Background()

	for _, title := range []string{"GitHub", "GitLab", "Bank"} {
		if _, err := s.Create(ctx, core.Credential{UserID: "u1", Title: title}); err != nil {
			t.Fatalf("Create(%q) error = %v", title, err)
		}
	}

	creds, err := s.ListByUser(ctx, "u1", "git")
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(creds) != 2 {
		t.Errorf("search 'git' returned %d entries, want 2", len(creds))
	}

	creds, err = s.ListByUser(ctx, "u1", "")
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(creds) != 3 {
		t.Errorf("unfiltered list returned %d entries, want 3", len(creds))
	}
}
