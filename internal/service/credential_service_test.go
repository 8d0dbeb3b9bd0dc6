package service

import (
	"context"
	"testing"
	"time"

	"vaultkeep/internal/core"
	"vaultkeep/internal/store"
)

func newCredentialService(t *testing.T) (*CredentialService, string) {
	t.Helper()

	users := store.NewInMemoryUserStore()
	userID, err := users.Create(context.Background(), core.User{Username: "alice"})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}

	svc := NewCredentialService(store.NewInMemoryCredentialStore(), users, time.Second)
	return svc, userID
}

func TestCredentialService_RequiresExistingUser(t *testing.T) {
	svc, _ := newCredentialService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "ghost", core.CredentialUpdate{Title: "GitHub"})
	if err == nil {
		t.Fatal("Create() for unknown user expected error, got nil")
	}
	if got := statusOf(t, err); got != 404 {
		t.Errorf("status = %d, want 404", got)
	}

	if _, err := svc.List(ctx, "ghost", ""); statusOf(t, err) != 404 {
		t.Error("List() for unknown user: want 404")
	}
}

func TestCredentialService_CRUD(t *testing.T) {
	svc, userID := newCredentialService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, userID, core.CredentialUpdate{
		Title:    "GitHub",
		Username: "alice",
		Password: "hunter2",
		URL:      "https://github.com",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := svc.GetByID(ctx, userID, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "GitHub" || got.Username != "alice" {
		t.Errorf("credential = %+v, want title=GitHub username=alice", got)
	}

	if err := svc.Update(ctx, userID, created.ID, core.CredentialUpdate{Title: "GitHub (work)"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, err = svc.GetByID(ctx, userID, created.ID)
	if err != nil {
		t.Fatalf("GetByID() after update error = %v", err)
	}
	if got.Title != "GitHub (work)" {
		t.Errorf("title = %q, want updated value", got.Title)
	}

	if err := svc.Delete(ctx, userID, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.GetByID(ctx, userID, created.ID); statusOf(t, err) != 404 {
		t.Error("GetByID() after delete: want 404")
	}
}

func TestCredentialService_CreateRequiresTitle(t *testing.T) {
	svc, userID := newCredentialService(t)

	_, err := svc.Create(context.Background(), userID, core.CredentialUpdate{Username: "alice"})
	if err == nil {
		t.Fatal("Create() without title expected error, got nil")
	}
	if got := statusOf(t, err); got != 400 {
		t.Errorf("status = %d, want 400", got)
	}
}

func TestCredentialService_UpdateDeleteNotFound(t *testing.T) {
	svc, userID := newCredentialService(t)
	ctx := context.Background()

	if err := svc.Update(ctx, userID, "missing", core.CredentialUpdate{Title: "x"}); statusOf(t, err) != 404 {
		t.Error("Update() on missing credential: want 404")
	}
	if err := svc.Delete(ctx, userID, "missing"); statusOf(t, err) != 404 {
		t.Error("Delete() on missing credential: want 404")
	}
}
