package cliconfig

import (
	"errors"
	"os"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := &CLIConfig{}
	if err := cfg.SetCredential("http://localhost:8080", &Credential{Token: "tok", UserID: "u1"}); err != nil {
		t.Fatalf("SetCredential() error = %v", err)
	}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cred, err := loaded.GetCredential("http://localhost:8080")
	if err != nil {
		t.Fatalf("GetCredential() error = %v", err)
	}
	if cred.Token != "tok" || cred.UserID != "u1" {
		t.Errorf("credential = %+v, want token=tok user=u1", cred)
	}

	if _, err := loaded.GetCredential("http://other:9999"); !errors.Is(err, ErrCredentialNotFound) {
		t.Errorf("unknown server error = %v, want ErrCredentialNotFound", err)
	}
}

func TestSaveKeepsFilePrivate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := Save(&CLIConfig{}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file mode = %o, want 0600", perm)
	}
}
