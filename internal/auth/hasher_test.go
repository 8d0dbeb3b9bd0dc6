package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	digest, err := Hash("Sup3rSecret")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if digest == "Sup3rSecret" {
		t.Fatal("Hash() returned the plaintext")
	}

	if !VerifyPassword("Sup3rSecret", digest) {
		t.Error("VerifyPassword() = false for the correct password")
	}
	if VerifyPassword("WrongPassword", digest) {
		t.Error("VerifyPassword() = true for a wrong password")
	}
}

func TestVerifyPassword_NeverErrors(t *testing.T) {
	tests := []struct {
		name      string
		plaintext string
		digest    string
	}{
		{name: "empty plaintext", plaintext: "", digest: "$2a$10$abcdefghijklmnopqrstuv"},
		{name: "empty digest", plaintext: "password", digest: ""},
		{name: "both empty", plaintext: "", digest: ""},
		{name: "malformed digest", plaintext: "password", digest: "not-a-bcrypt-digest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if VerifyPassword(tt.plaintext, tt.digest) {
				t.Errorf("VerifyPassword(%q, %q) = true, want false", tt.plaintext, tt.digest)
			}
		})
	}
}
