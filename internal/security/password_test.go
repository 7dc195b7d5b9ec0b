package security

import (
	"errors"
	"testing"
)

func TestHashPassword_NeverPlaintextAndSalted(t *testing.T) {
	h1, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if h1 == "password123" {
		t.Fatalf("hash equals plaintext")
	}
	if h1 == h2 {
		t.Fatalf("expected distinct salts per call")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if err := CheckPassword(hash, "password123"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := CheckPassword(hash, "wrong"); !errors.Is(err, ErrMismatch) {
		t.Fatalf("expected ErrMismatch, got %v", err)
	}
	if err := CheckPassword("not-a-bcrypt-hash", "password123"); err == nil || errors.Is(err, ErrMismatch) {
		t.Fatalf("expected a hash format error, got %v", err)
	}
}
