package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Cost is fixed; bcrypt generates a fresh salt on every call.
const Cost = bcrypt.DefaultCost

var ErrMismatch = errors.New("password does not match")

// HashPassword hashes a plain text password with bcrypt.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plaintext password. A wrong
// password yields ErrMismatch; a malformed hash is returned as is.
func CheckPassword(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}
