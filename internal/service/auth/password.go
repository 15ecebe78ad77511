package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials indicates the supplied password does not match the
// configured hash.
var ErrInvalidCredentials = errors.New("invalid credentials")

// HashPassword returns a bcrypt hash of the given password, suitable for the
// auth.password_hash config value.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares the password against the configured bcrypt hash.
// Returns ErrInvalidCredentials on mismatch.
func VerifyPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
