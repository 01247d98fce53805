package auth

import (
	"errors"

	"github.com/mpetrenko/prodstore/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with bcrypt using the given cost.
// Each call produces a different hash because bcrypt embeds a random salt.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", common.ErrorValidation
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPassword compares a plaintext password against a stored bcrypt hash.
// A mismatch yields common.ErrorUnauthorized.
func CheckPassword(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return common.ErrorUnauthorized
		}
		return err
	}
	return nil
}
