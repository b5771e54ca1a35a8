package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPinFormat = errors.New("pin must be exactly 4 digits")
)

// HashPin hashes a wallet PIN with bcrypt. The PIN is never stored
// in plaintext.
func HashPin(pin string) (string, error) {
	if !ValidPin(pin) {
		return "", ErrInvalidPinFormat
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPin compares a candidate PIN against the stored hash.
// bcrypt's compare is constant-time over the hash.
func CheckPin(hashedPin, plainPin string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPin), []byte(plainPin))
	return err == nil
}

// ValidPin reports whether pin is exactly 4 numeric characters.
func ValidPin(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
