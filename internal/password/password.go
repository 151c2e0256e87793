// Package password hashes credentials with bcrypt and generates reset tokens.
package password

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// ResetLength is the length of a generated replacement credential.
const ResetLength = 8

// MaxLength is the longest password bcrypt accepts, in bytes.
const MaxLength = 72

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var ErrTooLong = errors.New("password must have at most 72 bytes")

// Hash returns the bcrypt hash of password. cost 0 selects bcrypt.DefaultCost.
func Hash(password string, cost int) (string, error) {
	if len(password) > MaxLength {
		return "", ErrTooLong
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Check reports whether password matches hash.
func Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Generate returns a random credential of n characters from [a-z0-9].
func Generate(n int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, n)
	for i := range out {
		k, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		out[i] = alphabet[k.Int64()]
	}
	return string(out), nil
}
