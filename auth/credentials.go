// Package auth hashes and verifies passwords for user and admin accounts.
package auth

import (
	"errors"
	"strings"
	"sync/atomic"

	"golang.org/x/crypto/bcrypt"
)

const maxPasswordLen = 72 // bcrypt truncates at 72 bytes

// bcrypt hashes start with $2 ($2a, $2b, $2y). Anything else in the
// password column is a legacy plaintext record.
const hashMarker = "$2"

// ErrEmptyPassword is returned when hashing an empty password.
var ErrEmptyPassword = errors.New("auth: password required")

// legacyCompares counts verifications that hit the plaintext branch. Once it
// stays at zero in production the branch can be removed.
var legacyCompares atomic.Int64

// DefaultCost is the bcrypt cost used when the config does not set one.
const DefaultCost = bcrypt.DefaultCost

// HashPassword returns a salted bcrypt hash of password. cost <= 0 selects
// DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if cost <= 0 {
		cost = DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether candidate matches the stored credential.
// Hashed records get a bcrypt comparison. Records without the hash marker
// are compared as plaintext: a deliberate compatibility path for accounts
// created before hashing was introduced, not a security feature. It weakens
// the at-rest guarantee for those records and goes away once they are
// migrated; LegacyCompares tracks how often it still fires.
//
// Always returns a bare match/no-match signal, never an error.
func VerifyPassword(candidate, stored string) bool {
	if len(candidate) > maxPasswordLen {
		return false
	}
	if strings.HasPrefix(stored, hashMarker) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
	}
	legacyCompares.Add(1)
	return stored != "" && candidate == stored
}

// LegacyCompares returns how many verifications used the plaintext branch
// since process start.
func LegacyCompares() int64 {
	return legacyCompares.Load()
}
