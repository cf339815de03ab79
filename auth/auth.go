// Package auth provides credential hashing and session tracking.
//
// Identity is carried through handlers as an explicit Session value in the
// request context, never as ambient globals. Secrets are stored as bcrypt
// hashes in the roster's credential column.
package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashSecret hashes a credential secret for storage in the roster.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckSecret reports whether secret matches the stored hash.
func CheckSecret(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
