// Package token derives the lookup keys refresh tokens are stored under.
package token

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest is the hex SHA-256 of a presented token. Only digests are persisted.
func Digest(plainToken string) string {
	sum := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(sum[:])
}
