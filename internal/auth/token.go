// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

// Package auth gates the three write endpoints behind a single static
// bearer token. There is no user database and no session state: an
// operator configures one shared token, distributed out of band, and
// every write request must present it.
package auth

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// HashToken bcrypt-hashes a plaintext bearer token for storage in config.
// bcrypt has a 72-byte input limit, so the plaintext is SHA-256'd first.
func HashToken(plaintext string) (string, error) {
	sum := sha256.Sum256([]byte(plaintext))
	hash, err := bcrypt.GenerateFromPassword(sum[:], bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash token: %w", err)
	}
	return string(hash), nil
}

// Gate holds the bcrypt hash of the one configured bearer token. A nil
// *Gate means auth is disabled: every caller is let through.
type Gate struct {
	hash []byte
}

// NewGate builds a Gate from a bcrypt hash produced by HashToken. An
// empty hash means auth is disabled.
func NewGate(hash string) *Gate {
	if hash == "" {
		return nil
	}
	return &Gate{hash: []byte(hash)}
}

// Check reports whether plaintext matches the configured token.
func (g *Gate) Check(plaintext string) bool {
	if g == nil {
		return true
	}
	if plaintext == "" {
		return false
	}
	sum := sha256.Sum256([]byte(plaintext))
	return bcrypt.CompareHashAndPassword(g.hash, sum[:]) == nil
}
