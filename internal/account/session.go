// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillboard Contributors

package account

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/samber/oops"
)

// SessionTokenBytes is the size of the random session token (64 hex chars).
const SessionTokenBytes = 32

// Session binds a client-held token to an optional account identifier.
// A nil AccountID means the session is anonymous.
type Session struct {
	Token     string
	AccountID *int64
}

// NewSession creates an anonymous session with a fresh token.
func NewSession() (*Session, error) {
	token, err := GenerateSessionToken()
	if err != nil {
		return nil, err
	}
	return &Session{Token: token}, nil
}

// Authenticated returns true if the session is bound to an account.
func (s *Session) Authenticated() bool {
	return s.AccountID != nil
}

// Bind attaches the session to an account.
func (s *Session) Bind(accountID int64) {
	s.AccountID = &accountID
}

// Clear detaches the session from its account, returning it to anonymous.
func (s *Session) Clear() {
	s.AccountID = nil
}

// GenerateSessionToken creates a secure random token. The plaintext token
// is held by the client; the store keys records by its hash.
func GenerateSessionToken() (string, error) {
	buf := make([]byte, SessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", oops.Code("SESSION_TOKEN_GENERATE_FAILED").
			With("operation", "crypto/rand.Read").
			Wrap(err)
	}
	return hex.EncodeToString(buf), nil
}

// HashSessionToken computes the SHA256 hash of a session token. Stores
// never see the plaintext token.
func HashSessionToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// SessionStore manages session persistence with expiration.
type SessionStore interface {
	// Get retrieves the session for a token. Returns ErrNotFound when the
	// token is unknown or the session has expired.
	Get(ctx context.Context, token string) (*Session, error)

	// Save persists the session and resets its TTL.
	Save(ctx context.Context, sess *Session) error

	// Delete removes the session for a token. Deleting an unknown token
	// is not an error.
	Delete(ctx context.Context, token string) error
}
