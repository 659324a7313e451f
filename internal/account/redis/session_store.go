// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillboard Contributors

// Package redis implements the session store on Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"

	"github.com/quillboard/quillboard/internal/account"
)

const keyPrefix = "session:"

// sessionRecord is the JSON shape stored in Redis. The token itself is
// never stored; records are keyed by the token's SHA256 hash.
type sessionRecord struct {
	AccountID *int64 `json:"account_id,omitempty"`
}

// SessionStore implements account.SessionStore using Redis with a
// per-session TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis at the given URL and verifies the connection.
func New(ctx context.Context, url string, ttl time.Duration) (*SessionStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, oops.Code("SESSION_STORE_CONFIG_INVALID").
			With("url", url).
			Wrap(err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, oops.Code("SESSION_STORE_CONNECT_FAILED").Wrap(err)
	}

	return &SessionStore{client: client, ttl: ttl}, nil
}

// NewWithClient creates a SessionStore with an existing client (for testing).
func NewWithClient(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Close closes the Redis connection.
func (s *SessionStore) Close() error {
	return s.client.Close() //nolint:wrapcheck // close error passthrough
}

// Ping verifies the Redis connection is alive.
func (s *SessionStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return oops.Code("SESSION_STORE_PING_FAILED").Wrap(err)
	}
	return nil
}

func sessionKey(token string) string {
	return keyPrefix + account.HashSessionToken(token)
}

// Get retrieves the session for a token.
func (s *SessionStore) Get(ctx context.Context, token string) (*account.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, account.ErrNotFound
		}
		return nil, oops.Code("SESSION_GET_FAILED").Wrap(err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, oops.Code("SESSION_DECODE_FAILED").Wrap(err)
	}

	return &account.Session{Token: token, AccountID: rec.AccountID}, nil
}

// Save persists the session and resets its TTL.
func (s *SessionStore) Save(ctx context.Context, sess *account.Session) error {
	data, err := json.Marshal(sessionRecord{AccountID: sess.AccountID})
	if err != nil {
		return oops.Code("SESSION_ENCODE_FAILED").Wrap(err)
	}

	if err := s.client.Set(ctx, sessionKey(sess.Token), data, s.ttl).Err(); err != nil {
		return oops.Code("SESSION_SAVE_FAILED").Wrap(err)
	}
	return nil
}

// Delete removes the session for a token.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return oops.Code("SESSION_DELETE_FAILED").Wrap(err)
	}
	return nil
}

// Compile-time interface check.
var _ account.SessionStore = (*SessionStore)(nil)
