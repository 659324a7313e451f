// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillboard Contributors

package account

import (
	"context"
	"time"
)

// Input validation constraints for registration.
const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

// Account represents a registered user.
type Account struct {
	ID             int64
	Username       string
	PasswordDigest string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FieldError reports a validation or authentication failure to the client.
// Field names the offending input and may be empty for failures that are
// deliberately not attributed to a single field.
type FieldError struct {
	Field   string
	Message string
}

// Result is the response envelope for account operations: either a
// non-empty list of field errors or a populated account, never both.
type Result struct {
	Errors  []FieldError
	Account *Account
}

// ErrorResult builds a Result carrying a single field error.
func ErrorResult(field, message string) *Result {
	return &Result{Errors: []FieldError{{Field: field, Message: message}}}
}

// Repository manages account persistence.
type Repository interface {
	// Create stores a new account and populates its ID and timestamps.
	// Returns ErrUsernameTaken on a username uniqueness violation.
	Create(ctx context.Context, acct *Account) error

	// GetByID retrieves an account by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id int64) (*Account, error)

	// GetByUsername retrieves an account by exact username match.
	// Returns ErrNotFound if absent.
	GetByUsername(ctx context.Context, username string) (*Account, error)

	// List returns all accounts ordered by ID.
	List(ctx context.Context) ([]*Account, error)

	// UpdateUsername sets a new username and refreshes UpdatedAt.
	// Returns ErrNotFound if the account does not exist and
	// ErrUsernameTaken if the new username collides.
	UpdateUsername(ctx context.Context, id int64, username string) (*Account, error)

	// Delete removes an account. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id int64) error
}
