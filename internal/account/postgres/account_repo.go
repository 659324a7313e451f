// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillboard Contributors

// Package postgres implements account persistence on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/quillboard/quillboard/internal/account"
)

// DB is the subset of pgxpool.Pool the repositories use. Declared as an
// interface so tests can substitute a pgxmock pool.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AccountRepository implements account.Repository using PostgreSQL.
type AccountRepository struct {
	db DB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// Create stores a new account and populates its ID and timestamps.
func (r *AccountRepository) Create(ctx context.Context, acct *account.Account) error {
	now := time.Now().UTC()

	err := r.db.QueryRow(ctx, `
		INSERT INTO accounts (username, password_digest, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING id
	`, acct.Username, acct.PasswordDigest, now).Scan(&acct.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return oops.Code("ACCOUNT_USERNAME_TAKEN").
				With("username", acct.Username).
				Wrap(account.ErrUsernameTaken)
		}
		return oops.Code("ACCOUNT_CREATE_FAILED").
			With("operation", "insert account").
			With("username", acct.Username).
			Wrap(err)
	}

	acct.CreatedAt = now
	acct.UpdatedAt = now
	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, username, password_digest, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`, id)

	acct, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").
			With("id", id).
			Wrap(account.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_BY_ID_FAILED").
			With("operation", "get account by id").
			With("id", id).
			Wrap(err)
	}
	return acct, nil
}

// GetByUsername retrieves an account by exact username match. Usernames
// are case-sensitive, so no LOWER() normalization is applied.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*account.Account, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, username, password_digest, created_at, updated_at
		FROM accounts
		WHERE username = $1
	`, username)

	acct, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").
			With("username", username).
			Wrap(account.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_BY_USERNAME_FAILED").
			With("operation", "get account by username").
			With("username", username).
			Wrap(err)
	}
	return acct, nil
}

// List returns all accounts ordered by ID.
func (r *AccountRepository) List(ctx context.Context) ([]*account.Account, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, username, password_digest, created_at, updated_at
		FROM accounts
		ORDER BY id
	`)
	if err != nil {
		return nil, oops.Code("ACCOUNT_LIST_FAILED").
			With("operation", "list accounts").
			Wrap(err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, oops.Code("ACCOUNT_LIST_FAILED").
				With("operation", "scan account").
				Wrap(err)
		}
		accounts = append(accounts, acct)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("ACCOUNT_LIST_FAILED").
			With("operation", "iterate accounts").
			Wrap(err)
	}
	return accounts, nil
}

// UpdateUsername sets a new username and refreshes updated_at.
func (r *AccountRepository) UpdateUsername(ctx context.Context, id int64, username string) (*account.Account, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE accounts SET username = $2, updated_at = $3
		WHERE id = $1
		RETURNING id, username, password_digest, created_at, updated_at
	`, id, username, time.Now().UTC())

	acct, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").
			With("id", id).
			Wrap(account.ErrNotFound)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, oops.Code("ACCOUNT_USERNAME_TAKEN").
				With("username", username).
				Wrap(account.ErrUsernameTaken)
		}
		return nil, oops.Code("ACCOUNT_UPDATE_USERNAME_FAILED").
			With("operation", "update username").
			With("id", id).
			Wrap(err)
	}
	return acct, nil
}

// Delete removes an account.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `
		DELETE FROM accounts WHERE id = $1
	`, id)
	if err != nil {
		return oops.Code("ACCOUNT_DELETE_FAILED").
			With("operation", "delete account").
			With("id", id).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("ACCOUNT_NOT_FOUND").
			With("id", id).
			Wrap(account.ErrNotFound)
	}
	return nil
}

// scanAccount scans a single row into an Account. Callers are responsible
// for handling pgx.ErrNoRows.
func scanAccount(row pgx.Row) (*account.Account, error) {
	var acct account.Account
	err := row.Scan(
		&acct.ID,
		&acct.Username,
		&acct.PasswordDigest,
		&acct.CreatedAt,
		&acct.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("ACCOUNT_SCAN_FAILED").
			With("operation", "scan account").
			Wrap(err)
	}
	return &acct, nil
}

// Compile-time interface check.
var _ account.Repository = (*AccountRepository)(nil)
