// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillboard Contributors

package account

import (
	"context"
	"errors"

	"github.com/samber/oops"
)

// Messages returned to clients for expected failures. These are part of
// the API contract and exercised by tests; change with care.
const (
	msgUsernameTooShort = "username too short"
	msgPasswordTooShort = "password too short"
	msgUsernameTaken    = "username already taken"
	msgUsernameNotFound = "username not found"
	msgBadCredentials   = "username or password is incorrect"
	msgNotAuthenticated = "not authenticated"
	msgAccountNotFound  = "account not found"
)

// Service implements account management: registration, login, session
// identity, and account CRUD. Expected failures (validation, conflicts,
// bad credentials) are reported as field errors inside Result; only
// unexpected store failures are returned as errors.
type Service struct {
	accounts Repository
	sessions SessionStore
	hasher   PasswordHasher
}

// NewService creates a new Service.
func NewService(accounts Repository, sessions SessionStore, hasher PasswordHasher) (*Service, error) {
	if accounts == nil {
		return nil, oops.Errorf("accounts repository is required")
	}
	if sessions == nil {
		return nil, oops.Errorf("session store is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	return &Service{accounts: accounts, sessions: sessions, hasher: hasher}, nil
}

// ListAccounts returns all accounts.
func (s *Service) ListAccounts(ctx context.Context) ([]*Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, oops.Code("ACCOUNT_LIST_FAILED").Wrap(err)
	}
	return accounts, nil
}

// GetAccount retrieves a single account by ID. Returns ErrNotFound when
// absent; callers treat that as a valid non-error outcome.
func (s *Service) GetAccount(ctx context.Context, id int64) (*Account, error) {
	acct, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, oops.Code("ACCOUNT_GET_FAILED").With("id", id).Wrap(err)
	}
	return acct, nil
}

// CurrentAccount resolves the account bound to the session. An unbound
// session and a stale binding (account deleted after login) are both
// reported as field errors, not system faults.
func (s *Service) CurrentAccount(ctx context.Context, sess *Session) (*Result, error) {
	if sess == nil || !sess.Authenticated() {
		return ErrorResult("", msgNotAuthenticated), nil
	}

	acct, err := s.accounts.GetByID(ctx, *sess.AccountID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Stale session: the account was deleted after login. The
			// binding is left in place; it resolves to nothing forever.
			return ErrorResult("", msgAccountNotFound), nil
		}
		return nil, oops.Code("ACCOUNT_CURRENT_FAILED").Wrap(err)
	}

	return &Result{Account: acct}, nil
}

// Register validates the input, hashes the password, and creates the
// account. Validation runs before hashing so rejected input never pays
// the argon2 cost and never touches the store.
func (s *Service) Register(ctx context.Context, username, password string) (*Result, error) {
	if len(username) < MinUsernameLength {
		return ErrorResult("username", msgUsernameTooShort), nil
	}
	if len(password) < MinPasswordLength {
		return ErrorResult("password", msgPasswordTooShort), nil
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, oops.Code("ACCOUNT_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	acct := &Account{Username: username, PasswordDigest: digest}
	if err := s.accounts.Create(ctx, acct); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			// Expected conflict: two registrations raced, or the name is
			// simply taken. The store's unique constraint decides.
			return ErrorResult("username", msgUsernameTaken), nil
		}
		return nil, oops.Code("ACCOUNT_REGISTER_FAILED").
			With("operation", "insert account").
			With("username", username).
			Wrap(err)
	}

	return &Result{Account: acct}, nil
}

// Login authenticates the credentials and, on success, binds the session
// to the account and persists it. A failed login leaves the session
// untouched. The password-mismatch error deliberately carries no field
// name so the response does not single out which credential was wrong.
func (s *Service) Login(ctx context.Context, sess *Session, username, password string) (*Result, error) {
	acct, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrorResult("username", msgUsernameNotFound), nil
		}
		return nil, oops.Code("ACCOUNT_LOGIN_FAILED").
			With("operation", "get account by username").
			Wrap(err)
	}

	valid, err := s.hasher.Verify(password, acct.PasswordDigest)
	if err != nil {
		return nil, oops.Code("ACCOUNT_LOGIN_FAILED").
			With("operation", "verify password").
			Wrap(err)
	}
	if !valid {
		return ErrorResult("", msgBadCredentials), nil
	}

	sess.Bind(acct.ID)
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, oops.Code("ACCOUNT_SESSION_SAVE_FAILED").
			With("operation", "persist session").
			Wrap(err)
	}

	return &Result{Account: acct}, nil
}

// Logout clears the session binding and removes the stored session.
func (s *Service) Logout(ctx context.Context, sess *Session) error {
	if sess == nil {
		return nil
	}
	sess.Clear()
	if err := s.sessions.Delete(ctx, sess.Token); err != nil {
		return oops.Code("ACCOUNT_LOGOUT_FAILED").
			With("operation", "delete session").
			Wrap(err)
	}
	return nil
}

// UpdateUsername sets a new username for an account. An empty username is
// an idempotent no-op returning the unchanged account. The new username
// is not re-validated for length; a uniqueness collision surfaces as
// ErrUsernameTaken from the store.
func (s *Service) UpdateUsername(ctx context.Context, id int64, username string) (*Account, error) {
	if username == "" {
		return s.GetAccount(ctx, id)
	}

	acct, err := s.accounts.UpdateUsername(ctx, id, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		if errors.Is(err, ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, oops.Code("ACCOUNT_UPDATE_USERNAME_FAILED").With("id", id).Wrap(err)
	}
	return acct, nil
}

// DeleteAccount removes an account, reporting whether it existed.
// Sessions bound to the deleted account are not cleaned up; they become
// dangling and CurrentAccount reports them as not found.
func (s *Service) DeleteAccount(ctx context.Context, id int64) (bool, error) {
	err := s.accounts.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, oops.Code("ACCOUNT_DELETE_FAILED").With("id", id).Wrap(err)
	}
	return true, nil
}
