// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillboard Contributors

// Package mocks provides testify mocks for the account package interfaces.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/quillboard/quillboard/internal/account"
)

// MockRepository is a mock account.Repository.
type MockRepository struct {
	mock.Mock
}

// NewMockRepository creates a MockRepository that asserts its
// expectations on test cleanup.
func NewMockRepository(t *testing.T) *MockRepository {
	m := &MockRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRepository) Create(ctx context.Context, acct *account.Account) error {
	args := m.Called(ctx, acct)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	args := m.Called(ctx, id)
	if acct := args.Get(0); acct != nil {
		return acct.(*account.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetByUsername(ctx context.Context, username string) (*account.Account, error) {
	args := m.Called(ctx, username)
	if acct := args.Get(0); acct != nil {
		return acct.(*account.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]*account.Account, error) {
	args := m.Called(ctx)
	if accounts := args.Get(0); accounts != nil {
		return accounts.([]*account.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) UpdateUsername(ctx context.Context, id int64, username string) (*account.Account, error) {
	args := m.Called(ctx, id, username)
	if acct := args.Get(0); acct != nil {
		return acct.(*account.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSessionStore is a mock account.SessionStore.
type MockSessionStore struct {
	mock.Mock
}

// NewMockSessionStore creates a MockSessionStore that asserts its
// expectations on test cleanup.
func NewMockSessionStore(t *testing.T) *MockSessionStore {
	m := &MockSessionStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSessionStore) Get(ctx context.Context, token string) (*account.Session, error) {
	args := m.Called(ctx, token)
	if sess := args.Get(0); sess != nil {
		return sess.(*account.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSessionStore) Save(ctx context.Context, sess *account.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func (m *MockSessionStore) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockPasswordHasher is a mock account.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a MockPasswordHasher that asserts its
// expectations on test cleanup.
func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(password, digest string) (bool, error) {
	args := m.Called(password, digest)
	return args.Bool(0), args.Error(1)
}

// Compile-time interface checks.
var (
	_ account.Repository     = (*MockRepository)(nil)
	_ account.SessionStore   = (*MockSessionStore)(nil)
	_ account.PasswordHasher = (*MockPasswordHasher)(nil)
)
