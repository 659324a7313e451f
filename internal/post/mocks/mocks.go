// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillboard Contributors

// Package mocks provides testify mocks for the post package interfaces.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/quillboard/quillboard/internal/post"
)

// MockRepository is a mock post.Repository.
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

func (m *MockRepository) Create(ctx context.Context, p *post.Post) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*post.Post, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*post.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]*post.Post, error) {
	args := m.Called(ctx)
	if posts := args.Get(0); posts != nil {
		return posts.([]*post.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) UpdateTitle(ctx context.Context, id int64, title string) (*post.Post, error) {
	args := m.Called(ctx, id, title)
	if p := args.Get(0); p != nil {
		return p.(*post.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Compile-time interface check.
var _ post.Repository = (*MockRepository)(nil)
