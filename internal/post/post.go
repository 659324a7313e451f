// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillboard Contributors

// Package post provides post CRUD for Quillboard.
package post

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("not found")

// Post represents a published post.
type Post struct {
	ID        int64
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository manages post persistence.
type Repository interface {
	// Create stores a new post and populates its ID and timestamps.
	Create(ctx context.Context, p *Post) error

	// GetByID retrieves a post by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id int64) (*Post, error)

	// List returns all posts ordered by ID.
	List(ctx context.Context) ([]*Post, error)

	// UpdateTitle sets a new title and refreshes UpdatedAt.
	// Returns ErrNotFound if the post does not exist.
	UpdateTitle(ctx context.Context, id int64, title string) (*Post, error)

	// Delete removes a post. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id int64) error
}
