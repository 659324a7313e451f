// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillboard Contributors

// Package postgres implements post persistence on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/quillboard/quillboard/internal/post"
)

// DB is the subset of pgxpool.Pool the repository uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostRepository implements post.Repository using PostgreSQL.
type PostRepository struct {
	db DB
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create stores a new post and populates its ID and timestamps.
func (r *PostRepository) Create(ctx context.Context, p *post.Post) error {
	now := time.Now().UTC()

	err := r.db.QueryRow(ctx, `
		INSERT INTO posts (title, created_at, updated_at)
		VALUES ($1, $2, $2)
		RETURNING id
	`, p.Title, now).Scan(&p.ID)
	if err != nil {
		return oops.Code("POST_CREATE_FAILED").
			With("operation", "insert post").
			Wrap(err)
	}

	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

// GetByID retrieves a post by ID.
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*post.Post, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, title, created_at, updated_at
		FROM posts
		WHERE id = $1
	`, id)

	p, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("POST_NOT_FOUND").
			With("id", id).
			Wrap(post.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("POST_GET_BY_ID_FAILED").
			With("operation", "get post by id").
			With("id", id).
			Wrap(err)
	}
	return p, nil
}

// List returns all posts ordered by ID.
func (r *PostRepository) List(ctx context.Context) ([]*post.Post, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, created_at, updated_at
		FROM posts
		ORDER BY id
	`)
	if err != nil {
		return nil, oops.Code("POST_LIST_FAILED").
			With("operation", "list posts").
			Wrap(err)
	}
	defer rows.Close()

	var posts []*post.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, oops.Code("POST_LIST_FAILED").
				With("operation", "scan post").
				Wrap(err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("POST_LIST_FAILED").
			With("operation", "iterate posts").
			Wrap(err)
	}
	return posts, nil
}

// UpdateTitle sets a new title and refreshes updated_at.
func (r *PostRepository) UpdateTitle(ctx context.Context, id int64, title string) (*post.Post, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE posts SET title = $2, updated_at = $3
		WHERE id = $1
		RETURNING id, title, created_at, updated_at
	`, id, title, time.Now().UTC())

	p, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("POST_NOT_FOUND").
			With("id", id).
			Wrap(post.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("POST_UPDATE_TITLE_FAILED").
			With("operation", "update title").
			With("id", id).
			Wrap(err)
	}
	return p, nil
}

// Delete removes a post.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `
		DELETE FROM posts WHERE id = $1
	`, id)
	if err != nil {
		return oops.Code("POST_DELETE_FAILED").
			With("operation", "delete post").
			With("id", id).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("POST_NOT_FOUND").
			With("id", id).
			Wrap(post.ErrNotFound)
	}
	return nil
}

// scanPost scans a single row into a Post. Callers are responsible for
// handling pgx.ErrNoRows.
func scanPost(row pgx.Row) (*post.Post, error) {
	var p post.Post
	err := row.Scan(&p.ID, &p.Title, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("POST_SCAN_FAILED").
			With("operation", "scan post").
			Wrap(err)
	}
	return &p, nil
}

// Compile-time interface check.
var _ post.Repository = (*PostRepository)(nil)
