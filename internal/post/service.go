// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillboard Contributors

package post

import (
	"context"
	"errors"

	"github.com/samber/oops"
)

// Service implements post CRUD on top of a Repository.
type Service struct {
	posts Repository
}

// NewService creates a new Service.
func NewService(posts Repository) (*Service, error) {
	if posts == nil {
		return nil, oops.Errorf("posts repository is required")
	}
	return &Service{posts: posts}, nil
}

// ListPosts returns all posts.
func (s *Service) ListPosts(ctx context.Context) ([]*Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, oops.Code("POST_LIST_FAILED").Wrap(err)
	}
	return posts, nil
}

// GetPost retrieves a single post by ID. Returns ErrNotFound when absent;
// callers treat that as a valid non-error outcome.
func (s *Service) GetPost(ctx context.Context, id int64) (*Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, oops.Code("POST_GET_FAILED").With("id", id).Wrap(err)
	}
	return p, nil
}

// CreatePost stores a new post with the given title.
func (s *Service) CreatePost(ctx context.Context, title string) (*Post, error) {
	if title == "" {
		return nil, oops.Code("POST_TITLE_EMPTY").Errorf("title cannot be empty")
	}

	p := &Post{Title: title}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, oops.Code("POST_CREATE_FAILED").Wrap(err)
	}
	return p, nil
}

// UpdatePost sets a new title for a post. An empty title is an idempotent
// no-op returning the unchanged post, matching the account module's
// update convention.
func (s *Service) UpdatePost(ctx context.Context, id int64, title string) (*Post, error) {
	if title == "" {
		return s.GetPost(ctx, id)
	}

	p, err := s.posts.UpdateTitle(ctx, id, title)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, oops.Code("POST_UPDATE_FAILED").With("id", id).Wrap(err)
	}
	return p, nil
}

// DeletePost removes a post, reporting whether it existed.
func (s *Service) DeletePost(ctx context.Context, id int64) (bool, error) {
	err := s.posts.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, oops.Code("POST_DELETE_FAILED").With("id", id).Wrap(err)
	}
	return true, nil
}
