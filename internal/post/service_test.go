// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillboard Contributors

package post_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quillboard/quillboard/internal/post"
	"github.com/quillboard/quillboard/internal/post/mocks"
	"github.com/quillboard/quillboard/pkg/errutil"
)

func newService(t *testing.T) (*post.Service, *mocks.MockRepository) {
	t.Helper()
	repo := mocks.NewMockRepository(t)
	svc, err := post.NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func TestNewService_NilRepository(t *testing.T) {
	svc, err := post.NewService(nil)
	require.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "posts repository is required")
}

func TestService_ListPosts(t *testing.T) {
	ctx := context.Background()

	t.Run("returns posts from the repository", func(t *testing.T) {
		svc, repo := newService(t)

		posts := []*post.Post{{ID: 1, Title: "first"}, {ID: 2, Title: "second"}}
		repo.On("List", ctx).Return(posts, nil)

		got, err := svc.ListPosts(ctx)
		require.NoError(t, err)
		assert.Equal(t, posts, got)
	})

	t.Run("store failure propagates as error", func(t *testing.T) {
		svc, repo := newService(t)

		repo.On("List", ctx).Return(nil, errors.New("connection refused"))

		_, err := svc.ListPosts(ctx)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "POST_LIST_FAILED")
	})
}

func TestService_GetPost(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the post", func(t *testing.T) {
		svc, repo := newService(t)

		repo.On("GetByID", ctx, int64(1)).Return(&post.Post{ID: 1, Title: "first"}, nil)

		got, err := svc.GetPost(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "first", got.Title)
	})

	t.Run("missing post returns ErrNotFound", func(t *testing.T) {
		svc, repo := newService(t)

		repo.On("GetByID", ctx, int64(99)).Return(nil, post.ErrNotFound)

		got, err := svc.GetPost(ctx, 99)
		require.ErrorIs(t, err, post.ErrNotFound)
		assert.Nil(t, got)
	})
}

func TestService_CreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the post", func(t *testing.T) {
		svc, repo := newService(t)

		repo.On("Create", ctx, mock.AnythingOfType("*post.Post")).
			Run(func(args mock.Arguments) {
				p := args.Get(1).(*post.Post)
				p.ID = 1
				p.CreatedAt = time.Now()
				p.UpdatedAt = p.CreatedAt
			}).
			Return(nil)

		got, err := svc.CreatePost(ctx, "hello world")
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, "hello world", got.Title)
	})

	t.Run("empty title is rejected without store write", func(t *testing.T) {
		svc, _ := newService(t)

		got, err := svc.CreatePost(ctx, "")
		require.Error(t, err)
		assert.Nil(t, got)
		errutil.AssertErrorCode(t, err, "POST_TITLE_EMPTY")
	})
}

func TestService_UpdatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("empty title is a no-op returning the unchanged post", func(t *testing.T) {
		svc, repo := newService(t)

		repo.On("GetByID", ctx, int64(1)).Return(&post.Post{ID: 1, Title: "original"}, nil)

		got, err := svc.UpdatePost(ctx, 1, "")
		require.NoError(t, err)
		assert.Equal(t, "original", got.Title)
	})

	t.Run("sets the new title", func(t *testing.T) {
		svc, repo := newService(t)

		repo.On("UpdateTitle", ctx, int64(1), "renamed").Return(&post.Post{ID: 1, Title: "renamed"}, nil)

		got, err := svc.UpdatePost(ctx, 1, "renamed")
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Title)
	})

	t.Run("missing post returns ErrNotFound", func(t *testing.T) {
		svc, repo := newService(t)

		repo.On("UpdateTitle", ctx, int64(99), "renamed").Return(nil, post.ErrNotFound)

		_, err := svc.UpdatePost(ctx, 99, "renamed")
		require.ErrorIs(t, err, post.ErrNotFound)
	})
}

func TestService_DeletePost(t *testing.T) {
	ctx := context.Background()

	t.Run("existing post returns true", func(t *testing.T) {
		svc, repo := newService(t)

		repo.On("Delete", ctx, int64(1)).Return(nil)

		ok, err := svc.DeletePost(ctx, 1)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("missing post returns false without error", func(t *testing.T) {
		svc, repo := newService(t)

		repo.On("Delete", ctx, int64(99)).Return(post.ErrNotFound)

		ok, err := svc.DeletePost(ctx, 99)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("store failure propagates as error", func(t *testing.T) {
		svc, repo := newService(t)

		repo.On("Delete", ctx, int64(1)).Return(errors.New("connection refused"))

		_, err := svc.DeletePost(ctx, 1)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "POST_DELETE_FAILED")
	})
}
