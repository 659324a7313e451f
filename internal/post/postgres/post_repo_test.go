// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillboard Contributors

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillboard/quillboard/internal/post"
)

func TestPostRepository_Create(t *testing.T) {
	t.Run("successful insert", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id"}).AddRow(int64(3))
		mock.ExpectQuery(`INSERT INTO posts`).
			WithArgs("hello world", pgxmock.AnyArg()).
			WillReturnRows(rows)

		repo := NewPostRepository(mock)
		p := &post.Post{Title: "hello world"}
		require.NoError(t, repo.Create(context.Background(), p))
		assert.Equal(t, int64(3), p.ID)
		assert.False(t, p.CreatedAt.IsZero())
		assert.Equal(t, p.CreatedAt, p.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO posts`).
			WithArgs("hello world", pgxmock.AnyArg()).
			WillReturnError(errors.New("connection refused"))

		repo := NewPostRepository(mock)
		err = repo.Create(context.Background(), &post.Post{Title: "hello world"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}

func TestPostRepository_GetByID(t *testing.T) {
	now := time.Now().UTC()

	t.Run("successful get", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id", "title", "created_at", "updated_at"}).
			AddRow(int64(3), "hello world", now, now)
		mock.ExpectQuery(`SELECT id, title, created_at, updated_at FROM posts WHERE id = \$1`).
			WithArgs(int64(3)).
			WillReturnRows(rows)

		repo := NewPostRepository(mock)
		got, err := repo.GetByID(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, "hello world", got.Title)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("missing post maps to ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id", "title", "created_at", "updated_at"})
		mock.ExpectQuery(`SELECT id, title, created_at, updated_at FROM posts WHERE id = \$1`).
			WithArgs(int64(99)).
			WillReturnRows(rows)

		repo := NewPostRepository(mock)
		got, err := repo.GetByID(context.Background(), 99)
		require.ErrorIs(t, err, post.ErrNotFound)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}

func TestPostRepository_List(t *testing.T) {
	now := time.Now().UTC()

	t.Run("returns all posts in ID order", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id", "title", "created_at", "updated_at"}).
			AddRow(int64(1), "first", now, now).
			AddRow(int64(2), "second", now, now)
		mock.ExpectQuery(`SELECT id, title, created_at, updated_at FROM posts ORDER BY id`).
			WillReturnRows(rows)

		repo := NewPostRepository(mock)
		posts, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "first", posts[0].Title)
		assert.Equal(t, "second", posts[1].Title)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("row iteration error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id", "title", "created_at", "updated_at"}).
			AddRow(int64(1), "first", now, now).
			RowError(0, errors.New("row iteration error"))
		mock.ExpectQuery(`SELECT id, title, created_at, updated_at FROM posts ORDER BY id`).
			WillReturnRows(rows)

		repo := NewPostRepository(mock)
		_, err = repo.List(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row iteration error")
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}

func TestPostRepository_UpdateTitle(t *testing.T) {
	now := time.Now().UTC()

	t.Run("successful update", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id", "title", "created_at", "updated_at"}).
			AddRow(int64(3), "renamed", now, now)
		mock.ExpectQuery(`UPDATE posts SET title = \$2, updated_at = \$3 WHERE id = \$1`).
			WithArgs(int64(3), "renamed", pgxmock.AnyArg()).
			WillReturnRows(rows)

		repo := NewPostRepository(mock)
		got, err := repo.UpdateTitle(context.Background(), 3, "renamed")
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Title)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("missing post maps to ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id", "title", "created_at", "updated_at"})
		mock.ExpectQuery(`UPDATE posts SET title = \$2, updated_at = \$3 WHERE id = \$1`).
			WithArgs(int64(99), "renamed", pgxmock.AnyArg()).
			WillReturnRows(rows)

		repo := NewPostRepository(mock)
		_, err = repo.UpdateTitle(context.Background(), 99, "renamed")
		require.ErrorIs(t, err, post.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}

func TestPostRepository_Delete(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM posts WHERE id = \$1`).
			WithArgs(int64(3)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := NewPostRepository(mock)
		require.NoError(t, repo.Delete(context.Background(), 3))
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("missing post maps to ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM posts WHERE id = \$1`).
			WithArgs(int64(99)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := NewPostRepository(mock)
		err = repo.Delete(context.Background(), 99)
		require.ErrorIs(t, err, post.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}
