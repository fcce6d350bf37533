// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/critique/internal/blog/post"
	"github.com/taibuivan/critique/internal/platform/apperr"
	"github.com/taibuivan/critique/pkg/pagination"
)

var stamp = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

func setupRepo(t *testing.T) (*post.PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return post.NewPostgresRepository(mock), mock
}

func TestPostgresRepository_ListPosts(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`FROM blog.post p JOIN users.account a ON a.id = p.authorid ORDER BY p.pubdate DESC`).
		WithArgs(10, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "authorid", "username", "text", "pubdate", "updatedat", "total_count"}).
			AddRow(postA, ownerID, "writer", "hello", stamp, stamp, 1))

	posts, total, err := repo.ListPosts(context.Background(), pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "writer", posts[0].Author)
	assert.Equal(t, ownerID, posts[0].AuthorID())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_FindPost_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`WHERE p.id = \$1`).WithArgs(postA).WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindPost(context.Background(), postA)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestPostgresRepository_CreateComment_PostVanished(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`INSERT INTO blog.comment \(id, postid, authorid, text\)`).
		WithArgs(commentA, postA, ownerID, "hi").
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.CreateComment(context.Background(), &post.Comment{ID: commentA, PostID: postA, UserID: ownerID, Text: "hi"})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestPostgresRepository_UpdatePost(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`UPDATE blog.post SET text = \$2, updatedat = NOW\(\) WHERE id = \$1 RETURNING updatedat`).
		WithArgs(postA, "edited").
		WillReturnRows(pgxmock.NewRows([]string{"updatedat"}).AddRow(stamp))

	item := &post.Post{ID: postA, Text: "edited"}
	require.NoError(t, repo.UpdatePost(context.Background(), item))
	assert.Equal(t, stamp, item.UpdatedAt)
}

func TestPostgresRepository_DeleteComment_Missing(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec(`DELETE FROM blog.comment WHERE id = \$1`).
		WithArgs(commentA).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.DeleteComment(context.Background(), commentA)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
