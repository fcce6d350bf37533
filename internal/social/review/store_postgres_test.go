// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/critique/internal/platform/apperr"
	"github.com/taibuivan/critique/internal/social/review"
	"github.com/taibuivan/critique/pkg/pagination"
)

var (
	stamp          = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	reviewColumns  = []string{"id", "titleid", "authorid", "username", "text", "score", "pubdate", "updatedat"}
	commentColumns = []string{"id", "reviewid", "titleid", "authorid", "username", "text", "pubdate", "updatedat"}
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestPostgresReviewRepository_ListByTitle(t *testing.T) {
	mock := newMock(t)
	repo := review.NewPostgresReviewRepository(mock)

	mock.ExpectQuery(`FROM social.review r JOIN users.account a ON a.id = r.authorid WHERE r.titleid = \$3 ORDER BY r.pubdate DESC`).
		WithArgs(10, 10, titleA).
		WillReturnRows(pgxmock.NewRows(append(reviewColumns, "total_count")).
			AddRow(reviewA, titleA, authorID, "reader", "great", 9, stamp, stamp, 11))

	reviews, total, err := repo.ListByTitle(context.Background(), titleA, pagination.Params{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, reviews, 1)
	assert.Equal(t, "reader", reviews[0].Author)
	assert.Equal(t, authorID, reviews[0].AuthorID())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresReviewRepository_Create(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"created", nil, ""},
		{"second_review", &pgconn.PgError{Code: "23505", ConstraintName: "review_authorid_titleid_key"}, apperr.CodeConflict},
		{"title_vanished", &pgconn.PgError{Code: "23503"}, apperr.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			repo := review.NewPostgresReviewRepository(mock)

			expect := mock.ExpectQuery(`INSERT INTO social.review \(id, titleid, authorid, text, score\)`).
				WithArgs(reviewA, titleA, authorID, "", 7)
			if tt.err != nil {
				expect.WillReturnError(tt.err)
			} else {
				expect.WillReturnRows(pgxmock.NewRows([]string{"pubdate", "updatedat"}).AddRow(stamp, stamp))
			}

			item := &review.Review{ID: reviewA, TitleID: titleA, UserID: authorID, Score: 7}
			err := repo.Create(context.Background(), item)
			if tt.code == "" {
				require.NoError(t, err)
				assert.Equal(t, stamp, item.PubDate)
			} else {
				assert.True(t, apperr.HasCode(err, tt.code), err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresReviewRepository_Update_Missing(t *testing.T) {
	mock := newMock(t)
	repo := review.NewPostgresReviewRepository(mock)

	mock.ExpectQuery(`UPDATE social.review SET text = \$2, score = \$3`).
		WithArgs(reviewA, "meh", 5).
		WillReturnError(pgx.ErrNoRows)

	err := repo.Update(context.Background(), &review.Review{ID: reviewA, Text: "meh", Score: 5})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestPostgresCommentRepository_FindByID_IncludesTitle(t *testing.T) {
	mock := newMock(t)
	repo := review.NewPostgresCommentRepository(mock)

	mock.ExpectQuery(`FROM social.comment c JOIN social.review r ON r.id = c.reviewid .+ WHERE c.id = \$1`).
		WithArgs(commentA).
		WillReturnRows(pgxmock.NewRows(commentColumns).
			AddRow(commentA, reviewA, titleA, authorID, "reader", "agreed", stamp, stamp))

	comment, err := repo.FindByID(context.Background(), commentA)
	require.NoError(t, err)
	assert.Equal(t, titleA, comment.TitleID)
	assert.Equal(t, reviewA, comment.ReviewID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCommentRepository_Delete_Missing(t *testing.T) {
	mock := newMock(t)
	repo := review.NewPostgresCommentRepository(mock)

	mock.ExpectExec(`DELETE FROM social.comment WHERE id = \$1`).
		WithArgs(commentA).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), commentA)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
