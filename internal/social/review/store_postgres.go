// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/critique/internal/platform/apperr"
	"github.com/taibuivan/critique/internal/platform/database/schema"
	"github.com/taibuivan/critique/internal/platform/dberr"
	"github.com/taibuivan/critique/internal/platform/postgres"
	"github.com/taibuivan/critique/pkg/pagination"
)

var (
	reviewT  = schema.SocialReview
	commentT = schema.SocialComment
	userT    = schema.UserAccount
)

// # Reviews

// PostgresReviewRepository implements [ReviewRepository] using pgx.
type PostgresReviewRepository struct {
	db postgres.DB
}

// NewPostgresReviewRepository creates a new Postgres implementation for reviews.
func NewPostgresReviewRepository(db postgres.DB) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

// selectReview joins the author's username. extra is appended to the column list.
func selectReview(extra string) string {
	return fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, a.%s, r.%s, r.%s, r.%s, r.%s%s
		FROM %s r
		JOIN %s a ON a.%s = r.%s`,
		reviewT.ID, reviewT.TitleID, reviewT.AuthorID, userT.Username,
		reviewT.Text, reviewT.Score, reviewT.PubDate, reviewT.UpdatedAt, extra,
		reviewT.Table,
		userT.Table, userT.ID, reviewT.AuthorID,
	)
}

func scanReview(row pgx.Row, extra ...any) (*Review, error) {
	review := &Review{}
	targets := append([]any{
		&review.ID, &review.TitleID, &review.UserID, &review.Author,
		&review.Text, &review.Score, &review.PubDate, &review.UpdatedAt,
	}, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return review, nil
}

// ListByTitle returns a page of a title's reviews, newest first.
func (repository *PostgresReviewRepository) ListByTitle(ctx context.Context, titleID string, params pagination.Params) ([]*Review, int, error) {
	query := fmt.Sprintf(`%s
		WHERE r.%s = $3
		ORDER BY r.%s DESC, r.%s
		LIMIT $1 OFFSET $2`,
		selectReview(", COUNT(*) OVER() AS total_count"),
		reviewT.TitleID, reviewT.PubDate, reviewT.ID,
	)

	rows, err := repository.db.Query(ctx, query, params.Limit, params.Offset(), titleID)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceReview)
	}
	defer rows.Close()

	reviews := make([]*Review, 0, params.Limit)
	var total int
	for rows.Next() {
		review, err := scanReview(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceReview)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceReview)
	}
	return reviews, total, nil
}

// FindByID retrieves one review.
func (repository *PostgresReviewRepository) FindByID(ctx context.Context, id string) (*Review, error) {
	query := fmt.Sprintf(`%s WHERE r.%s = $1`, selectReview(""), reviewT.ID)

	review, err := scanReview(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceReview)
	}
	return review, nil
}

// Create inserts the review. The (author, title) unique key turns a second
// review into a Conflict.
func (repository *PostgresReviewRepository) Create(ctx context.Context, review *Review) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s`,
		reviewT.Table,
		reviewT.ID, reviewT.TitleID, reviewT.AuthorID, reviewT.Text, reviewT.Score,
		reviewT.PubDate, reviewT.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query,
		review.ID, review.TitleID, review.UserID, review.Text, review.Score,
	).Scan(&review.PubDate, &review.UpdatedAt)

	if constraint, ok := dberr.UniqueViolation(err); ok && constraint == schema.SocialReviewUniqueAuthorTitle {
		return apperr.Conflict("You have already reviewed this title")
	}
	return dberr.Wrap(err, resourceReview)
}

// Update persists text and score.
func (repository *PostgresReviewRepository) Update(ctx context.Context, review *Review) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		reviewT.Table,
		reviewT.Text, reviewT.Score, reviewT.UpdatedAt,
		reviewT.ID,
		reviewT.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, review.ID, review.Text, review.Score).Scan(&review.UpdatedAt)
	return dberr.Wrap(err, resourceReview)
}

// Delete removes the review and, by cascade, its comments.
func (repository *PostgresReviewRepository) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, repository.db, reviewT.Table, reviewT.ID, id, resourceReview)
}

// # Comments

// PostgresCommentRepository implements [CommentRepository] using pgx.
type PostgresCommentRepository struct {
	db postgres.DB
}

// NewPostgresCommentRepository creates a new Postgres implementation for comments.
func NewPostgresCommentRepository(db postgres.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// selectComment joins the parent review for the title ID and the author's username.
func selectComment(extra string) string {
	return fmt.Sprintf(`
		SELECT c.%s, c.%s, r.%s, c.%s, a.%s, c.%s, c.%s, c.%s%s
		FROM %s c
		JOIN %s r ON r.%s = c.%s
		JOIN %s a ON a.%s = c.%s`,
		commentT.ID, commentT.ReviewID, reviewT.TitleID, commentT.AuthorID, userT.Username,
		commentT.Text, commentT.PubDate, commentT.UpdatedAt, extra,
		commentT.Table,
		reviewT.Table, reviewT.ID, commentT.ReviewID,
		userT.Table, userT.ID, commentT.AuthorID,
	)
}

func scanComment(row pgx.Row, extra ...any) (*Comment, error) {
	comment := &Comment{}
	targets := append([]any{
		&comment.ID, &comment.ReviewID, &comment.TitleID, &comment.UserID, &comment.Author,
		&comment.Text, &comment.PubDate, &comment.UpdatedAt,
	}, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByReview returns a page of a review's comments, newest first.
func (repository *PostgresCommentRepository) ListByReview(ctx context.Context, reviewID string, params pagination.Params) ([]*Comment, int, error) {
	query := fmt.Sprintf(`%s
		WHERE c.%s = $3
		ORDER BY c.%s DESC, c.%s
		LIMIT $1 OFFSET $2`,
		selectComment(", COUNT(*) OVER() AS total_count"),
		commentT.ReviewID, commentT.PubDate, commentT.ID,
	)

	rows, err := repository.db.Query(ctx, query, params.Limit, params.Offset(), reviewID)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceComment)
	}
	defer rows.Close()

	comments := make([]*Comment, 0, params.Limit)
	var total int
	for rows.Next() {
		comment, err := scanComment(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceComment)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceComment)
	}
	return comments, total, nil
}

// FindByID retrieves one comment.
func (repository *PostgresCommentRepository) FindByID(ctx context.Context, id string) (*Comment, error) {
	query := fmt.Sprintf(`%s WHERE c.%s = $1`, selectComment(""), commentT.ID)

	comment, err := scanComment(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceComment)
	}
	return comment, nil
}

// Create inserts the comment.
func (repository *PostgresCommentRepository) Create(ctx context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s`,
		commentT.Table,
		commentT.ID, commentT.ReviewID, commentT.AuthorID, commentT.Text,
		commentT.PubDate, commentT.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query,
		comment.ID, comment.ReviewID, comment.UserID, comment.Text,
	).Scan(&comment.PubDate, &comment.UpdatedAt)
	return dberr.Wrap(err, resourceComment)
}

// Update persists the text.
func (repository *PostgresCommentRepository) Update(ctx context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		commentT.Table,
		commentT.Text, commentT.UpdatedAt,
		commentT.ID,
		commentT.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, comment.ID, comment.Text).Scan(&comment.UpdatedAt)
	return dberr.Wrap(err, resourceComment)
}

// Delete removes the comment.
func (repository *PostgresCommentRepository) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, repository.db, commentT.Table, commentT.ID, id, resourceComment)
}

func deleteRow(ctx context.Context, db postgres.DB, table, column, id, resource string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, column)

	tag, err := db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}
