// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

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
	postT    = schema.BlogPost
	commentT = schema.BlogComment
	userT    = schema.UserAccount
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository creates a new Postgres implementation for the blog.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Posts

func selectPost(extra string) string {
	return fmt.Sprintf(`
		SELECT p.%s, p.%s, a.%s, p.%s, p.%s, p.%s%s
		FROM %s p
		JOIN %s a ON a.%s = p.%s`,
		postT.ID, postT.AuthorID, userT.Username, postT.Text, postT.PubDate, postT.UpdatedAt, extra,
		postT.Table,
		userT.Table, userT.ID, postT.AuthorID,
	)
}

func scanPost(row pgx.Row, extra ...any) (*Post, error) {
	post := &Post{}
	targets := append([]any{
		&post.ID, &post.UserID, &post.Author, &post.Text, &post.PubDate, &post.UpdatedAt,
	}, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts returns a page of posts, newest first.
func (repository *PostgresRepository) ListPosts(ctx context.Context, params pagination.Params) ([]*Post, int, error) {
	query := fmt.Sprintf(`%s
		ORDER BY p.%s DESC, p.%s
		LIMIT $1 OFFSET $2`,
		selectPost(", COUNT(*) OVER() AS total_count"), postT.PubDate, postT.ID,
	)

	rows, err := repository.db.Query(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourcePost)
	}
	defer rows.Close()

	posts := make([]*Post, 0, params.Limit)
	var total int
	for rows.Next() {
		post, err := scanPost(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourcePost)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourcePost)
	}
	return posts, total, nil
}

// FindPost retrieves one post.
func (repository *PostgresRepository) FindPost(ctx context.Context, id string) (*Post, error) {
	query := fmt.Sprintf(`%s WHERE p.%s = $1`, selectPost(""), postT.ID)

	post, err := scanPost(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourcePost)
	}
	return post, nil
}

// CreatePost inserts the post.
func (repository *PostgresRepository) CreatePost(ctx context.Context, post *Post) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s`,
		postT.Table, postT.ID, postT.AuthorID, postT.Text,
		postT.PubDate, postT.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, post.ID, post.UserID, post.Text).Scan(&post.PubDate, &post.UpdatedAt)
	return dberr.Wrap(err, resourcePost)
}

// UpdatePost persists the text.
func (repository *PostgresRepository) UpdatePost(ctx context.Context, post *Post) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		postT.Table, postT.Text, postT.UpdatedAt,
		postT.ID,
		postT.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, post.ID, post.Text).Scan(&post.UpdatedAt)
	return dberr.Wrap(err, resourcePost)
}

// DeletePost removes the post and its comments.
func (repository *PostgresRepository) DeletePost(ctx context.Context, id string) error {
	return repository.delete(ctx, postT.Table, postT.ID, id, resourcePost)
}

// # Comments

func selectComment(extra string) string {
	return fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, a.%s, c.%s, c.%s, c.%s%s
		FROM %s c
		JOIN %s a ON a.%s = c.%s`,
		commentT.ID, commentT.PostID, commentT.AuthorID, userT.Username,
		commentT.Text, commentT.CreatedAt, commentT.UpdatedAt, extra,
		commentT.Table,
		userT.Table, userT.ID, commentT.AuthorID,
	)
}

func scanComment(row pgx.Row, extra ...any) (*Comment, error) {
	comment := &Comment{}
	targets := append([]any{
		&comment.ID, &comment.PostID, &comment.UserID, &comment.Author,
		&comment.Text, &comment.Created, &comment.UpdatedAt,
	}, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns a page of the post's comments, oldest first.
func (repository *PostgresRepository) ListComments(ctx context.Context, postID string, params pagination.Params) ([]*Comment, int, error) {
	query := fmt.Sprintf(`%s
		WHERE c.%s = $3
		ORDER BY c.%s, c.%s
		LIMIT $1 OFFSET $2`,
		selectComment(", COUNT(*) OVER() AS total_count"),
		commentT.PostID, commentT.CreatedAt, commentT.ID,
	)

	rows, err := repository.db.Query(ctx, query, params.Limit, params.Offset(), postID)
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

// FindComment retrieves one comment.
func (repository *PostgresRepository) FindComment(ctx context.Context, id string) (*Comment, error) {
	query := fmt.Sprintf(`%s WHERE c.%s = $1`, selectComment(""), commentT.ID)

	comment, err := scanComment(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceComment)
	}
	return comment, nil
}

// CreateComment inserts the comment.
func (repository *PostgresRepository) CreateComment(ctx context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s`,
		commentT.Table, commentT.ID, commentT.PostID, commentT.AuthorID, commentT.Text,
		commentT.CreatedAt, commentT.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query,
		comment.ID, comment.PostID, comment.UserID, comment.Text,
	).Scan(&comment.Created, &comment.UpdatedAt)
	return dberr.Wrap(err, resourceComment)
}

// UpdateComment persists the text.
func (repository *PostgresRepository) UpdateComment(ctx context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		commentT.Table, commentT.Text, commentT.UpdatedAt,
		commentT.ID,
		commentT.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, comment.ID, comment.Text).Scan(&comment.UpdatedAt)
	return dberr.Wrap(err, resourceComment)
}

// DeleteComment removes the comment.
func (repository *PostgresRepository) DeleteComment(ctx context.Context, id string) error {
	return repository.delete(ctx, commentT.Table, commentT.ID, id, resourceComment)
}

func (repository *PostgresRepository) delete(ctx context.Context, table, column, id, resource string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, column)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}
