// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"log/slog"

	"github.com/taibuivan/critique/internal/platform/access"
	"github.com/taibuivan/critique/internal/platform/apperr"
	"github.com/taibuivan/critique/internal/platform/ctxutil"
	"github.com/taibuivan/critique/pkg/pagination"
	"github.com/taibuivan/critique/pkg/uuid"
)

// Service implements blog use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// ListPosts returns a page of posts.
func (service *Service) ListPosts(ctx context.Context, params pagination.Params) ([]*Post, int, error) {
	return service.repository.ListPosts(ctx, params)
}

// GetPost returns one post.
func (service *Service) GetPost(ctx context.Context, id string) (*Post, error) {
	return service.repository.FindPost(ctx, id)
}

// CreatePost publishes text under author's name.
func (service *Service) CreatePost(ctx context.Context, author access.Principal, text string) (*Post, error) {
	post := &Post{ID: uuid.New(), UserID: author.ID, Author: author.Username, Text: text}
	if err := service.repository.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "post_created", slog.String("post_id", post.ID))
	return post, nil
}

// UpdatePost replaces the post's text.
func (service *Service) UpdatePost(ctx context.Context, post *Post, text string) (*Post, error) {
	post.Text = text
	if err := service.repository.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes post.
func (service *Service) DeletePost(ctx context.Context, post *Post) error {
	return service.repository.DeletePost(ctx, post.ID)
}

// ListComments returns a page of the post's comments.
func (service *Service) ListComments(ctx context.Context, postID string, params pagination.Params) ([]*Comment, int, error) {
	if _, err := service.repository.FindPost(ctx, postID); err != nil {
		return nil, 0, err
	}
	return service.repository.ListComments(ctx, postID, params)
}

// GetComment returns the comment if it belongs to postID.
func (service *Service) GetComment(ctx context.Context, postID, commentID string) (*Comment, error) {
	comment, err := service.repository.FindComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, apperr.NotFound(resourceComment)
	}
	return comment, nil
}

// CreateComment replies to postID.
func (service *Service) CreateComment(ctx context.Context, author access.Principal, postID, text string) (*Comment, error) {
	if _, err := service.repository.FindPost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &Comment{ID: uuid.New(), PostID: postID, UserID: author.ID, Author: author.Username, Text: text}
	if err := service.repository.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// UpdateComment replaces the comment's text.
func (service *Service) UpdateComment(ctx context.Context, comment *Comment, text string) (*Comment, error) {
	comment.Text = text
	if err := service.repository.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes comment.
func (service *Service) DeleteComment(ctx context.Context, comment *Comment) error {
	return service.repository.DeleteComment(ctx, comment.ID)
}
