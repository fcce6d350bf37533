// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"

	"github.com/taibuivan/critique/pkg/pagination"
)

// Repository defines persistence for posts and their comments. Reads fill in
// the author's username.
type Repository interface {
	ListPosts(ctx context.Context, params pagination.Params) ([]*Post, int, error)
	FindPost(ctx context.Context, id string) (*Post, error)
	CreatePost(ctx context.Context, post *Post) error
	UpdatePost(ctx context.Context, post *Post) error
	DeletePost(ctx context.Context, id string) error

	ListComments(ctx context.Context, postID string, params pagination.Params) ([]*Comment, int, error)
	FindComment(ctx context.Context, id string) (*Comment, error)
	CreateComment(ctx context.Context, comment *Comment) error
	UpdateComment(ctx context.Context, comment *Comment) error
	DeleteComment(ctx context.Context, id string) error
}
