// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"

	"github.com/taibuivan/critique/pkg/pagination"
)

// ReviewRepository defines persistence for reviews. Reads fill in Author.
type ReviewRepository interface {
	ListByTitle(ctx context.Context, titleID string, params pagination.Params) ([]*Review, int, error)
	FindByID(ctx context.Context, id string) (*Review, error)

	// Create fails with Conflict when the author already reviewed the title.
	Create(ctx context.Context, review *Review) error
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id string) error
}

// CommentRepository defines persistence for review comments. Reads fill in
// Author and TitleID.
type CommentRepository interface {
	ListByReview(ctx context.Context, reviewID string, params pagination.Params) ([]*Comment, int, error)
	FindByID(ctx context.Context, id string) (*Comment, error)
	Create(ctx context.Context, comment *Comment) error
	Update(ctx context.Context, comment *Comment) error
	Delete(ctx context.Context, id string) error
}
