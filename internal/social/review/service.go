// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"

	"github.com/taibuivan/critique/internal/catalog/title"
	"github.com/taibuivan/critique/internal/platform/access"
	"github.com/taibuivan/critique/internal/platform/apperr"
	"github.com/taibuivan/critique/internal/platform/ctxutil"
	"github.com/taibuivan/critique/pkg/pagination"
	"github.com/taibuivan/critique/pkg/uuid"
)

// TitleFinder loads the parent title. *title.Service satisfies it.
type TitleFinder interface {
	Get(ctx context.Context, id string) (*title.Title, error)
}

// Service implements review and comment use cases.
type Service struct {
	titles   TitleFinder
	reviews  ReviewRepository
	comments CommentRepository
}

// NewService constructs a new [Service].
func NewService(titles TitleFinder, reviews ReviewRepository, comments CommentRepository) *Service {
	return &Service{titles: titles, reviews: reviews, comments: comments}
}

// # Reviews

// ListReviews returns a page of the title's reviews.
func (service *Service) ListReviews(ctx context.Context, titleID string, params pagination.Params) ([]*Review, int, error) {
	if _, err := service.titles.Get(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return service.reviews.ListByTitle(ctx, titleID, params)
}

// GetReview returns the review if it belongs to titleID.
func (service *Service) GetReview(ctx context.Context, titleID, reviewID string) (*Review, error) {
	review, err := service.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.TitleID != titleID {
		return nil, apperr.NotFound(resourceReview)
	}
	return review, nil
}

// ReviewInput holds a new review.
type ReviewInput struct {
	Text  string
	Score int
}

/*
CreateReview publishes the author's review of titleID.

Returns:
  - err: NotFound for an unknown title, Conflict for a second review by the same author
*/
func (service *Service) CreateReview(ctx context.Context, author access.Principal, titleID string, input ReviewInput) (*Review, error) {
	if _, err := service.titles.Get(ctx, titleID); err != nil {
		return nil, err
	}

	review := &Review{
		ID:      uuid.New(),
		TitleID: titleID,
		UserID:  author.ID,
		Author:  author.Username,
		Text:    input.Text,
		Score:   input.Score,
	}
	if err := service.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "review_created",
		slog.String("review_id", review.ID),
		slog.String("title_id", titleID),
	)
	return review, nil
}

// ReviewPatch carries a partial review update.
type ReviewPatch struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// UpdateReview applies patch to review.
func (service *Service) UpdateReview(ctx context.Context, review *Review, patch ReviewPatch) (*Review, error) {
	if patch.Text != nil {
		review.Text = *patch.Text
	}
	if patch.Score != nil {
		review.Score = *patch.Score
	}
	if err := service.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview removes review.
func (service *Service) DeleteReview(ctx context.Context, review *Review) error {
	if err := service.reviews.Delete(ctx, review.ID); err != nil {
		return err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "review_deleted", slog.String("review_id", review.ID))
	return nil
}

// # Comments

// ListComments returns a page of the review's comments.
func (service *Service) ListComments(ctx context.Context, titleID, reviewID string, params pagination.Params) ([]*Comment, int, error) {
	if _, err := service.GetReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.comments.ListByReview(ctx, reviewID, params)
}

// GetComment returns the comment if the whole path matches.
func (service *Service) GetComment(ctx context.Context, titleID, reviewID, commentID string) (*Comment, error) {
	comment, err := service.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.ReviewID != reviewID || comment.TitleID != titleID {
		return nil, apperr.NotFound(resourceComment)
	}
	return comment, nil
}

// CreateComment replies to the review at titleID/reviewID.
func (service *Service) CreateComment(ctx context.Context, author access.Principal, titleID, reviewID, text string) (*Comment, error) {
	if _, err := service.GetReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:       uuid.New(),
		ReviewID: reviewID,
		TitleID:  titleID,
		UserID:   author.ID,
		Author:   author.Username,
		Text:     text,
	}
	if err := service.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("review_id", reviewID),
	)
	return comment, nil
}

// UpdateComment replaces the comment's text.
func (service *Service) UpdateComment(ctx context.Context, comment *Comment, text string) (*Comment, error) {
	comment.Text = text
	if err := service.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes comment.
func (service *Service) DeleteComment(ctx context.Context, comment *Comment) error {
	return service.comments.Delete(ctx, comment.ID)
}
