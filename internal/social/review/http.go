// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/critique/internal/platform/access"
	"github.com/taibuivan/critique/internal/platform/middleware"
	requestutil "github.com/taibuivan/critique/internal/platform/request"
	"github.com/taibuivan/critique/internal/platform/respond"
	"github.com/taibuivan/critique/internal/platform/validate"
	"github.com/taibuivan/critique/pkg/pagination"
)

// Handler implements the nested review and comment endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] to be mounted at /titles/{titleID}/reviews.
//
// # Endpoints
//   - GET, POST            /
//   - GET, PUT, PATCH, DELETE   /{reviewID}
//   - GET, POST                 /{reviewID}/comments
//   - GET, PUT, PATCH, DELETE   /{reviewID}/comments/{commentID}
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authorize(access.ContributionPolicy))
		r.Get("/", handler.listReviews)
		r.Post("/", handler.createReview)
		r.Get("/{reviewID}/comments", handler.listComments)
		r.Post("/{reviewID}/comments", handler.createComment)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authorize(access.ModeratedObjectPolicy))
		r.Get("/{reviewID}", handler.getReview)
		r.Put("/{reviewID}", handler.updateReview)
		r.Patch("/{reviewID}", handler.updateReview)
		r.Delete("/{reviewID}", handler.deleteReview)
		r.Get("/{reviewID}/comments/{commentID}", handler.getComment)
		r.Put("/{reviewID}/comments/{commentID}", handler.updateComment)
		r.Patch("/{reviewID}/comments/{commentID}", handler.updateComment)
		r.Delete("/{reviewID}/comments/{commentID}", handler.deleteComment)
	})

	return router
}

// # Request Payloads

type reviewRequest struct {
	Text  string `json:"text"`
	Score *int   `json:"score"`
}

func (input reviewRequest) validate() error {
	validator := &validate.Validator{}
	validator.Present(FieldScore, input.Score != nil)
	if input.Score != nil {
		validator.Range(FieldScore, *input.Score, MinScore, MaxScore)
	}
	return validator.Err()
}

func validateReviewPatch(patch ReviewPatch) error {
	validator := &validate.Validator{}
	if patch.Score != nil {
		validator.Range(FieldScore, *patch.Score, MinScore, MaxScore)
	}
	return validator.Err()
}

type commentRequest struct {
	Text string `json:"text"`
}

func (input commentRequest) validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text)
	return validator.Err()
}

// # Path Resolution

func titleID(request *http.Request) (string, error) {
	return requestutil.ID(request, FieldTitleID, "Title")
}

// loadReview resolves {titleID}/{reviewID} and runs the object-level check.
func (handler *Handler) loadReview(request *http.Request) (*Review, error) {
	parentID, err := titleID(request)
	if err != nil {
		return nil, err
	}
	reviewID, err := requestutil.ID(request, FieldReviewID, resourceReview)
	if err != nil {
		return nil, err
	}

	review, err := handler.service.GetReview(request.Context(), parentID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := access.ModeratedObjectPolicy.Authorize(requestutil.Principal(request), request.Method, review); err != nil {
		return nil, err
	}
	return review, nil
}

// loadComment resolves the full comment path and runs the object-level check.
func (handler *Handler) loadComment(request *http.Request) (*Comment, error) {
	parentID, err := titleID(request)
	if err != nil {
		return nil, err
	}
	reviewID, err := requestutil.ID(request, FieldReviewID, resourceReview)
	if err != nil {
		return nil, err
	}
	commentID, err := requestutil.ID(request, FieldCommentID, resourceComment)
	if err != nil {
		return nil, err
	}

	comment, err := handler.service.GetComment(request.Context(), parentID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := access.ModeratedObjectPolicy.Authorize(requestutil.Principal(request), request.Method, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// # Review Handlers

/*
ListReviews returns a page of a title's reviews.

GET /api/v1/titles/{titleID}/reviews

Response:
  - 200: []Review with pagination metadata
  - 404: Unknown title
*/
func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	parentID, err := titleID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	reviews, total, err := handler.service.ListReviews(request.Context(), parentID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, reviews, pagination.NewMeta(params, total))
}

/*
CreateReview publishes a review.

POST /api/v1/titles/{titleID}/reviews

Response:
  - 201: Review
  - 400: Score missing or outside 1..10
  - 409: The caller already reviewed this title
*/
func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	parentID, err := titleID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input reviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := input.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.CreateReview(request.Context(), requestutil.Principal(request), parentID, ReviewInput{
		Text:  input.Text,
		Score: *input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, review)
}

// getReview handles GET /{reviewID}.
func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	review, err := handler.loadReview(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, review)
}

// updateReview handles PATCH /{reviewID}.
func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	var patch ReviewPatch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validateReviewPatch(patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.loadReview(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err = handler.service.UpdateReview(request.Context(), review, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, review)
}

// deleteReview handles DELETE /{reviewID}.
func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	review, err := handler.loadReview(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteReview(request.Context(), review); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Comment Handlers

// listComments handles GET /{reviewID}/comments.
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	parentID, err := titleID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	reviewID, err := requestutil.ID(request, FieldReviewID, resourceReview)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	comments, total, err := handler.service.ListComments(request.Context(), parentID, reviewID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, comments, pagination.NewMeta(params, total))
}

// createComment handles POST /{reviewID}/comments.
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	parentID, err := titleID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	reviewID, err := requestutil.ID(request, FieldReviewID, resourceReview)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := input.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(), requestutil.Principal(request), parentID, reviewID, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, comment)
}

// getComment handles GET /{reviewID}/comments/{commentID}.
func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	comment, err := handler.loadComment(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comment)
}

// updateComment handles PATCH /{reviewID}/comments/{commentID}.
func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := input.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.loadComment(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err = handler.service.UpdateComment(request.Context(), comment, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comment)
}

// deleteComment handles DELETE /{reviewID}/comments/{commentID}.
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	comment, err := handler.loadComment(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComment(request.Context(), comment); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
