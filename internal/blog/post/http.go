// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

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

// Handler implements the /posts endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for the blog.
//
// # Endpoints
//   - GET, POST                 /
//   - GET, PUT, PATCH, DELETE   /{postID}
//   - GET, POST                 /{postID}/comments
//   - GET, PUT, PATCH, DELETE   /{postID}/comments/{commentID}
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authorize(access.ContributionPolicy))
		r.Get("/", handler.listPosts)
		r.Post("/", handler.createPost)
		r.Get("/{postID}/comments", handler.listComments)
		r.Post("/{postID}/comments", handler.createComment)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authorize(access.OwnedObjectPolicy))
		r.Get("/{postID}", handler.getPost)
		r.Put("/{postID}", handler.updatePost)
		r.Patch("/{postID}", handler.updatePost)
		r.Delete("/{postID}", handler.deletePost)
		r.Get("/{postID}/comments/{commentID}", handler.getComment)
		r.Put("/{postID}/comments/{commentID}", handler.updateComment)
		r.Patch("/{postID}/comments/{commentID}", handler.updateComment)
		r.Delete("/{postID}/comments/{commentID}", handler.deleteComment)
	})

	return router
}

type textRequest struct {
	Text string `json:"text"`
}

// decodeText reads and validates a {"text": ...} body.
func decodeText(request *http.Request) (string, error) {
	var input textRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		return "", err
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text)
	return input.Text, validator.Err()
}

func (handler *Handler) loadPost(request *http.Request) (*Post, error) {
	id, err := requestutil.ID(request, FieldPostID, resourcePost)
	if err != nil {
		return nil, err
	}

	post, err := handler.service.GetPost(request.Context(), id)
	if err != nil {
		return nil, err
	}
	if err := access.OwnedObjectPolicy.Authorize(requestutil.Principal(request), request.Method, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (handler *Handler) loadComment(request *http.Request) (*Comment, error) {
	postID, err := requestutil.ID(request, FieldPostID, resourcePost)
	if err != nil {
		return nil, err
	}
	commentID, err := requestutil.ID(request, FieldCommentID, resourceComment)
	if err != nil {
		return nil, err
	}

	comment, err := handler.service.GetComment(request.Context(), postID, commentID)
	if err != nil {
		return nil, err
	}
	if err := access.OwnedObjectPolicy.Authorize(requestutil.Principal(request), request.Method, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// # Post Handlers

func (handler *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	posts, total, err := handler.service.ListPosts(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, posts, pagination.NewMeta(params, total))
}

func (handler *Handler) createPost(writer http.ResponseWriter, request *http.Request) {
	text, err := decodeText(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.CreatePost(request.Context(), requestutil.Principal(request), text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, post)
}

func (handler *Handler) getPost(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.loadPost(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, post)
}

func (handler *Handler) updatePost(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.loadPost(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	text, err := decodeText(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err = handler.service.UpdatePost(request.Context(), post, text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, post)
}

func (handler *Handler) deletePost(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.loadPost(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePost(request.Context(), post); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Comment Handlers

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	postID, err := requestutil.ID(request, FieldPostID, resourcePost)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	comments, total, err := handler.service.ListComments(request.Context(), postID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, comments, pagination.NewMeta(params, total))
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	postID, err := requestutil.ID(request, FieldPostID, resourcePost)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	text, err := decodeText(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(), requestutil.Principal(request), postID, text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, comment)
}

func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	comment, err := handler.loadComment(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comment)
}

func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	comment, err := handler.loadComment(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	text, err := decodeText(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err = handler.service.UpdateComment(request.Context(), comment, text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comment)
}

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
