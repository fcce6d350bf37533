// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/critique/internal/platform/access"
	"github.com/taibuivan/critique/internal/platform/apperr"
	"github.com/taibuivan/critique/internal/platform/middleware"
	requestutil "github.com/taibuivan/critique/internal/platform/request"
	"github.com/taibuivan/critique/internal/platform/respond"
	"github.com/taibuivan/critique/internal/platform/validate"
	"github.com/taibuivan/critique/pkg/pagination"
	"github.com/taibuivan/critique/pkg/slug"
)

// Handler implements /categories or /genres, depending on the service's [Kind].
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] guarded by [access.CatalogPolicy].
//
// # Endpoints
//   - GET    /        : Paginated list (?search=)
//   - POST   /        : Create (admin)
//   - DELETE /{slug}  : Delete (admin)
//
// Any other method on /{slug} answers 405.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Authorize(access.CatalogPolicy))

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Delete("/{slug}", handler.delete)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch} {
		router.Method(method, "/{slug}", http.HandlerFunc(handler.notAllowed))
	}

	return router
}

type createRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// normalize trims the input and derives a missing slug from the name.
func (input *createRequest) normalize() {
	input.Name = strings.TrimSpace(input.Name)
	input.Slug = strings.TrimSpace(input.Slug)
	if input.Slug == "" {
		input.Slug = slug.From(input.Name)
	}
}

func (input createRequest) validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLength).
		Required(FieldSlug, input.Slug).
		MaxLen(FieldSlug, input.Slug, MaxSlugLength)
	if input.Slug != "" {
		validator.Slug(FieldSlug, input.Slug)
	}
	return validator.Err()
}

// list handles GET /.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{Search: strings.TrimSpace(request.URL.Query().Get("search"))}

	references, total, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, references, pagination.NewMeta(params, total))
}

// create handles POST /.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input.normalize()
	if err := input.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	reference, err := handler.service.Create(request.Context(), CreateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, reference)
}

// delete handles DELETE /{slug}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	reference, err := handler.service.Get(request.Context(), requestutil.Param(request, FieldSlug))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := access.CatalogPolicy.Authorize(requestutil.Principal(request), request.Method, reference); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), reference); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) notAllowed(writer http.ResponseWriter, request *http.Request) {
	respond.Error(writer, request, apperr.MethodNotAllowed(request.Method))
}
