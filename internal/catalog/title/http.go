// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/critique/internal/platform/access"
	"github.com/taibuivan/critique/internal/platform/middleware"
	requestutil "github.com/taibuivan/critique/internal/platform/request"
	"github.com/taibuivan/critique/internal/platform/respond"
	"github.com/taibuivan/critique/internal/platform/validate"
	"github.com/taibuivan/critique/pkg/pagination"
)

// Handler implements the /titles endpoints.
type Handler struct {
	service *Service
	now     func() time.Time
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, now: time.Now}
}

// Routes returns a [chi.Router] guarded by [access.CatalogPolicy].
//
// # Endpoints
//   - GET, POST            /           : ?category=&genre=&name=&year=
//   - GET, PATCH, DELETE   /{titleID}
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Authorize(access.CatalogPolicy))

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{titleID}", handler.get)
	router.Patch("/{titleID}", handler.update)
	router.Delete("/{titleID}", handler.delete)

	return router
}

// # Request Payloads

type createRequest struct {
	Name        string   `json:"name"`
	Year        *int     `json:"year"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

func (handler *Handler) validateCreate(input createRequest) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, strings.TrimSpace(input.Name)).
		MaxLen(FieldName, input.Name, MaxNameLength).
		Present(FieldYear, input.Year != nil)
	if input.Year != nil {
		handler.validateYear(validator, *input.Year)
	}
	return validator.Err()
}

func (handler *Handler) validatePatch(patch Patch) error {
	validator := &validate.Validator{}
	if patch.Name != nil {
		validator.Required(FieldName, strings.TrimSpace(*patch.Name)).MaxLen(FieldName, *patch.Name, MaxNameLength)
	}
	if patch.Year != nil {
		handler.validateYear(validator, *patch.Year)
	}
	return validator.Err()
}

// validateYear rejects titles from the future.
func (handler *Handler) validateYear(validator *validate.Validator, year int) {
	validator.Custom(FieldYear, year > handler.now().Year(), "Year cannot be in the future")
}

// # Handlers

/*
List returns a page of titles.

GET /api/v1/titles?category=&genre=&name=&year=

Response:
  - 200: []Title with pagination metadata
  - 400: Non-numeric year
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	filter := Filter{
		Category: strings.TrimSpace(query.Get("category")),
		Genre:    strings.TrimSpace(query.Get("genre")),
		Name:     strings.TrimSpace(query.Get("name")),
	}

	if raw := query.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			respond.Error(writer, request, validate.RequiredError(FieldYear, "Enter a whole number"))
			return
		}
		filter.Year = year
	}

	params := pagination.FromRequest(request)
	titles, total, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, titles, pagination.NewMeta(params, total))
}

/*
Create adds a title.

POST /api/v1/titles

Response:
  - 201: Title
  - 400: Validation failure or unknown category/genre
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := handler.validateCreate(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Create(request.Context(), CreateInput{
		Name:        input.Name,
		Year:        *input.Year,
		Description: input.Description,
		Category:    strings.TrimSpace(input.Category),
		Genre:       input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, title)
}

// get handles GET /api/v1/titles/{titleID}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	title, err := handler.loadAuthorized(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, title)
}

// update handles PATCH /api/v1/titles/{titleID}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := handler.validatePatch(patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.loadAuthorized(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err = handler.service.Update(request.Context(), title, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, title)
}

// delete handles DELETE /api/v1/titles/{titleID}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	title, err := handler.loadAuthorized(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), title); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// loadAuthorized fetches the {titleID} target and runs the object-level check.
func (handler *Handler) loadAuthorized(request *http.Request) (*Title, error) {
	id, err := requestutil.ID(request, FieldTitleID, resourceTitle)
	if err != nil {
		return nil, err
	}

	title, err := handler.service.Get(request.Context(), id)
	if err != nil {
		return nil, err
	}
	if err := access.CatalogPolicy.Authorize(requestutil.Principal(request), request.Method, title); err != nil {
		return nil, err
	}
	return title, nil
}
