// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/critique/internal/platform/access"
	"github.com/taibuivan/critique/internal/platform/middleware"
	requestutil "github.com/taibuivan/critique/internal/platform/request"
	"github.com/taibuivan/critique/internal/platform/respond"
	"github.com/taibuivan/critique/internal/platform/validate"
	"github.com/taibuivan/critique/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the /users endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for account management.
//
// # Endpoints
//   - GET, PATCH      /me          : Own profile (IsSelf).
//   - DELETE          /me          : Always 405.
//   - GET, POST       /            : Account administration.
//   - GET, PATCH, DELETE /{username}
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Route("/me", func(r chi.Router) {
		r.With(middleware.Authorize(access.SelfPolicy)).Get("/", handler.getMe)
		r.With(middleware.Authorize(access.SelfPolicy)).Patch("/", handler.updateMe)
		r.Delete("/", handler.deleteMe)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authorize(access.AdminPolicy))
		r.Get("/", handler.list)
		r.Post("/", handler.create)
		r.Get("/{username}", handler.get)
		r.Patch("/{username}", handler.update)
		r.Delete("/{username}", handler.delete)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Bio       string      `json:"bio"`
	Role      access.Role `json:"role"`
}

func (input createRequest) validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MaxLen(FieldUsername, input.Username, MaxUsernameLength).
		Username(FieldUsername, input.Username, ReservedUsername).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, MaxEmailLength).
		MaxLen(FieldFirstName, input.FirstName, MaxNameLength).
		MaxLen(FieldLastName, input.LastName, MaxNameLength)
	if input.Role != "" {
		validator.OneOf(FieldRole, string(input.Role), access.RoleNames()...)
	}
	return validator.Err()
}

func validatePatch(patch Patch) error {
	validator := &validate.Validator{}
	if patch.Username != nil {
		validator.Required(FieldUsername, *patch.Username).
			MaxLen(FieldUsername, *patch.Username, MaxUsernameLength).
			Username(FieldUsername, *patch.Username, ReservedUsername)
	}
	if patch.Email != nil {
		validator.Email(FieldEmail, *patch.Email).MaxLen(FieldEmail, *patch.Email, MaxEmailLength)
	}
	if patch.FirstName != nil {
		validator.MaxLen(FieldFirstName, *patch.FirstName, MaxNameLength)
	}
	if patch.LastName != nil {
		validator.MaxLen(FieldLastName, *patch.LastName, MaxNameLength)
	}
	if patch.Role != nil {
		validator.OneOf(FieldRole, string(*patch.Role), access.RoleNames()...)
	}
	return validator.Err()
}

// # Self Service Handlers

/*
GetMe returns the caller's own profile.

GET /api/v1/users/me

Response:
  - 200: User
  - 401: Anonymous caller
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.service.Me(request.Context(), requestutil.Principal(request), request.Method)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

/*
UpdateMe patches the caller's own profile.

PATCH /api/v1/users/me

Description: Email and role cannot be changed here and are silently ignored.

Response:
  - 200: User
  - 400: Validation failure or duplicate username
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	patch = patch.SelfService()
	if err := validatePatch(patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateMe(request.Context(), requestutil.Principal(request), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

/*
DeleteMe rejects self-deletion.

DELETE /api/v1/users/me

Response:
  - 401: Anonymous caller
  - 405: Every authenticated caller, administrators included
*/
func (handler *Handler) deleteMe(writer http.ResponseWriter, request *http.Request) {
	respond.Error(writer, request, handler.service.DeleteMe(request.Context(), requestutil.Principal(request)))
}

// # Administration Handlers

/*
List returns a page of accounts.

GET /api/v1/users?search=&page=&limit=

Response:
  - 200: []User with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{Search: strings.TrimSpace(request.URL.Query().Get("search"))}

	users, total, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, users, pagination.NewMeta(params, total))
}

/*
Create registers an account without the confirmation flow.

POST /api/v1/users

Response:
  - 201: User
  - 400: Validation failure or duplicate username/email
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := input.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Create(request.Context(), CreateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, user)
}

// get handles GET /api/v1/users/{username}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.loadAuthorized(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

// update handles PATCH /api/v1/users/{username}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validatePatch(patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.loadAuthorized(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Update(request.Context(), requestutil.Param(request, FieldUsername), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

// delete handles DELETE /api/v1/users/{username}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if _, err := handler.loadAuthorized(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.Param(request, FieldUsername)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// loadAuthorized fetches the {username} target and runs the object-level check.
func (handler *Handler) loadAuthorized(request *http.Request) (*User, error) {
	user, err := handler.service.Get(request.Context(), requestutil.Param(request, FieldUsername))
	if err != nil {
		return nil, err
	}
	if err := access.AdminPolicy.Authorize(requestutil.Principal(request), request.Method, user); err != nil {
		return nil, err
	}
	return user, nil
}
