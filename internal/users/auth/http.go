// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/critique/internal/platform/request"
	"github.com/taibuivan/critique/internal/platform/respond"
	"github.com/taibuivan/critique/internal/platform/validate"
	"github.com/taibuivan/critique/internal/users/account"
)

// # Definitions & Constructors

// Handler implements the /auth endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for the sign-in flow. Every endpoint is public.
//
// # Endpoints
//   - POST /email/          : Request a confirmation code.
//   - POST /token/          : Redeem a code for a token pair.
//   - POST /token/refresh/  : Exchange a refresh token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	for _, path := range []string{"/email", "/email/"} {
		router.Post(path, handler.requestCode)
	}
	for _, path := range []string{"/token", "/token/"} {
		router.Post(path, handler.redeemCode)
	}
	for _, path := range []string{"/token/refresh", "/token/refresh/"} {
		router.Post(path, handler.refresh)
	}

	return router
}

// # Request Payloads

type codeRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// validate checks the email, and the username when the caller chose one.
func (input codeRequest) validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, account.MaxEmailLength)
	if input.Username != "" {
		validator.MaxLen(FieldUsername, input.Username, account.MaxUsernameLength).
			Username(FieldUsername, input.Username, account.ReservedUsername)
	}
	return validator.Err()
}

type redeemRequest struct {
	Email            string `json:"email"`
	ConfirmationCode string `json:"confirmation_code"`
}

func (input redeemRequest) validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldConfirmationCode, input.ConfirmationCode)
	return validator.Err()
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// # Handlers

/*
RequestCode mails a confirmation code.

POST /api/v1/auth/email/

Response:
  - 200: Accepted
  - 400: Invalid email or username
  - 503: Mail relay unavailable
*/
func (handler *Handler) requestCode(writer http.ResponseWriter, request *http.Request) {
	var input codeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.Email = strings.TrimSpace(input.Email)
	input.Username = strings.TrimSpace(input.Username)

	if err := input.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	accepted, err := handler.service.RequestCode(request.Context(), RequestCodeInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, accepted)
}

/*
RedeemCode exchanges a confirmation code for a token pair.

POST /api/v1/auth/token/

Response:
  - 200: sec.TokenPair
  - 400: Missing fields or invalid code
  - 404: Unknown email
*/
func (handler *Handler) redeemCode(writer http.ResponseWriter, request *http.Request) {
	var input redeemRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.Email = strings.TrimSpace(input.Email)

	if err := input.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.service.RedeemCode(request.Context(), input.Email, input.ConfirmationCode)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, pair)
}

/*
Refresh rotates a refresh token.

POST /api/v1/auth/token/refresh/

Response:
  - 200: sec.TokenPair
  - 400: Missing token
  - 401: Invalid, expired or reused token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var input refreshRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Refresh == "" {
		respond.Error(writer, request, validate.RequiredError(FieldRefresh, "This field is required"))
		return
	}

	pair, err := handler.service.Refresh(request.Context(), input.Refresh)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, pair)
}
