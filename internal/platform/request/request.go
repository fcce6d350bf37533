// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/critique/internal/platform/access"
	"github.com/taibuivan/critique/internal/platform/apperr"
	"github.com/taibuivan/critique/internal/platform/ctxutil"
	"github.com/taibuivan/critique/internal/platform/validate"
	"github.com/taibuivan/critique/pkg/uuid"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, request.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
ID retrieves a named URL parameter that must be a UUID.

Malformed values are reported as a not-found resource, never as a server error.
*/
func ID(request *http.Request, name, resource string) (string, error) {
	id := chi.URLParam(request, name)
	if !uuid.Valid(id) {
		return "", apperr.NotFound(resource)
	}
	return id, nil
}

/*
Principal returns the request's principal (anonymous when unauthenticated).
*/
func Principal(request *http.Request) access.Principal {
	return ctxutil.GetPrincipal(request.Context())
}

/*
RequiredPrincipal ensures the request is authenticated and returns its principal.

Returns:
  - access.Principal: The authenticated principal
  - error: apperr.Unauthorized if the request is anonymous
*/
func RequiredPrincipal(request *http.Request) (access.Principal, error) {
	principal := ctxutil.GetPrincipal(request.Context())
	if !principal.Authenticated {
		return principal, apperr.Unauthorized("Authentication required")
	}
	return principal, nil
}
