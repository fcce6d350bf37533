// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/critique/internal/catalog/reference"
	"github.com/taibuivan/critique/internal/catalog/reference/referencetest"
	"github.com/taibuivan/critique/internal/platform/access"
	"github.com/taibuivan/critique/internal/platform/ctxutil"
)

var (
	admin  = access.Principal{ID: "a-1", Role: access.RoleAdmin, IsActive: true, Authenticated: true}
	member = access.Principal{ID: "u-1", Role: access.RoleUser, IsActive: true, Authenticated: true}
)

func newRouter(principal access.Principal, repo *referencetest.Repository) http.Handler {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithPrincipal(request.Context(), principal)))
		})
	})
	router.Mount("/categories", reference.NewHandler(reference.NewService(reference.Categories, repo)).Routes())
	return router
}

func seeded() *referencetest.Repository {
	repo := referencetest.NewRepository(reference.Categories)
	repo.Seed(
		&reference.Reference{ID: "c-1", Name: "Films", Slug: "films"},
		&reference.Reference{ID: "c-2", Name: "Books", Slug: "books"},
	)
	return repo
}

func serve(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_List_Public(t *testing.T) {
	recorder := serve(newRouter(access.Anonymous(), seeded()), http.MethodGet, "/categories/?search=boo", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []reference.Reference `json:"data"`
		Meta struct {
			Count int `json:"count"`
		} `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, 1, body.Meta.Count)
	assert.Equal(t, "books", body.Data[0].Slug)
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name      string
		principal access.Principal
		body      string
		status    int
		slug      string
	}{
		{"admin_explicit_slug", admin, `{"name":"Music","slug":"music"}`, http.StatusCreated, "music"},
		{"admin_derived_slug", admin, `{"name":"Série Noire"}`, http.StatusCreated, "serie-noire"},
		{"duplicate_slug", admin, `{"name":"Movies","slug":"films"}`, http.StatusBadRequest, ""},
		{"bad_slug", admin, `{"name":"Music","slug":"Not A Slug"}`, http.StatusBadRequest, ""},
		{"missing_name", admin, `{"slug":"music"}`, http.StatusBadRequest, ""},
		{"member_forbidden", member, `{"name":"Music"}`, http.StatusForbidden, ""},
		{"anonymous_unauthorized", access.Anonymous(), `{"name":"Music"}`, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(newRouter(tt.principal, seeded()), http.MethodPost, "/categories/", tt.body)
			require.Equal(t, tt.status, recorder.Code, recorder.Body.String())

			if tt.slug != "" {
				var body struct {
					Data reference.Reference `json:"data"`
				}
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
				assert.Equal(t, tt.slug, body.Data.Slug)
			}
		})
	}
}

func TestHandler_Delete(t *testing.T) {
	tests := []struct {
		name      string
		principal access.Principal
		path      string
		inUse     bool
		status    int
	}{
		{"admin", admin, "/categories/films", false, http.StatusNoContent},
		{"missing", admin, "/categories/ghost", false, http.StatusNotFound},
		{"in_use", admin, "/categories/films", true, http.StatusConflict},
		{"member", member, "/categories/films", false, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := seeded()
			repo.InUse["c-1"] = tt.inUse
			recorder := serve(newRouter(tt.principal, repo), http.MethodDelete, tt.path, "")
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}

func TestHandler_DetailMethodsNotAllowed(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch} {
		recorder := serve(newRouter(admin, seeded()), method, "/categories/films", `{}`)
		assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code, method)
	}
}
