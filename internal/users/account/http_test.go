// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/critique/internal/platform/access"
	"github.com/taibuivan/critique/internal/platform/ctxutil"
	"github.com/taibuivan/critique/internal/users/account"
)

var (
	member = &account.User{ID: "0190a000-0000-7000-8000-00000000000a", Username: "member", Email: "member@x.com", Role: access.RoleUser, IsActive: true}
	admin  = &account.User{ID: "0190a000-0000-7000-8000-00000000000b", Username: "admin", Email: "admin@x.com", Role: access.RoleAdmin, IsActive: true}
)

// newRouter mounts the handler under /users with principal injected the way
// middleware.Authenticate would.
func newRouter(principal access.Principal) http.Handler {
	service, _ := newService(
		&account.User{ID: member.ID, Username: member.Username, Email: member.Email, Role: member.Role, IsActive: true},
		&account.User{ID: admin.ID, Username: admin.Username, Email: admin.Email, Role: admin.Role, IsActive: true},
	)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithPrincipal(request.Context(), principal)))
		})
	})
	router.Mount("/users", account.NewHandler(service).Routes())
	return router
}

func serve(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_DeleteMe(t *testing.T) {
	tests := []struct {
		name      string
		principal access.Principal
		status    int
	}{
		{"anonymous", access.Anonymous(), http.StatusUnauthorized},
		{"member", member.Principal(), http.StatusMethodNotAllowed},
		{"admin", admin.Principal(), http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(newRouter(tt.principal), http.MethodDelete, "/users/me", "")
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}

func TestHandler_Me(t *testing.T) {
	router := newRouter(member.Principal())

	recorder := serve(router, http.MethodGet, "/users/me", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "member", body.Data["username"])
	assert.NotContains(t, body.Data, "id")

	recorder = serve(router, http.MethodPatch, "/users/me", `{"first_name":"Mia","role":"admin"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"first_name":"Mia"`)
	assert.Contains(t, recorder.Body.String(), `"role":"user"`)

	recorder = serve(newRouter(access.Anonymous()), http.MethodGet, "/users/me", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestHandler_Administration(t *testing.T) {
	tests := []struct {
		name      string
		principal access.Principal
		method    string
		path      string
		body      string
		status    int
	}{
		{"member_cannot_list", member.Principal(), http.MethodGet, "/users/", "", http.StatusForbidden},
		{"anonymous_cannot_list", access.Anonymous(), http.MethodGet, "/users/", "", http.StatusUnauthorized},
		{"admin_lists", admin.Principal(), http.MethodGet, "/users/?search=mem", "", http.StatusOK},
		{"admin_gets", admin.Principal(), http.MethodGet, "/users/member", "", http.StatusOK},
		{"admin_missing", admin.Principal(), http.MethodGet, "/users/ghost", "", http.StatusNotFound},
		{"admin_creates", admin.Principal(), http.MethodPost, "/users/", `{"username":"new","email":"new@x.com"}`, http.StatusCreated},
		{"reserved_username", admin.Principal(), http.MethodPost, "/users/", `{"username":"me","email":"me@x.com"}`, http.StatusBadRequest},
		{"duplicate_email", admin.Principal(), http.MethodPost, "/users/", `{"username":"dup","email":"member@x.com"}`, http.StatusBadRequest},
		{"invalid_role", admin.Principal(), http.MethodPatch, "/users/member", `{"role":"root"}`, http.StatusBadRequest},
		{"admin_promotes", admin.Principal(), http.MethodPatch, "/users/member", `{"role":"moderator"}`, http.StatusOK},
		{"admin_deletes", admin.Principal(), http.MethodDelete, "/users/member", "", http.StatusNoContent},
		{"member_cannot_delete", member.Principal(), http.MethodDelete, "/users/admin", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(newRouter(tt.principal), tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, recorder.Code, recorder.Body.String())
		})
	}
}
