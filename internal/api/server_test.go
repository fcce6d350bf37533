// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"crypto/rand"
	"crypto/rsa"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/critique/internal/api"
	"github.com/taibuivan/critique/internal/blog/post"
	"github.com/taibuivan/critique/internal/catalog/reference"
	"github.com/taibuivan/critique/internal/catalog/reference/referencetest"
	"github.com/taibuivan/critique/internal/catalog/title"
	"github.com/taibuivan/critique/internal/platform/access"
	"github.com/taibuivan/critique/internal/platform/config"
	"github.com/taibuivan/critique/internal/platform/mail"
	"github.com/taibuivan/critique/internal/platform/sec"
	"github.com/taibuivan/critique/internal/social/review"
	"github.com/taibuivan/critique/internal/users/account"
	"github.com/taibuivan/critique/internal/users/account/accounttest"
	"github.com/taibuivan/critique/internal/users/auth"
)

const adminID = "0190a000-0000-7000-8000-0000000000a1"

type fixture struct {
	router http.Handler
	tokens *sec.TokenService
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokens := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "critique.test", 15*time.Minute, time.Hour)

	users := accounttest.NewRepository()
	users.Seed(&account.User{ID: adminID, Username: "root", Email: "root@critique.test", Role: access.RoleAdmin, IsActive: true})
	accounts := account.NewService(users)

	categories := reference.NewService(reference.Categories, referencetest.NewRepository(reference.Categories))
	genres := reference.NewService(reference.Genres, referencetest.NewRepository(reference.Genres))
	titles := title.NewService(nil, categories, genres)

	cfg := &config.Config{Environment: "development", ServerPort: "0"}
	logger := slog.New(slog.DiscardHandler)

	codes, err := sec.NewCodeGenerator("router-secret", time.Hour)
	require.NoError(t, err)
	rdb := goredis.NewClient(&goredis.Options{Addr: miniredis.RunT(t).Addr()})
	t.Cleanup(func() { rdb.Close() })
	signIn := auth.NewService(users, codes, tokens, auth.NewRedisDenylist(rdb), mail.NewLogSender(logger))

	router := api.NewRouter(cfg, logger, api.Dependencies{
		Verifier: tokens,
		Loader:   accounts,
		Registry: prometheus.NewRegistry(),
	}, api.Handlers{
		Liveness:   func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) },
		Readiness:  func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) },
		Auth:       auth.NewHandler(signIn),
		Users:      account.NewHandler(accounts),
		Categories: reference.NewHandler(categories),
		Genres:     reference.NewHandler(genres),
		Titles:     title.NewHandler(titles),
		Reviews:    review.NewHandler(review.NewService(titles, nil, nil)),
		Posts:      post.NewHandler(post.NewService(nil)),
	})

	return fixture{router: router, tokens: tokens}
}

func (f fixture) serve(method, path, token, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, request)
	return recorder
}

func TestRouter_Authentication(t *testing.T) {
	f := newFixture(t)
	pair, err := f.tokens.IssuePair(adminID)
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		status int
	}{
		{"anonymous_read", http.MethodGet, "/api/v1/categories/", "", "", http.StatusOK},
		{"anonymous_write", http.MethodPost, "/api/v1/categories/", "", `{"name":"Film"}`, http.StatusUnauthorized},
		{"garbage_token", http.MethodGet, "/api/v1/categories/", "not-a-jwt", "", http.StatusUnauthorized},
		{"refresh_as_access", http.MethodGet, "/api/v1/users/me", pair.RefreshToken, "", http.StatusUnauthorized},
		{"admin_write", http.MethodPost, "/api/v1/genres/", pair.AccessToken, `{"name":"Drama"}`, http.StatusCreated},
		{"me", http.MethodGet, "/api/v1/users/me", pair.AccessToken, "", http.StatusOK},
		{"me_anonymous", http.MethodGet, "/api/v1/users/me", "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := f.serve(tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.status, recorder.Code, recorder.Body.String())
		})
	}
}

func TestRouter_SignInIgnoresBearerToken(t *testing.T) {
	f := newFixture(t)
	pair, err := f.tokens.IssuePair(adminID)
	require.NoError(t, err)

	const stale = "expired.access.token"

	recorder := f.serve(http.MethodPost, "/api/v1/auth/email/", stale, `{"email":"new@critique.test"}`)
	assert.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	recorder = f.serve(http.MethodPost, "/api/v1/auth/token/refresh/", stale, `{"refresh":"`+pair.RefreshToken+`"}`)
	assert.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	recorder = f.serve(http.MethodGet, "/api/v1/categories/", stale, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRouter_Infrastructure(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusOK, f.serve(http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, f.serve(http.MethodGet, "/ready", "", "").Code)

	missing := f.serve(http.MethodGet, "/api/v2/nothing", "", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Contains(t, missing.Body.String(), `"code":"NOT_FOUND"`)

	f.serve(http.MethodGet, "/api/v1/categories/", "", "")
	metrics := f.serve(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "critique_http_requests_total")
}

func TestRouter_Headers(t *testing.T) {
	f := newFixture(t)

	recorder := f.serve(http.MethodGet, "/health", "", "")
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}
