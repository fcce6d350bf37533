// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/critique/internal/platform/access"
	"github.com/taibuivan/critique/internal/platform/ctxutil"
)

/*
TestContext_Defaults checks what a bare context yields.
*/
func TestContext_Defaults(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRequestID(ctx))
	assert.Same(t, slog.Default(), ctxutil.GetLogger(ctx))
	assert.Equal(t, access.Anonymous(), ctxutil.GetPrincipal(ctx))
}

/*
TestContext_RoundTrip stores every value and reads it back.
*/
func TestContext_RoundTrip(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	principal := access.Principal{ID: "user-123", Role: access.RoleAdmin, IsActive: true, Authenticated: true}

	ctx := ctxutil.WithRequestID(context.Background(), "req-1")
	ctx = ctxutil.WithLogger(ctx, logger)
	ctx = ctxutil.WithPrincipal(ctx, principal)

	assert.Equal(t, "req-1", ctxutil.GetRequestID(ctx))
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
	assert.Equal(t, principal, ctxutil.GetPrincipal(ctx))
	assert.True(t, ctxutil.GetPrincipal(ctx).IsAdmin())
}

type foreignKey string

/*
TestContext_KeysAreIsolated ensures plain string keys cannot shadow ours.
*/
func TestContext_KeysAreIsolated(t *testing.T) {
	ctx := context.WithValue(context.Background(), foreignKey("request_id"), "spoofed")
	ctx = context.WithValue(ctx, foreignKey("principal"), access.Principal{ID: "admin", Authenticated: true})

	assert.Empty(t, ctxutil.GetRequestID(ctx))
	assert.False(t, ctxutil.GetPrincipal(ctx).Authenticated)
}
