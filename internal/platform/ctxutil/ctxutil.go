// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil stores and reads the per-request values the middleware
// chain attaches: request ID, scoped logger and principal.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/critique/internal/platform/access"
)

// contextKey is unexported so no other package can read or overwrite these
// entries by accident.
type contextKey int

const (
	requestIDKey contextKey = iota
	loggerKey
	principalKey
)

// # Request Tracing

// WithRequestID attaches the X-Request-ID correlation value.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the request ID, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// # Structured Logging

// WithLogger attaches a request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request-scoped logger, falling back to slog.Default.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// # Identity & Access

// WithPrincipal attaches the authenticated (or anonymous) principal.
func WithPrincipal(ctx context.Context, principal access.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// GetPrincipal returns the request's principal. Requests that never went
// through authentication are anonymous.
func GetPrincipal(ctx context.Context) access.Principal {
	if principal, ok := ctx.Value(principalKey).(access.Principal); ok {
		return principal
	}
	return access.Anonymous()
}
