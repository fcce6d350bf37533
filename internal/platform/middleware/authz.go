// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/critique/internal/platform/access"
	"github.com/taibuivan/critique/internal/platform/apperr"
	"github.com/taibuivan/critique/internal/platform/constants"
	"github.com/taibuivan/critique/internal/platform/ctxutil"
	"github.com/taibuivan/critique/internal/platform/respond"
	"github.com/taibuivan/critique/internal/platform/sec"
)

// TokenVerifier defines what the middleware needs to verify access tokens.
type TokenVerifier interface {
	VerifyAccess(tokenString string) (*sec.AuthClaims, error)
}

// PrincipalLoader resolves a token subject into a fresh [access.Principal].
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, userID string) (access.Principal, error)
}

// Authenticate resolves the request's principal.
//
// # Flow
//  1. No 'Authorization' header: the request proceeds as anonymous.
//  2. Malformed header or invalid token: 401.
//  3. The subject is reloaded through [PrincipalLoader]. A missing or inactive
//     user is rejected with 401, so role changes and deactivation apply on the
//     next request instead of at token expiry.
func Authenticate(verifier TokenVerifier, loader PrincipalLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyAccess(token)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Fresh Principal ────────────────────────────────────────────
			principal, err := loader.LoadPrincipal(request.Context(), claims.Subject)
			if apperr.HasCode(err, apperr.CodeNotFound) || (err == nil && !principal.IsActive) {
				respond.Error(writer, request, apperr.Unauthorized("User is inactive or deleted"))
				return
			}
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			logger := ctxutil.GetLogger(ctx).With(slog.String("user_id", principal.ID))
			ctx = ctxutil.WithLogger(ctx, logger)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// Authorize runs the collection-level check of policy before the handler.
// Object-level checks are the handler's job once the target is loaded.
//
// Must be registered in the router AFTER [Authenticate].
func Authorize(policy access.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := ctxutil.GetPrincipal(request.Context())
			if err := policy.Authorize(principal, request.Method, nil); err != nil {
				respond.Error(writer, request, err)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
