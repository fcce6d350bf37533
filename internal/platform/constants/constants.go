// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds fixed values shared across packages: server
// timeouts, rate-limiter bookkeeping, header names and Redis key prefixes.
// Anything an operator may want to tune lives in config instead.
package constants

import "time"

const (
	AppName    = "critique-api"
	AppVersion = "0.1.0-dev"

	// AuthIssuer is the 'iss' claim of every token this service signs.
	AuthIssuer = "critique.app"
)

// # HTTP Server

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout bounds every request, middleware included.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight requests get after SIGTERM.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiter Bookkeeping

const (
	// RateLimitCleanupInterval is how often idle per-IP buckets are swept.
	RateLimitCleanupInterval = time.Minute

	// RateLimitClientTTL is the idle time after which a bucket is dropped.
	RateLimitClientTTL = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # Health Payload Keys

const (
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Redis Key Taxonomy

const (
	// RedisPrefixRevokedToken prefixes the jti of every redeemed refresh token.
	RedisPrefixRevokedToken = "auth:revoked_token:"
)
