// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements passwordless sign-in by emailed confirmation codes.

# Flow

 1. RequestCode: the caller submits an email. An inactive account is created
    if none exists, the account's code version is bumped, and a code bound to
    the account's current state is mailed out.
 2. RedeemCode: the caller submits the email and code. A valid code activates
    the account and yields an access/refresh token pair.
 3. Refresh: a refresh token is exchanged, exactly once, for a new pair.

Codes are never stored. They are recomputed from (id, email, active, code
version, issued-at) and a server secret, so any change to that state (a newer
request or a successful redemption) invalidates every earlier code.
*/
package auth

import (
	"context"
	"time"

	"github.com/taibuivan/critique/internal/platform/apperr"
	"github.com/taibuivan/critique/internal/platform/sec"
)

// # Contracts

// CodeIssuer generates and checks confirmation codes.
type CodeIssuer interface {
	Generate(fingerprint sec.Fingerprint) string
	Check(fingerprint sec.Fingerprint, code string) bool
}

// TokenIssuer signs and verifies JWT pairs.
type TokenIssuer interface {
	IssuePair(userID string) (sec.TokenPair, error)
	VerifyRefresh(tokenString string) (*sec.AuthClaims, error)
}

// Denylist remembers refresh tokens that were already exchanged.
type Denylist interface {
	/*
		Revoke records tokenID until ttl elapses.

		Returns:
		  - bool: false when tokenID was already recorded
	*/
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) (bool, error)
}

// # Results

// Accepted echoes a code request. It never reveals whether the account existed.
type Accepted struct {
	Email string `json:"email"`
}

// # Errors

// ErrInvalidCode is the single answer for malformed, expired and superseded codes.
var ErrInvalidCode = apperr.ValidationError("token is not valid")

// # Field Identifiers

const (
	FieldEmail            = "email"
	FieldUsername         = "username"
	FieldConfirmationCode = "confirmation_code"
	FieldRefresh          = "refresh"
)

// usernameSuffixLength is the room kept for "-xxxxxxxx" on derived usernames.
const usernameSuffixLength = 9

// mailSubject is the subject line of confirmation emails.
const mailSubject = "Your confirmation code"
