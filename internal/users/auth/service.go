// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/critique/internal/platform/access"
	"github.com/taibuivan/critique/internal/platform/apperr"
	"github.com/taibuivan/critique/internal/platform/ctxutil"
	"github.com/taibuivan/critique/internal/platform/mail"
	"github.com/taibuivan/critique/internal/platform/sec"
	"github.com/taibuivan/critique/internal/users/account"
	"github.com/taibuivan/critique/pkg/uuid"
)

// Service implements the confirmation and token exchange use cases.
type Service struct {
	users    account.Repository
	codes    CodeIssuer
	tokens   TokenIssuer
	denylist Denylist
	mailer   mail.Sender
	now      func() time.Time
}

// NewService constructs a new [Service].
func NewService(users account.Repository, codes CodeIssuer, tokens TokenIssuer, denylist Denylist, mailer mail.Sender) *Service {
	return &Service{
		users:    users,
		codes:    codes,
		tokens:   tokens,
		denylist: denylist,
		mailer:   mailer,
		now:      time.Now,
	}
}

// # Confirmation Codes

// RequestCodeInput is a code request. Username is only used when the account
// is created and defaults to the email.
type RequestCodeInput struct {
	Email    string
	Username string
}

/*
RequestCode mails a fresh confirmation code to input.Email.

Description: Repeated requests for the same email reuse the account and never
fail. Each request supersedes every code sent before it.

Returns:
  - *Accepted: The submitted email
  - err: DeliveryFailed when the mail relay rejects the message
*/
func (service *Service) RequestCode(ctx context.Context, input RequestCodeInput) (*Accepted, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := service.findOrCreate(ctx, email, input.Username)
	if err != nil {
		return nil, err
	}

	version, err := service.users.BumpCodeVersion(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	code := service.codes.Generate(sec.Fingerprint{
		UserID:  user.ID,
		Email:   user.Email,
		Active:  user.IsActive,
		Version: version,
	})

	err = service.mailer.Send(ctx, mail.Message{
		To:      user.Email,
		Subject: mailSubject,
		Body:    code,
	})
	if err != nil {
		return nil, apperr.DeliveryFailed(err)
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "auth_code_sent",
		slog.String("user_id", user.ID),
		slog.String("sender", service.mailer.Name()),
	)

	return &Accepted{Email: input.Email}, nil
}

// findOrCreate returns the account for email, creating it inactive when absent.
// A concurrent request that creates the same email first wins.
func (service *Service) findOrCreate(ctx context.Context, email, username string) (*account.User, error) {
	user, err := service.users.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, err
	}

	if username == "" {
		if username, err = service.defaultUsername(ctx, email); err != nil {
			return nil, err
		}
	}

	user = &account.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Role:     access.RoleUser,
		IsActive: false,
	}

	err = service.users.Create(ctx, user)
	if err == nil {
		ctxutil.GetLogger(ctx).InfoContext(ctx, "auth_account_created", slog.String("user_id", user.ID))
		return user, nil
	}

	if existing, findErr := service.users.FindByEmail(ctx, email); findErr == nil {
		return existing, nil
	}
	return nil, err
}

// defaultUsername derives a free username from email. Characters outside the
// username alphabet become underscores and a taken name gets a random suffix.
func (service *Service) defaultUsername(ctx context.Context, email string) (string, error) {
	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case strings.ContainsRune("_.@+-", r):
			return r
		}
		return '_'
	}, email)
	if len(base) > account.MaxUsernameLength-usernameSuffixLength {
		base = base[:account.MaxUsernameLength-usernameSuffixLength]
	}

	_, err := service.users.FindByUsername(ctx, base)
	switch {
	case apperr.HasCode(err, apperr.CodeNotFound):
		return base, nil
	case err != nil:
		return "", err
	}
	random := uuid.New()
	return base + "-" + random[len(random)-(usernameSuffixLength-1):], nil
}

/*
RedeemCode activates the account for email and issues a token pair.

Description: A rejected code leaves the account untouched, so the same code
can be retried until it expires. A successful redemption consumes the code.

Returns:
  - sec.TokenPair: Fresh access and refresh tokens
  - err: NotFound for an unknown email, ErrInvalidCode otherwise
*/
func (service *Service) RedeemCode(ctx context.Context, email, code string) (sec.TokenPair, error) {
	user, err := service.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return sec.TokenPair{}, err
	}

	fingerprint := sec.Fingerprint{
		UserID:  user.ID,
		Email:   user.Email,
		Active:  user.IsActive,
		Version: user.CodeVersion,
	}
	if !service.codes.Check(fingerprint, code) {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "auth_code_rejected", slog.String("user_id", user.ID))
		return sec.TokenPair{}, ErrInvalidCode
	}

	swapped, err := service.users.Activate(ctx, user.ID, user.CodeVersion)
	if err != nil {
		return sec.TokenPair{}, err
	}
	if !swapped {
		return sec.TokenPair{}, ErrInvalidCode
	}

	pair, err := service.tokens.IssuePair(user.ID)
	if err != nil {
		return sec.TokenPair{}, fmt.Errorf("auth_service_issue_pair_failed: %w", err)
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "auth_code_redeemed",
		slog.String("user_id", user.ID),
		slog.Bool("was_active", user.IsActive),
	)

	return pair, nil
}

// # Token Exchange

/*
Refresh trades a refresh token for a new pair.

Description: Each refresh token is accepted once. Its ID goes to the
denylist until the token would have expired anyway.
*/
func (service *Service) Refresh(ctx context.Context, refreshToken string) (sec.TokenPair, error) {
	claims, err := service.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return sec.TokenPair{}, apperr.Unauthorized("Invalid or expired token")
	}

	ttl := claims.ExpiresAt.Sub(service.now())
	fresh, err := service.denylist.Revoke(ctx, claims.ID, ttl)
	if err != nil {
		return sec.TokenPair{}, err
	}
	if !fresh {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "auth_refresh_reused", slog.String("user_id", claims.Subject))
		return sec.TokenPair{}, apperr.Unauthorized("Token has already been used")
	}

	user, err := service.users.FindByID(ctx, claims.Subject)
	if apperr.HasCode(err, apperr.CodeNotFound) || (err == nil && !user.IsActive) {
		return sec.TokenPair{}, apperr.Unauthorized("User is inactive or deleted")
	}
	if err != nil {
		return sec.TokenPair{}, err
	}

	pair, err := service.tokens.IssuePair(user.ID)
	if err != nil {
		return sec.TokenPair{}, fmt.Errorf("auth_service_issue_pair_failed: %w", err)
	}
	return pair, nil
}
