// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/critique/internal/platform/access"
	"github.com/taibuivan/critique/internal/platform/apperr"
	"github.com/taibuivan/critique/internal/platform/ctxutil"
	"github.com/taibuivan/critique/pkg/pagination"
	"github.com/taibuivan/critique/pkg/uuid"
)

// Service implements account management use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// # Authentication Support

// LoadPrincipal resolves a token subject into a fresh principal. It satisfies
// middleware.PrincipalLoader.
func (service *Service) LoadPrincipal(ctx context.Context, userID string) (access.Principal, error) {
	user, err := service.repository.FindByID(ctx, userID)
	if err != nil {
		return access.Principal{}, err
	}
	return user.Principal(), nil
}

// # Administration

// List returns a page of accounts.
func (service *Service) List(ctx context.Context, filter Filter, params pagination.Params) ([]*User, int, error) {
	return service.repository.List(ctx, filter, params)
}

// Get returns the account with username.
func (service *Service) Get(ctx context.Context, username string) (*User, error) {
	return service.repository.FindByUsername(ctx, username)
}

// CreateInput holds the fields an administrator sets on a new account.
type CreateInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      access.Role
}

/*
Create registers an account on behalf of an administrator.

Description: Accounts created here skip the confirmation flow and start active.
The role defaults to user.
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*User, error) {
	role := input.Role
	if role == "" {
		role = access.RoleUser
	}

	user := &User{
		ID:        uuid.New(),
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
		IsActive:  true,
	}

	if err := service.repository.Create(ctx, user); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "account_created",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

// Update applies an administrator's patch to the account with username.
func (service *Service) Update(ctx context.Context, username string, patch Patch) (*User, error) {
	user, err := service.repository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return service.save(ctx, user, patch)
}

// Delete removes the account with username.
func (service *Service) Delete(ctx context.Context, username string) error {
	user, err := service.repository.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := service.repository.Delete(ctx, user.ID); err != nil {
		return err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "account_deleted", slog.String("user_id", user.ID))
	return nil
}

// # Self Service

// Me returns the principal's own account, checked against policy.
func (service *Service) Me(ctx context.Context, principal access.Principal, method string) (*User, error) {
	user, err := service.repository.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	if err := access.SelfPolicy.Authorize(principal, method, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateMe patches the principal's own profile. Email and role are ignored.
func (service *Service) UpdateMe(ctx context.Context, principal access.Principal, patch Patch) (*User, error) {
	user, err := service.Me(ctx, principal, http.MethodPatch)
	if err != nil {
		return nil, err
	}
	return service.save(ctx, user, patch.SelfService())
}

// DeleteMe always refuses. Accounts are never self-deleted.
func (service *Service) DeleteMe(_ context.Context, principal access.Principal) error {
	if !principal.Authenticated {
		return apperr.Unauthorized("Authentication required")
	}
	return apperr.MethodNotAllowed(http.MethodDelete)
}

func (service *Service) save(ctx context.Context, user *User, patch Patch) (*User, error) {
	if !patch.Apply(user) {
		return user, nil
	}
	if err := service.repository.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
