// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"

	"github.com/taibuivan/critique/pkg/pagination"
)

// # User Data Access

// Repository defines the data access contract for user accounts.
type Repository interface {

	/*
		FindByID returns the account with the given ID.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account registered under email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByUsername returns the account with the given username.
	FindByUsername(ctx context.Context, username string) (*User, error)

	/*
		List returns one page of accounts, newest first, and the total match count.

		Parameters:
		  - ctx: context.Context
		  - filter: Filter (Username search)
		  - params: pagination.Params
	*/
	List(ctx context.Context, filter Filter, params pagination.Params) ([]*User, int, error)

	/*
		Create persists a brand-new account.

		Returns:
		  - error: Field-level validation error on duplicate username or email
	*/
	Create(ctx context.Context, user *User) error

	// Update persists profile fields and role. Activity and code version are
	// only ever changed through [Repository.BumpCodeVersion] and [Repository.Activate].
	Update(ctx context.Context, user *User) error

	// Delete removes the account and, by cascade, everything it authored.
	Delete(ctx context.Context, id string) error

	/*
		BumpCodeVersion increments the account's code version and returns the
		new value. Every confirmation code issued earlier stops matching.
	*/
	BumpCodeVersion(ctx context.Context, id string) (int64, error)

	/*
		Activate marks the account active and bumps its code version, but only
		if the version still equals expectedVersion.

		Returns:
		  - bool: false when another request changed the version first
	*/
	Activate(ctx context.Context, id string, expectedVersion int64) (bool, error)
}
