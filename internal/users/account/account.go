// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages user accounts.

Administrators list, create, edit and delete any account by username. Every
authenticated user can read and patch their own profile through /users/me
but can never delete it.

# Architecture

  - Entity: User, which doubles as the [access.Identity] target of IsSelf.
  - Repository: Postgres-backed persistence for users.account.
  - Service: Use cases, plus principal loading for the authentication middleware.
*/
package account

import (
	"time"

	"github.com/taibuivan/critique/internal/platform/access"
	"github.com/taibuivan/critique/pkg/pointer"
)

// # Domain Entities

// User represents a registered member of the Critique platform.
type User struct {
	ID          string      `json:"-"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	Bio         string      `json:"bio"`
	Role        access.Role `json:"role"`
	IsSuperuser bool        `json:"-"`
	IsActive    bool        `json:"-"`
	CodeVersion int64       `json:"-"` // Bumped on every code request and activation.
	CreatedAt   time.Time   `json:"-"`
	UpdatedAt   time.Time   `json:"-"`
}

// PrincipalID implements [access.Identity].
func (u *User) PrincipalID() string {
	return u.ID
}

// Principal converts a freshly loaded user into the request principal.
func (u *User) Principal() access.Principal {
	return access.Principal{
		ID:            u.ID,
		Username:      u.Username,
		Role:          u.Role,
		IsSuperuser:   u.IsSuperuser,
		IsActive:      u.IsActive,
		Authenticated: true,
	}
}

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	Username  *string      `json:"username"`
	Email     *string      `json:"email"`
	FirstName *string      `json:"first_name"`
	LastName  *string      `json:"last_name"`
	Bio       *string      `json:"bio"`
	Role      *access.Role `json:"role"`
}

// SelfService drops the fields a user may not change on their own profile.
func (p Patch) SelfService() Patch {
	p.Email = nil
	p.Role = nil
	return p
}

// Apply copies the set fields of p onto user and reports whether anything changed.
func (p Patch) Apply(user *User) bool {
	changed := pointer.Assign(&user.Username, p.Username)
	changed = pointer.Assign(&user.Email, p.Email) || changed
	changed = pointer.Assign(&user.FirstName, p.FirstName) || changed
	changed = pointer.Assign(&user.LastName, p.LastName) || changed
	changed = pointer.Assign(&user.Bio, p.Bio) || changed
	changed = pointer.Assign(&user.Role, p.Role) || changed
	return changed
}

// Filter narrows the admin user listing.
type Filter struct {
	// Search matches usernames case-insensitively.
	Search string
}

// # Field Identifiers

const (
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldBio       = "bio"
	FieldRole      = "role"
)

// # Constraints

const (
	MaxUsernameLength = 150
	MaxEmailLength    = 254
	MaxNameLength     = 150

	// ReservedUsername collides with the /users/me route.
	ReservedUsername = "me"
)
