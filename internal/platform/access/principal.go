// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

// Principal is the identity behind a request.
//
// It is built once per request by the authentication middleware from a fresh
// user lookup and is never mutated afterwards. The zero value is the
// anonymous principal.
type Principal struct {
	ID            string
	Username      string
	Role          Role
	IsSuperuser   bool
	IsActive      bool
	Authenticated bool
}

// Anonymous returns the principal used for requests without credentials.
func Anonymous() Principal {
	return Principal{}
}

// IsAdmin reports whether the principal holds administrator rights.
func (p Principal) IsAdmin() bool {
	return p.Authenticated && (p.Role == RoleAdmin || p.IsSuperuser)
}

// IsStaff reports whether the principal may moderate other users' content.
func (p Principal) IsStaff() bool {
	return p.Authenticated && (p.Role.AtLeast(RoleModerator) || p.IsSuperuser)
}

// # Object Capabilities

// Authored is implemented by resources that carry an immutable author reference
// (reviews, comments, blog posts and blog comments).
type Authored interface {
	AuthorID() string
}

// Identity is implemented by resources that are themselves a principal
// (user profiles).
type Identity interface {
	PrincipalID() string
}
