// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

// # User Roles

// Role represents the authorization level granted to an account.
type Role string

const (
	// Unrestricted system access
	RoleAdmin Role = "admin"

	// Can edit or remove any review and comment
	RoleModerator Role = "moderator"

	// Default role for standard registered users
	RoleUser Role = "user"
)

// Roles lists every assignable role, lowest first.
var Roles = []Role{RoleUser, RoleModerator, RoleAdmin}

// RoleNames returns [Roles] as strings, for validation messages.
func RoleNames() []string {
	names := make([]string, len(Roles))
	for i, role := range Roles {
		names[i] = string(role)
	}
	return names
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() > 0 && r.level() >= target.level()
}

// Valid reports whether r is one of [Roles].
func (r Role) Valid() bool {
	return r.level() > 0
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleModerator:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
