// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package access implements the authorization engine.

Every endpoint declares a [Policy]: a list of independent [Predicate] values
combined by logical OR. A request proceeds when any predicate grants it.

# Two-Level Evaluation

  - Collection level runs before the handler (see middleware.Authorize) with
    only the principal and the HTTP method.
  - Object level runs inside the handler once the target has been loaded.
    A predicate grants an object request only if it grants both levels.

Predicates that can only decide with a target in hand (IsOwner, IsSelf,
FullObjectAccess) let authenticated principals through at collection level
and make the real decision at object level.

The package performs no I/O and holds no state.
*/
package access

import "net/http"

// Predicate is one access rule.
type Predicate interface {
	// HasPermission decides a request that has no target object yet.
	HasPermission(principal Principal, method string) bool

	// HasObjectPermission decides a request against a loaded target.
	HasObjectPermission(principal Principal, method string, object any) bool
}

// IsSafeMethod reports whether method never mutates state.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

// # Predicates

var (
	// ReadOnly grants safe methods to every principal, anonymous included.
	ReadOnly Predicate = readOnly{}

	// IsOwner grants when the principal authored the target.
	IsOwner Predicate = isOwner{}

	// AllowAuthenticatedWrite grants creation to authenticated, active principals.
	AllowAuthenticatedWrite Predicate = allowAuthenticatedWrite{}

	// FullObjectAccess grants mutations to moderators, admins, superusers and
	// the target's author. It never grants safe methods.
	FullObjectAccess Predicate = fullObjectAccess{}

	// IsAdministrator grants everything to admins and superusers.
	IsAdministrator Predicate = isAdministrator{}

	// IsSelf grants read and partial update when the target is the principal.
	IsSelf Predicate = isSelf{}
)

type readOnly struct{}

func (readOnly) HasPermission(_ Principal, method string) bool {
	return IsSafeMethod(method)
}

func (readOnly) HasObjectPermission(_ Principal, method string, _ any) bool {
	return IsSafeMethod(method)
}

type isOwner struct{}

func (isOwner) HasPermission(principal Principal, _ string) bool {
	return principal.Authenticated
}

func (isOwner) HasObjectPermission(principal Principal, _ string, object any) bool {
	return isAuthor(principal, object)
}

type allowAuthenticatedWrite struct{}

func (allowAuthenticatedWrite) HasPermission(principal Principal, method string) bool {
	return method == http.MethodPost && principal.Authenticated && principal.IsActive
}

func (allowAuthenticatedWrite) HasObjectPermission(Principal, string, any) bool {
	return false
}

type fullObjectAccess struct{}

func (fullObjectAccess) HasPermission(principal Principal, method string) bool {
	return !IsSafeMethod(method) && principal.Authenticated
}

func (fullObjectAccess) HasObjectPermission(principal Principal, method string, object any) bool {
	if IsSafeMethod(method) || !principal.Authenticated {
		return false
	}
	return principal.IsStaff() || isAuthor(principal, object)
}

type isAdministrator struct{}

func (isAdministrator) HasPermission(principal Principal, _ string) bool {
	return principal.IsAdmin()
}

func (isAdministrator) HasObjectPermission(principal Principal, _ string, _ any) bool {
	return principal.IsAdmin()
}

type isSelf struct{}

func (isSelf) HasPermission(principal Principal, method string) bool {
	return principal.Authenticated && selfMethod(method)
}

func (isSelf) HasObjectPermission(principal Principal, method string, object any) bool {
	if !principal.Authenticated || !selfMethod(method) {
		return false
	}
	identity, ok := object.(Identity)
	return ok && identity.PrincipalID() != "" && identity.PrincipalID() == principal.ID
}

// selfMethod lists what a principal may do to its own profile. DELETE is absent.
func selfMethod(method string) bool {
	return IsSafeMethod(method) || method == http.MethodPatch
}

// isAuthor reports whether principal authored object. Objects without an author
// reference never match.
func isAuthor(principal Principal, object any) bool {
	if !principal.Authenticated || principal.ID == "" {
		return false
	}
	authored, ok := object.(Authored)
	if !ok {
		return false
	}
	return authored.AuthorID() != "" && authored.AuthorID() == principal.ID
}
