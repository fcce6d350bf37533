// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import "github.com/taibuivan/critique/internal/platform/apperr"

// Policy is an OR-composition of predicates attached to one endpoint.
type Policy []Predicate

// Any builds a [Policy] that grants when at least one predicate grants.
func Any(predicates ...Predicate) Policy {
	return Policy(predicates)
}

// Evaluate is the pure decision function. A nil object means the request has
// no target yet and only the collection level is consulted.
func (policy Policy) Evaluate(principal Principal, method string, object any) bool {
	for _, predicate := range policy {
		if !predicate.HasPermission(principal, method) {
			continue
		}
		if object == nil || predicate.HasObjectPermission(principal, method, object) {
			return true
		}
	}
	return false
}

// Authorize returns nil when [Policy.Evaluate] allows the request.
//
// Denials are opaque. Anonymous callers get 401 so clients know credentials are
// missing; everyone else gets 403.
func (policy Policy) Authorize(principal Principal, method string, object any) error {
	if policy.Evaluate(principal, method, object) {
		return nil
	}
	if !principal.Authenticated {
		return apperr.Unauthorized("Authentication credentials were not provided")
	}
	return apperr.Forbidden("You do not have permission to perform this action")
}

// # Endpoint Policies

var (
	// CatalogPolicy guards categories, genres and titles.
	CatalogPolicy = Any(ReadOnly, IsAdministrator)

	// ContributionPolicy guards review, comment, post and blog comment collections.
	ContributionPolicy = Any(ReadOnly, AllowAuthenticatedWrite)

	// ModeratedObjectPolicy guards a single review or review comment.
	ModeratedObjectPolicy = Any(ReadOnly, FullObjectAccess)

	// OwnedObjectPolicy guards a single blog post or blog comment.
	OwnedObjectPolicy = Any(ReadOnly, IsOwner)

	// AdminPolicy guards user administration.
	AdminPolicy = Any(IsAdministrator)

	// SelfPolicy guards the requesting user's own profile.
	SelfPolicy = Any(IsSelf)
)
