// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/critique/internal/platform/access"
	"github.com/taibuivan/critique/internal/platform/apperr"
)

type authored struct{ author string }

func (a authored) AuthorID() string { return a.author }

type profile struct{ id string }

func (p profile) PrincipalID() string { return p.id }

// category has no author reference.
type category struct{ slug string }

var (
	anonymous = access.Anonymous()
	member    = access.Principal{ID: "u-1", Role: access.RoleUser, IsActive: true, Authenticated: true}
	other     = access.Principal{ID: "u-2", Role: access.RoleUser, IsActive: true, Authenticated: true}
	inactive  = access.Principal{ID: "u-3", Role: access.RoleUser, Authenticated: true}
	moderator = access.Principal{ID: "m-1", Role: access.RoleModerator, IsActive: true, Authenticated: true}
	admin     = access.Principal{ID: "a-1", Role: access.RoleAdmin, IsActive: true, Authenticated: true}
	superuser = access.Principal{ID: "s-1", Role: access.RoleUser, IsSuperuser: true, IsActive: true, Authenticated: true}

	everyone    = []access.Principal{anonymous, member, other, inactive, moderator, admin, superuser}
	safeMethods = []string{http.MethodGet, http.MethodHead, http.MethodOptions}
	writes      = []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}
)

/*
TestReadOnly_GrantsSafeMethodsToEveryone checks read access is universally open.
*/
func TestReadOnly_GrantsSafeMethodsToEveryone(t *testing.T) {
	objects := []any{nil, authored{author: "u-1"}, profile{id: "u-2"}, category{slug: "film"}}

	for _, principal := range everyone {
		for _, method := range safeMethods {
			for _, object := range objects {
				assert.True(t, access.Any(access.ReadOnly).Evaluate(principal, method, object),
					"principal=%q method=%s object=%v", principal.ID, method, object)
			}
		}
		for _, method := range writes {
			assert.False(t, access.ReadOnly.HasPermission(principal, method))
		}
	}
}

/*
TestIsOwner_AuthorEquality verifies ownership grants only on author match.
*/
func TestIsOwner_AuthorEquality(t *testing.T) {
	tests := []struct {
		name      string
		principal access.Principal
		object    any
		want      bool
	}{
		{"author", member, authored{author: "u-1"}, true},
		{"not_author", other, authored{author: "u-1"}, false},
		{"anonymous", anonymous, authored{author: ""}, false},
		{"empty_author", member, authored{author: ""}, false},
		{"authorless_resource", member, category{slug: "film"}, false},
		{"admin_is_not_owner", admin, authored{author: "u-1"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, method := range writes {
				got := access.Any(access.IsOwner).Evaluate(tt.principal, method, tt.object)
				assert.Equal(t, tt.want, got, method)
			}
		})
	}
}

/*
TestAllowAuthenticatedWrite_CreationOnly checks only active principals may create.
*/
func TestAllowAuthenticatedWrite_CreationOnly(t *testing.T) {
	policy := access.Any(access.AllowAuthenticatedWrite)

	assert.True(t, policy.Evaluate(member, http.MethodPost, nil))
	assert.True(t, policy.Evaluate(moderator, http.MethodPost, nil))
	assert.False(t, policy.Evaluate(anonymous, http.MethodPost, nil))
	assert.False(t, policy.Evaluate(inactive, http.MethodPost, nil))
	assert.False(t, policy.Evaluate(member, http.MethodPatch, nil))
	assert.False(t, policy.Evaluate(member, http.MethodGet, nil))

	// Never grants on an existing object.
	assert.False(t, policy.Evaluate(member, http.MethodPost, authored{author: "u-1"}))
}

/*
TestFullObjectAccess_Matrix covers staff, author and plain users on mutations.
*/
func TestFullObjectAccess_Matrix(t *testing.T) {
	review := authored{author: "u-1"}
	policy := access.Any(access.FullObjectAccess)

	tests := []struct {
		name      string
		principal access.Principal
		want      bool
	}{
		{"author", member, true},
		{"other_user", other, false},
		{"moderator", moderator, true},
		{"admin", admin, true},
		{"superuser", superuser, true},
		{"anonymous", anonymous, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, method := range []string{http.MethodPatch, http.MethodPut, http.MethodDelete} {
				assert.Equal(t, tt.want, policy.Evaluate(tt.principal, method, review), method)
			}
			for _, method := range safeMethods {
				assert.False(t, policy.Evaluate(tt.principal, method, review), method)
			}
		})
	}

	// Staff rights do not depend on an author reference.
	assert.True(t, policy.Evaluate(moderator, http.MethodDelete, category{slug: "film"}))
	assert.False(t, policy.Evaluate(member, http.MethodDelete, category{slug: "film"}))
}

/*
TestIsAdministrator_BothLevels ensures collection and object checks agree.
*/
func TestIsAdministrator_BothLevels(t *testing.T) {
	policy := access.Any(access.IsAdministrator)
	forgedAnonymous := access.Principal{Role: access.RoleAdmin}

	for _, method := range append(append([]string{}, safeMethods...), writes...) {
		for _, object := range []any{nil, category{slug: "film"}, profile{id: "u-1"}} {
			assert.True(t, policy.Evaluate(admin, method, object))
			assert.True(t, policy.Evaluate(superuser, method, object))
			assert.False(t, policy.Evaluate(moderator, method, object))
			assert.False(t, policy.Evaluate(member, method, object))
			assert.False(t, policy.Evaluate(forgedAnonymous, method, object))
		}
	}
}

/*
TestIsSelf_ProfileAccess verifies self-service read/patch and the delete ban.
*/
func TestIsSelf_ProfileAccess(t *testing.T) {
	policy := access.Any(access.IsSelf)

	for _, principal := range []access.Principal{member, moderator, admin, superuser} {
		self := profile{id: principal.ID}

		assert.True(t, policy.Evaluate(principal, http.MethodGet, self))
		assert.True(t, policy.Evaluate(principal, http.MethodPatch, self))
		assert.False(t, policy.Evaluate(principal, http.MethodDelete, self))
		assert.False(t, policy.Evaluate(principal, http.MethodPut, self))
		assert.False(t, policy.Evaluate(principal, http.MethodGet, profile{id: "someone-else"}))
	}

	assert.False(t, policy.Evaluate(anonymous, http.MethodGet, profile{id: ""}))
	assert.False(t, policy.Evaluate(member, http.MethodGet, authored{author: "u-1"}))
}

/*
TestPolicy_OrComposition verifies a grant from any predicate is enough.
*/
func TestPolicy_OrComposition(t *testing.T) {
	review := authored{author: "u-1"}

	assert.True(t, access.ModeratedObjectPolicy.Evaluate(anonymous, http.MethodGet, review))
	assert.True(t, access.ModeratedObjectPolicy.Evaluate(member, http.MethodPatch, review))
	assert.False(t, access.ModeratedObjectPolicy.Evaluate(other, http.MethodPatch, review))

	assert.True(t, access.CatalogPolicy.Evaluate(anonymous, http.MethodGet, nil))
	assert.True(t, access.CatalogPolicy.Evaluate(admin, http.MethodPost, nil))
	assert.False(t, access.CatalogPolicy.Evaluate(moderator, http.MethodPost, nil))

	assert.False(t, access.Any().Evaluate(admin, http.MethodGet, nil))
}

/*
TestPolicy_AuthorizeErrors maps denials to 401 for anonymous and 403 otherwise.
*/
func TestPolicy_AuthorizeErrors(t *testing.T) {
	assert.NoError(t, access.CatalogPolicy.Authorize(admin, http.MethodDelete, category{slug: "film"}))

	err := access.CatalogPolicy.Authorize(anonymous, http.MethodPost, nil)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	err = access.CatalogPolicy.Authorize(member, http.MethodPost, nil)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
}

/*
TestRole_Hierarchy checks the linear role ordering.
*/
func TestRole_Hierarchy(t *testing.T) {
	assert.True(t, access.RoleAdmin.AtLeast(access.RoleModerator))
	assert.True(t, access.RoleModerator.AtLeast(access.RoleModerator))
	assert.False(t, access.RoleUser.AtLeast(access.RoleModerator))
	assert.False(t, access.Role("root").AtLeast(access.RoleUser))
	assert.False(t, access.Role("").Valid())
	assert.True(t, access.RoleUser.Valid())
}
