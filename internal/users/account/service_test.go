// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/critique/internal/platform/access"
	"github.com/taibuivan/critique/internal/platform/apperr"
	"github.com/taibuivan/critique/internal/users/account"
	"github.com/taibuivan/critique/internal/users/account/accounttest"
	"github.com/taibuivan/critique/pkg/pointer"
)

func newService(users ...*account.User) (*account.Service, *accounttest.Repository) {
	repo := accounttest.NewRepository()
	repo.Seed(users...)
	return account.NewService(repo), repo
}

func TestService_LoadPrincipal(t *testing.T) {
	u := sampleUser()
	u.Role = access.RoleModerator
	service, _ := newService(u)

	principal, err := service.LoadPrincipal(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, access.Principal{
		ID: u.ID, Username: u.Username, Role: access.RoleModerator, IsActive: true, Authenticated: true,
	}, principal)

	_, err = service.LoadPrincipal(context.Background(), "missing")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestService_Create_DefaultsAndUniqueness(t *testing.T) {
	service, _ := newService()

	user, err := service.Create(context.Background(), account.CreateInput{Username: "bob", Email: "bob@x.com"})
	require.NoError(t, err)
	assert.Equal(t, access.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEmpty(t, user.ID)

	_, err = service.Create(context.Background(), account.CreateInput{Username: "bob", Email: "other@x.com"})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestService_UpdateMe_IgnoresPrivilegedFields(t *testing.T) {
	u := sampleUser()
	service, _ := newService(u)

	updated, err := service.UpdateMe(context.Background(), u.Principal(), account.Patch{
		Bio:   pointer.To("new bio"),
		Role:  pointer.To(access.RoleAdmin),
		Email: pointer.To("evil@x.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "new bio", updated.Bio)
	assert.Equal(t, access.RoleUser, updated.Role)
	assert.Equal(t, "reader@x.com", updated.Email)
}

func TestService_Update_AdminChangesRole(t *testing.T) {
	u := sampleUser()
	service, _ := newService(u)

	updated, err := service.Update(context.Background(), u.Username, account.Patch{Role: pointer.To(access.RoleModerator)})
	require.NoError(t, err)
	assert.Equal(t, access.RoleModerator, updated.Role)

	principal, err := service.LoadPrincipal(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, access.RoleModerator, principal.Role)
}

func TestService_DeleteMe_AlwaysRefused(t *testing.T) {
	service, repo := newService(sampleUser())

	principals := []access.Principal{
		{ID: "u", Role: access.RoleUser, IsActive: true, Authenticated: true},
		{ID: "m", Role: access.RoleModerator, IsActive: true, Authenticated: true},
		{ID: "a", Role: access.RoleAdmin, IsActive: true, Authenticated: true},
		{ID: "s", Role: access.RoleUser, IsSuperuser: true, IsActive: true, Authenticated: true},
	}
	for _, principal := range principals {
		err := service.DeleteMe(context.Background(), principal)
		assert.True(t, apperr.HasCode(err, apperr.CodeMethodNotAllowed), principal.ID)
	}

	err := service.DeleteMe(context.Background(), access.Anonymous())
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
	assert.Equal(t, 1, repo.Len())
}

func TestService_Me_ChecksSelfPolicy(t *testing.T) {
	u := sampleUser()
	service, _ := newService(u)

	me, err := service.Me(context.Background(), u.Principal(), http.MethodGet)
	require.NoError(t, err)
	assert.Equal(t, u.Username, me.Username)

	_, err = service.Me(context.Background(), u.Principal(), http.MethodDelete)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
}

func TestService_Delete(t *testing.T) {
	u := sampleUser()
	service, repo := newService(u)

	require.NoError(t, service.Delete(context.Background(), u.Username))
	assert.Equal(t, 0, repo.Len())

	err := service.Delete(context.Background(), u.Username)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
