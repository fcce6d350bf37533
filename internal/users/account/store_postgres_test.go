// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/critique/internal/platform/access"
	"github.com/taibuivan/critique/internal/platform/apperr"
	"github.com/taibuivan/critique/internal/users/account"
	"github.com/taibuivan/critique/pkg/pagination"
)

func setupRepo(t *testing.T) (*account.PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return account.NewPostgresRepository(mock), mock
}

var userColumns = []string{
	"id", "username", "email", "firstname", "lastname", "bio", "role",
	"issuperuser", "isactive", "codeversion", "createdat", "updatedat",
}

func sampleUser() *account.User {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &account.User{
		ID: "0190a000-0000-7000-8000-000000000001", Username: "reader", Email: "reader@x.com",
		FirstName: "Ann", LastName: "Lee", Bio: "hi", Role: access.RoleUser,
		IsActive: true, CodeVersion: 3, CreatedAt: now, UpdatedAt: now,
	}
}

func userValues(u *account.User) []any {
	return []any{
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.Bio, u.Role,
		u.IsSuperuser, u.IsActive, u.CodeVersion, u.CreatedAt, u.UpdatedAt,
	}
}

func TestPostgresRepository_FindByEmail(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	u := sampleUser()
	mock.ExpectQuery("SELECT .+ FROM users.account WHERE email = \\$1").
		WithArgs("reader@x.com").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(userValues(u)...))

	got, err := repo.FindByEmail(context.Background(), "Reader@X.com")
	require.NoError(t, err)
	assert.Equal(t, u, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_FindByUsername_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM users.account WHERE username").
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByUsername(context.Background(), "ghost")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_List_Search(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	u := sampleUser()
	mock.ExpectQuery("SELECT .+ COUNT\\(\\*\\) OVER\\(\\) .+ WHERE username ILIKE \\$3").
		WithArgs(10, 0, "%read%").
		WillReturnRows(pgxmock.NewRows(append(userColumns, "total_count")).AddRow(append(userValues(u), 7)...))

	users, total, err := repo.List(context.Background(), account.Filter{Search: "read"}, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 7, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Create_DuplicateEmail(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	u := sampleUser()
	mock.ExpectQuery("INSERT INTO users.account").
		WithArgs(u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.Bio, u.Role, false, true, int64(3)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "account_email_key"})

	err := repo.Create(context.Background(), u)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
	assert.Equal(t, account.FieldEmail, appErr.Details[0].Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_BumpCodeVersion(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	mock.ExpectQuery("UPDATE users.account SET codeversion = codeversion \\+ 1").
		WithArgs("u-1").
		WillReturnRows(pgxmock.NewRows([]string{"codeversion"}).AddRow(int64(4)))

	version, err := repo.BumpCodeVersion(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Activate_CompareAndSwap(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{"version_matches", 1, true},
		{"version_moved_on", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupRepo(t)
			defer mock.Close()

			mock.ExpectExec("UPDATE users.account SET isactive = TRUE.+WHERE id = \\$1 AND codeversion = \\$2").
				WithArgs("u-1", int64(4)).
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.affected))

			ok, err := repo.Activate(context.Background(), "u-1", 4)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepository_Delete_Missing(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM users.account").
		WithArgs("u-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "u-1")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
