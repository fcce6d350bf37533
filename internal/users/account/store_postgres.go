// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/critique/internal/platform/apperr"
	"github.com/taibuivan/critique/internal/platform/database/schema"
	"github.com/taibuivan/critique/internal/platform/dberr"
	"github.com/taibuivan/critique/internal/platform/postgres"
	"github.com/taibuivan/critique/pkg/pagination"
)

const resourceUser = "User"

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository creates a new Postgres implementation for accounts.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var userColumns = strings.Join(schema.UserAccount.Columns(), ", ")

// scanUser hydrates a user from a row selected with userColumns, followed by extra targets.
func scanUser(row pgx.Row, extra ...any) (*User, error) {
	user := &User{}
	targets := append([]any{
		&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
		&user.Bio, &user.Role, &user.IsSuperuser, &user.IsActive, &user.CodeVersion,
		&user.CreatedAt, &user.UpdatedAt,
	}, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return user, nil
}

func (repository *PostgresRepository) findOne(ctx context.Context, column, value string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, userColumns, schema.UserAccount.Table, column)

	user, err := scanUser(repository.db.QueryRow(ctx, query, value))
	if err != nil {
		return nil, dberr.Wrap(err, resourceUser)
	}
	return user, nil
}

// FindByID retrieves an account by primary key.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return repository.findOne(ctx, schema.UserAccount.ID, id)
}

// FindByEmail retrieves an account by email, case-insensitively.
func (repository *PostgresRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return repository.findOne(ctx, schema.UserAccount.Email, strings.ToLower(email))
}

// FindByUsername retrieves an account by exact username.
func (repository *PostgresRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return repository.findOne(ctx, schema.UserAccount.Username, username)
}

/*
List returns a page of accounts.

Description: Uses COUNT(*) OVER() so the total is computed in the same round trip.
*/
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, params pagination.Params) ([]*User, int, error) {
	var where string
	args := []any{params.Limit, params.Offset()}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		where = fmt.Sprintf("WHERE %s ILIKE $3", schema.UserAccount.Username)
	}

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		%s
		ORDER BY %s DESC, %s
		LIMIT $1 OFFSET $2`,
		userColumns, schema.UserAccount.Table, where,
		schema.UserAccount.CreatedAt, schema.UserAccount.ID,
	)

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceUser)
	}
	defer rows.Close()

	users := make([]*User, 0, params.Limit)
	var total int
	for rows.Next() {
		user, err := scanUser(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceUser)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceUser)
	}

	return users, total, nil
}

// Create inserts the account and fills in its timestamps.
func (repository *PostgresRepository) Create(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s, %s`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.FirstName, schema.UserAccount.LastName, schema.UserAccount.Bio,
		schema.UserAccount.Role, schema.UserAccount.IsSuperuser, schema.UserAccount.IsActive,
		schema.UserAccount.CodeVersion,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	user.Email = strings.ToLower(user.Email)
	err := repository.db.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName, user.Bio,
		user.Role, user.IsSuperuser, user.IsActive, user.CodeVersion,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	return classifyWrite(err)
}

// Update persists the mutable profile fields and role.
func (repository *PostgresRepository) Update(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Email, schema.UserAccount.FirstName,
		schema.UserAccount.LastName, schema.UserAccount.Bio, schema.UserAccount.Role,
		schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
		schema.UserAccount.UpdatedAt,
	)

	user.Email = strings.ToLower(user.Email)
	err := repository.db.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName, user.Bio, user.Role,
	).Scan(&user.UpdatedAt)

	return classifyWrite(err)
}

// Delete removes the account by ID.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserAccount.Table, schema.UserAccount.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceUser)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceUser)
	}
	return nil
}

// BumpCodeVersion increments the version atomically and returns the new value.
func (repository *PostgresRepository) BumpCodeVersion(ctx context.Context, id string) (int64, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = %s + 1, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.UserAccount.Table,
		schema.UserAccount.CodeVersion, schema.UserAccount.CodeVersion, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
		schema.UserAccount.CodeVersion,
	)

	var version int64
	if err := repository.db.QueryRow(ctx, query, id).Scan(&version); err != nil {
		return 0, dberr.Wrap(err, resourceUser)
	}
	return version, nil
}

/*
Activate performs the compare-and-swap that consumes a confirmation code.

Description: The row-level atomicity of a single UPDATE serialises concurrent
redemptions; exactly one of them sees the expected version.
*/
func (repository *PostgresRepository) Activate(ctx context.Context, id string, expectedVersion int64) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = TRUE, %s = %s + 1, %s = NOW()
		WHERE %s = $1 AND %s = $2`,
		schema.UserAccount.Table,
		schema.UserAccount.IsActive, schema.UserAccount.CodeVersion, schema.UserAccount.CodeVersion,
		schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.CodeVersion,
	)

	tag, err := repository.db.Exec(ctx, query, id, expectedVersion)
	if err != nil {
		return false, dberr.Wrap(err, resourceUser)
	}
	return tag.RowsAffected() == 1, nil
}

// classifyWrite turns unique violations into field errors the client can act on.
func classifyWrite(err error) error {
	if err == nil {
		return nil
	}
	if constraint, ok := dberr.UniqueViolation(err); ok {
		switch {
		case strings.Contains(constraint, schema.UserAccount.Email):
			return apperr.ValidationError("Validation failed", apperr.FieldError{
				Field: FieldEmail, Message: "A user with that email already exists",
			})
		default:
			return apperr.ValidationError("Validation failed", apperr.FieldError{
				Field: FieldUsername, Message: "A user with that username already exists",
			})
		}
	}
	return dberr.Wrap(err, resourceUser)
}
