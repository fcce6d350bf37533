// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/critique/internal/platform/apperr"
	"github.com/taibuivan/critique/internal/platform/dberr"
	"github.com/taibuivan/critique/internal/platform/postgres"
	"github.com/taibuivan/critique/pkg/pagination"
)

// PostgresRepository implements [Repository] for a single [Kind].
type PostgresRepository struct {
	db   postgres.DB
	kind Kind
}

// NewPostgresRepository creates a repository over kind's table.
func NewPostgresRepository(db postgres.DB, kind Kind) *PostgresRepository {
	return &PostgresRepository{db: db, kind: kind}
}

func (repository *PostgresRepository) columns() string {
	return strings.Join(repository.kind.Table.Columns(), ", ")
}

// List returns a page ordered by name.
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, params pagination.Params) ([]*Reference, int, error) {
	table := repository.kind.Table

	var where string
	args := []any{params.Limit, params.Offset()}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		where = fmt.Sprintf("WHERE %s ILIKE $3", table.Name)
	}

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		%s
		ORDER BY %s, %s
		LIMIT $1 OFFSET $2`,
		repository.columns(), table.Table, where, table.Name, table.ID,
	)

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, repository.kind.Resource)
	}
	defer rows.Close()

	references := make([]*Reference, 0, params.Limit)
	var total int
	for rows.Next() {
		reference := &Reference{}
		if err := rows.Scan(&reference.ID, &reference.Name, &reference.Slug, &total); err != nil {
			return nil, 0, dberr.Wrap(err, repository.kind.Resource)
		}
		references = append(references, reference)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, repository.kind.Resource)
	}

	return references, total, nil
}

// FindBySlug retrieves one reference.
func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Reference, error) {
	table := repository.kind.Table
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, repository.columns(), table.Table, table.Slug)

	reference := &Reference{}
	err := repository.db.QueryRow(ctx, query, slug).Scan(&reference.ID, &reference.Name, &reference.Slug)
	if err != nil {
		return nil, dberr.Wrap(err, repository.kind.Resource)
	}
	return reference, nil
}

// FindBySlugs resolves several slugs in one query.
func (repository *PostgresRepository) FindBySlugs(ctx context.Context, slugs []string) ([]*Reference, error) {
	if len(slugs) == 0 {
		return []*Reference{}, nil
	}

	table := repository.kind.Table
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1)`, repository.columns(), table.Table, table.Slug)

	rows, err := repository.db.Query(ctx, query, slugs)
	if err != nil {
		return nil, dberr.Wrap(err, repository.kind.Resource)
	}
	defer rows.Close()

	bySlug := make(map[string]*Reference, len(slugs))
	for rows.Next() {
		reference := &Reference{}
		if err := rows.Scan(&reference.ID, &reference.Name, &reference.Slug); err != nil {
			return nil, dberr.Wrap(err, repository.kind.Resource)
		}
		bySlug[reference.Slug] = reference
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, repository.kind.Resource)
	}

	references := make([]*Reference, 0, len(slugs))
	for _, slug := range slugs {
		reference, ok := bySlug[slug]
		if !ok {
			return nil, apperr.NotFound(repository.kind.Resource)
		}
		references = append(references, reference)
	}
	return references, nil
}

// Create inserts the reference. A taken slug becomes a field error.
func (repository *PostgresRepository) Create(ctx context.Context, reference *Reference) error {
	table := repository.kind.Table
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3)`, table.Table, repository.columns())

	_, err := repository.db.Exec(ctx, query, reference.ID, reference.Name, reference.Slug)
	if _, ok := dberr.UniqueViolation(err); ok {
		return apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldSlug,
			Message: fmt.Sprintf("%s with this slug already exists", repository.kind.Resource),
		})
	}
	return dberr.Wrap(err, repository.kind.Resource)
}

// Delete removes the reference. Categories still assigned to titles are kept.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	table := repository.kind.Table
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if dberr.IsForeignKeyViolation(err) {
		return apperr.Conflict(fmt.Sprintf("%s is still referenced by titles", repository.kind.Resource))
	}
	if err != nil {
		return dberr.Wrap(err, repository.kind.Resource)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(repository.kind.Resource)
	}
	return nil
}
