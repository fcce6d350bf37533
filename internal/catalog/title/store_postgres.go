// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/critique/internal/catalog/reference"
	"github.com/taibuivan/critique/internal/platform/database/schema"
	"github.com/taibuivan/critique/internal/platform/dberr"
	"github.com/taibuivan/critique/internal/platform/postgres"
	"github.com/taibuivan/critique/pkg/pagination"
)

const resourceTitle = "Title"

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.TxBeginner
}

// NewPostgresRepository creates a new Postgres implementation for titles.
func NewPostgresRepository(db postgres.TxBeginner) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Query Fragments

var (
	titleT    = schema.CatalogTitle
	categoryT = schema.CatalogCategory
	genreT    = schema.CatalogGenre
	linkT     = schema.CatalogTitleGenre
	reviewT   = schema.SocialReview
)

// selectTitle reads a title, its category and its rating. Callers append
// WHERE, ORDER and LIMIT clauses; extra columns go in extra.
func selectTitle(extra string) string {
	return fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, t.%s, t.%s,
		       c.%s, c.%s, c.%s,
		       (SELECT AVG(r.%s)::float8 FROM %s r WHERE r.%s = t.%s) AS rating%s
		FROM %s t
		LEFT JOIN %s c ON c.%s = t.%s`,
		titleT.ID, titleT.Name, titleT.Year, titleT.Description, titleT.CreatedAt, titleT.UpdatedAt,
		categoryT.ID, categoryT.Name, categoryT.Slug,
		reviewT.Score, reviewT.Table, reviewT.TitleID, titleT.ID, extra,
		titleT.Table,
		categoryT.Table, categoryT.ID, titleT.CategoryID,
	)
}

func scanTitle(row pgx.Row, extra ...any) (*Title, error) {
	title := &Title{}
	var categoryID, categoryName, categorySlug *string

	targets := append([]any{
		&title.ID, &title.Name, &title.Year, &title.Description, &title.CreatedAt, &title.UpdatedAt,
		&categoryID, &categoryName, &categorySlug,
		&title.Rating,
	}, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}

	if categoryID != nil {
		title.Category = &reference.Reference{ID: *categoryID, Name: *categoryName, Slug: *categorySlug}
	}
	title.Genres = []*reference.Reference{}
	return title, nil
}

// # Reads

/*
List returns a page of titles ordered by name.

Description: The genre filter uses EXISTS so a title with several genres is
never duplicated. Genres are loaded in a second query for the whole page.
*/
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, params pagination.Params) ([]*Title, int, error) {
	conditions := []string{}
	args := []any{params.Limit, params.Offset()}

	bind := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("c.%s = %s", categoryT.Slug, bind(filter.Category)))
	}
	if filter.Genre != "" {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s tg JOIN %s g ON g.%s = tg.%s WHERE tg.%s = t.%s AND g.%s = %s)",
			linkT.Table, genreT.Table, genreT.ID, linkT.GenreID, linkT.TitleID, titleT.ID, genreT.Slug,
			bind(filter.Genre),
		))
	}
	if filter.Name != "" {
		conditions = append(conditions, fmt.Sprintf("t.%s ILIKE %s", titleT.Name, bind("%"+filter.Name+"%")))
	}
	if filter.Year != 0 {
		conditions = append(conditions, fmt.Sprintf("t.%s = %s", titleT.Year, bind(filter.Year)))
	}

	var where string
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`%s
		%s
		ORDER BY t.%s, t.%s
		LIMIT $1 OFFSET $2`,
		selectTitle(", COUNT(*) OVER() AS total_count"), where, titleT.Name, titleT.ID,
	)

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceTitle)
	}
	defer rows.Close()

	titles := make([]*Title, 0, params.Limit)
	var total int
	for rows.Next() {
		title, err := scanTitle(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceTitle)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceTitle)
	}

	if err := repository.attachGenres(ctx, titles); err != nil {
		return nil, 0, err
	}
	return titles, total, nil
}

// FindByID retrieves a title with its category, genres and rating.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Title, error) {
	query := fmt.Sprintf(`%s WHERE t.%s = $1`, selectTitle(""), titleT.ID)

	title, err := scanTitle(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceTitle)
	}

	if err := repository.attachGenres(ctx, []*Title{title}); err != nil {
		return nil, err
	}
	return title, nil
}

// attachGenres loads the genres of every title in one round trip.
func (repository *PostgresRepository) attachGenres(ctx context.Context, titles []*Title) error {
	if len(titles) == 0 {
		return nil
	}

	ids := make([]string, 0, len(titles))
	byID := make(map[string]*Title, len(titles))
	for _, title := range titles {
		ids = append(ids, title.ID)
		byID[title.ID] = title
	}

	query := fmt.Sprintf(`
		SELECT tg.%s, g.%s, g.%s, g.%s
		FROM %s tg
		JOIN %s g ON g.%s = tg.%s
		WHERE tg.%s = ANY($1)
		ORDER BY g.%s`,
		linkT.TitleID, genreT.ID, genreT.Name, genreT.Slug,
		linkT.Table,
		genreT.Table, genreT.ID, linkT.GenreID,
		linkT.TitleID,
		genreT.Name,
	)

	rows, err := repository.db.Query(ctx, query, ids)
	if err != nil {
		return dberr.Wrap(err, resourceTitle)
	}
	defer rows.Close()

	for rows.Next() {
		var titleID string
		genre := &reference.Reference{}
		if err := rows.Scan(&titleID, &genre.ID, &genre.Name, &genre.Slug); err != nil {
			return dberr.Wrap(err, resourceTitle)
		}
		if title, ok := byID[titleID]; ok {
			title.Genres = append(title.Genres, genre)
		}
	}
	return dberr.Wrap(rows.Err(), resourceTitle)
}

// # Writes

// Create inserts the title and its genre links in one transaction.
func (repository *PostgresRepository) Create(ctx context.Context, title *Title) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s`,
		titleT.Table,
		titleT.ID, titleT.Name, titleT.Year, titleT.Description, titleT.CategoryID,
		titleT.CreatedAt, titleT.UpdatedAt,
	)

	err := postgres.WithTx(ctx, repository.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, query,
			title.ID, title.Name, title.Year, title.Description, categoryID(title),
		).Scan(&title.CreatedAt, &title.UpdatedAt)
		if err != nil {
			return err
		}
		return linkGenres(ctx, tx, title)
	})
	return dberr.Wrap(err, resourceTitle)
}

// Update persists every column and replaces the genre links.
func (repository *PostgresRepository) Update(ctx context.Context, title *Title) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		titleT.Table,
		titleT.Name, titleT.Year, titleT.Description, titleT.CategoryID, titleT.UpdatedAt,
		titleT.ID,
		titleT.UpdatedAt,
	)
	unlink := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, linkT.Table, linkT.TitleID)

	err := postgres.WithTx(ctx, repository.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, query,
			title.ID, title.Name, title.Year, title.Description, categoryID(title),
		).Scan(&title.UpdatedAt)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, unlink, title.ID); err != nil {
			return err
		}
		return linkGenres(ctx, tx, title)
	})
	return dberr.Wrap(err, resourceTitle)
}

// Delete removes the title. Reviews and genre links cascade.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, titleT.Table, titleT.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceTitle)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceTitle)
	}
	return nil
}

func linkGenres(ctx context.Context, tx pgx.Tx, title *Title) error {
	if len(title.Genres) == 0 {
		return nil
	}

	ids := make([]string, 0, len(title.Genres))
	for _, genre := range title.Genres {
		ids = append(ids, genre.ID)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) SELECT $1, UNNEST($2::uuid[])`,
		linkT.Table, linkT.TitleID, linkT.GenreID)

	_, err := tx.Exec(ctx, query, title.ID, ids)
	return err
}

func categoryID(title *Title) *string {
	if title.Category == nil {
		return nil
	}
	return &title.Category.ID
}
