// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/critique/internal/catalog/reference"
	"github.com/taibuivan/critique/internal/platform/apperr"
	"github.com/taibuivan/critique/internal/platform/ctxutil"
	"github.com/taibuivan/critique/pkg/pagination"
	"github.com/taibuivan/critique/pkg/uuid"
)

// ReferenceResolver looks up categories or genres by slug.
// *reference.Service satisfies it.
type ReferenceResolver interface {
	Get(ctx context.Context, slug string) (*reference.Reference, error)
	Resolve(ctx context.Context, slugs []string) ([]*reference.Reference, error)
}

// Service implements title use cases.
type Service struct {
	repository Repository
	categories ReferenceResolver
	genres     ReferenceResolver
}

// NewService constructs a new [Service].
func NewService(repository Repository, categories, genres ReferenceResolver) *Service {
	return &Service{repository: repository, categories: categories, genres: genres}
}

// List returns a page of titles.
func (service *Service) List(ctx context.Context, filter Filter, params pagination.Params) ([]*Title, int, error) {
	return service.repository.List(ctx, filter, params)
}

// Get returns one title.
func (service *Service) Get(ctx context.Context, id string) (*Title, error) {
	return service.repository.FindByID(ctx, id)
}

// CreateInput holds a new title. Category and Genre are slugs.
type CreateInput struct {
	Name        string
	Year        int
	Description string
	Category    string
	Genre       []string
}

/*
Create stores a new title.

Returns:
  - err: A field error on category or genre when a slug is unknown
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*Title, error) {
	title := &Title{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Year:        input.Year,
		Description: input.Description,
	}

	var err error
	if title.Category, err = service.category(ctx, input.Category); err != nil {
		return nil, err
	}
	if title.Genres, err = service.genreList(ctx, input.Genre); err != nil {
		return nil, err
	}

	if err := service.repository.Create(ctx, title); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "title_created", slog.String("title_id", title.ID))
	return title, nil
}

// Update applies patch to title and persists it.
func (service *Service) Update(ctx context.Context, title *Title, patch Patch) (*Title, error) {
	if patch.Name != nil {
		title.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Year != nil {
		title.Year = *patch.Year
	}
	if patch.Description != nil {
		title.Description = *patch.Description
	}

	var err error
	if patch.Category != nil {
		if title.Category, err = service.category(ctx, *patch.Category); err != nil {
			return nil, err
		}
	}
	if patch.Genre != nil {
		if title.Genres, err = service.genreList(ctx, *patch.Genre); err != nil {
			return nil, err
		}
	}

	if err := service.repository.Update(ctx, title); err != nil {
		return nil, err
	}
	return title, nil
}

// Delete removes title.
func (service *Service) Delete(ctx context.Context, title *Title) error {
	if err := service.repository.Delete(ctx, title.ID); err != nil {
		return err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "title_deleted", slog.String("title_id", title.ID))
	return nil
}

// category resolves an optional category slug.
func (service *Service) category(ctx context.Context, slug string) (*reference.Reference, error) {
	if slug == "" {
		return nil, nil
	}
	category, err := service.categories.Get(ctx, slug)
	if apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field: FieldCategory, Message: "Unknown category slug \"" + slug + "\"",
		})
	}
	return category, err
}

// genreList resolves genre slugs, failing on the first unknown one.
func (service *Service) genreList(ctx context.Context, slugs []string) ([]*reference.Reference, error) {
	genres, err := service.genres.Resolve(ctx, slugs)
	if apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field: FieldGenre, Message: "Unknown genre slug",
		})
	}
	return genres, err
}
