// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/critique/internal/platform/ctxutil"
	"github.com/taibuivan/critique/pkg/pagination"
	"github.com/taibuivan/critique/pkg/slug"
	"github.com/taibuivan/critique/pkg/uuid"
)

// Service orchestrates one [Kind] of reference.
type Service struct {
	kind       Kind
	repository Repository
}

// NewService constructs a new [Service].
func NewService(kind Kind, repository Repository) *Service {
	return &Service{kind: kind, repository: repository}
}

// Kind reports which table the service manages.
func (service *Service) Kind() Kind {
	return service.kind
}

// List returns a page of references.
func (service *Service) List(ctx context.Context, filter Filter, params pagination.Params) ([]*Reference, int, error) {
	return service.repository.List(ctx, filter, params)
}

// Get returns the reference with slug.
func (service *Service) Get(ctx context.Context, slug string) (*Reference, error) {
	return service.repository.FindBySlug(ctx, slug)
}

// Resolve maps slugs to references, dropping duplicates.
func (service *Service) Resolve(ctx context.Context, slugs []string) ([]*Reference, error) {
	seen := make(map[string]bool, len(slugs))
	unique := make([]string, 0, len(slugs))
	for _, value := range slugs {
		if !seen[value] {
			seen[value] = true
			unique = append(unique, value)
		}
	}
	return service.repository.FindBySlugs(ctx, unique)
}

// CreateInput holds a new reference. An empty Slug is derived from Name.
type CreateInput struct {
	Name string
	Slug string
}

// Create stores a new reference.
func (service *Service) Create(ctx context.Context, input CreateInput) (*Reference, error) {
	reference := &Reference{
		ID:   uuid.New(),
		Name: strings.TrimSpace(input.Name),
		Slug: input.Slug,
	}
	if reference.Slug == "" {
		reference.Slug = slug.From(reference.Name)
	}

	if err := service.repository.Create(ctx, reference); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "reference_created",
		slog.String("kind", service.kind.Resource),
		slog.String("slug", reference.Slug),
	)
	return reference, nil
}

// Delete removes reference.
func (service *Service) Delete(ctx context.Context, reference *Reference) error {
	if err := service.repository.Delete(ctx, reference.ID); err != nil {
		return err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "reference_deleted",
		slog.String("kind", service.kind.Resource),
		slog.String("slug", reference.Slug),
	)
	return nil
}
