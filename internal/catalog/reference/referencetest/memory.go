// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package referencetest provides an in-memory [reference.Repository].
package referencetest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/taibuivan/critique/internal/catalog/reference"
	"github.com/taibuivan/critique/internal/platform/apperr"
	"github.com/taibuivan/critique/pkg/pagination"
)

// Repository stores references keyed by slug.
type Repository struct {
	mu    sync.Mutex
	kind  reference.Kind
	items map[string]reference.Reference

	// InUse lists IDs whose deletion fails as if a title still pointed at them.
	InUse map[string]bool
}

// NewRepository returns an empty repository for kind.
func NewRepository(kind reference.Kind) *Repository {
	return &Repository{kind: kind, items: make(map[string]reference.Reference), InUse: make(map[string]bool)}
}

// Seed stores references as-is.
func (r *Repository) Seed(references ...*reference.Reference) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range references {
		r.items[item.Slug] = *item
	}
}

func (r *Repository) List(_ context.Context, filter reference.Filter, params pagination.Params) ([]*reference.Reference, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]*reference.Reference, 0, len(r.items))
	for _, item := range r.items {
		if filter.Search == "" || strings.Contains(strings.ToLower(item.Name), strings.ToLower(filter.Search)) {
			found := item
			matched = append(matched, &found)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	total := len(matched)
	start := min(params.Offset(), total)
	end := min(start+params.Limit, total)
	return matched[start:end], total, nil
}

func (r *Repository) FindBySlug(_ context.Context, slug string) (*reference.Reference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[slug]
	if !ok {
		return nil, apperr.NotFound(r.kind.Resource)
	}
	return &item, nil
}

func (r *Repository) FindBySlugs(_ context.Context, slugs []string) ([]*reference.Reference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := make([]*reference.Reference, 0, len(slugs))
	for _, slug := range slugs {
		item, ok := r.items[slug]
		if !ok {
			return nil, apperr.NotFound(r.kind.Resource)
		}
		found = append(found, &item)
	}
	return found, nil
}

func (r *Repository) Create(_ context.Context, item *reference.Reference) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.items[item.Slug]; taken {
		return apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   reference.FieldSlug,
			Message: fmt.Sprintf("%s with this slug already exists", r.kind.Resource),
		})
	}
	r.items[item.Slug] = *item
	return nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.InUse[id] {
		return apperr.Conflict(fmt.Sprintf("%s is still referenced by titles", r.kind.Resource))
	}
	for slug, item := range r.items {
		if item.ID == id {
			delete(r.items, slug)
			return nil
		}
	}
	return apperr.NotFound(r.kind.Resource)
}

var _ reference.Repository = (*Repository)(nil)
