// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"

	"github.com/taibuivan/critique/pkg/pagination"
)

// Repository defines persistence for one [Kind] of reference.
type Repository interface {
	List(ctx context.Context, filter Filter, params pagination.Params) ([]*Reference, int, error)
	FindBySlug(ctx context.Context, slug string) (*Reference, error)

	// FindBySlugs returns the references for slugs in input order. It fails
	// with NotFound if any slug is unknown.
	FindBySlugs(ctx context.Context, slugs []string) ([]*Reference, error)

	Create(ctx context.Context, reference *Reference) error
	Delete(ctx context.Context, id string) error
}
