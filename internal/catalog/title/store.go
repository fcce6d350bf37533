// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"

	"github.com/taibuivan/critique/pkg/pagination"
)

// Repository defines persistence for titles. Create and Update write the
// genre links together with the row.
type Repository interface {
	List(ctx context.Context, filter Filter, params pagination.Params) ([]*Title, int, error)
	FindByID(ctx context.Context, id string) (*Title, error)
	Create(ctx context.Context, title *Title) error
	Update(ctx context.Context, title *Title) error
	Delete(ctx context.Context, id string) error
}
