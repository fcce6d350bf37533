// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reference manages the flat lookup tables titles are classified by.

Categories and genres share one shape (name and slug) and one behaviour:
anyone may list them, administrators create and delete them, and nothing
else is exposed. A [Kind] selects which table a repository, service and
handler operate on.
*/
package reference

import "github.com/taibuivan/critique/internal/platform/database/schema"

// Reference is a category or a genre.
type Reference struct {
	ID   string `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Filter narrows a list query.
type Filter struct {
	// Search matches names case-insensitively.
	Search string
}

// Kind binds a resource name to its table.
type Kind struct {
	Resource string
	Table    schema.CatalogReferenceTable
}

var (
	Categories = Kind{Resource: "Category", Table: schema.CatalogCategory}
	Genres     = Kind{Resource: "Genre", Table: schema.CatalogGenre}
)

// # Field Identifiers

const (
	FieldName = "name"
	FieldSlug = "slug"
)

const (
	MaxNameLength = 256
	MaxSlugLength = 50
)
