// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package title manages the works users review.

A title belongs to at most one category and any number of genres. Both are
referenced by slug on input and rendered as objects on output. The rating is
never stored: it is the average review score, computed on read.
*/
package title

import (
	"time"

	"github.com/taibuivan/critique/internal/catalog/reference"
)

// Title is a reviewable work.
type Title struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Year        int                    `json:"year"`
	Description string                 `json:"description"`
	Genres      []*reference.Reference `json:"genre"`
	Category    *reference.Reference   `json:"category"`

	// Rating is nil until the title has a review.
	Rating *float64 `json:"rating"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// GenreSlugs returns the slugs of the attached genres.
func (t *Title) GenreSlugs() []string {
	slugs := make([]string, 0, len(t.Genres))
	for _, genre := range t.Genres {
		slugs = append(slugs, genre.Slug)
	}
	return slugs
}

// Filter narrows a title listing. Zero values are ignored.
type Filter struct {
	Category string
	Genre    string
	Name     string
	Year     int
}

// Patch carries a partial update. Nil fields are left untouched; an empty
// Category clears the category.
type Patch struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

// # Field Identifiers

const (
	FieldName     = "name"
	FieldYear     = "year"
	FieldCategory = "category"
	FieldGenre    = "genre"
	FieldTitleID  = "titleID"
)

const MaxNameLength = 256
