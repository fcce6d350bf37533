// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/critique/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Science Fiction", "science-fiction"},
		{"  Film Noir!! ", "film-noir"},
		{"Café Society", "cafe-society"},
		{"rock--n--roll", "rock-n-roll"},
		{"数学", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.in))
		})
	}
}

func TestFrom_Truncates(t *testing.T) {
	got := slug.From(strings.Repeat("ab ", 40))

	assert.LessOrEqual(t, len(got), slug.MaxLength)
	assert.True(t, slug.Valid(got))
}

func TestValid(t *testing.T) {
	assert.True(t, slug.Valid("drama"))
	assert.True(t, slug.Valid("sci-fi-2"))
	assert.False(t, slug.Valid("Drama"))
	assert.False(t, slug.Valid("-drama"))
	assert.False(t, slug.Valid(""))
	assert.False(t, slug.Valid(strings.Repeat("a", slug.MaxLength+1)))
}
