// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/critique/internal/platform/apperr"
	"github.com/taibuivan/critique/internal/platform/validate"
)

/*
TestValidator_Rules runs each rule against passing and failing input.
*/
func TestValidator_Rules(t *testing.T) {
	tests := []struct {
		name  string
		apply func(v *validate.Validator)
		fails bool
	}{
		{"required_ok", func(v *validate.Validator) { v.Required("name", "Critique") }, false},
		{"required_blank", func(v *validate.Validator) { v.Required("name", "   ") }, true},
		{"present_ok", func(v *validate.Validator) { v.Present("year", true) }, false},
		{"present_missing", func(v *validate.Validator) { v.Present("year", false) }, true},
		{"maxlen_runes", func(v *validate.Validator) { v.MaxLen("name", "日本語", 3) }, false},
		{"maxlen_over", func(v *validate.Validator) { v.MaxLen("name", "abcd", 3) }, true},
		{"range_low_edge", func(v *validate.Validator) { v.Range("score", 1, 1, 10) }, false},
		{"range_high_edge", func(v *validate.Validator) { v.Range("score", 10, 1, 10) }, false},
		{"range_below", func(v *validate.Validator) { v.Range("score", 0, 1, 10) }, true},
		{"range_above", func(v *validate.Validator) { v.Range("score", 11, 1, 10) }, true},
		{"email_ok", func(v *validate.Validator) { v.Email("email", "reader@critique.app") }, false},
		{"email_no_domain", func(v *validate.Validator) { v.Email("email", "reader@") }, true},
		{"email_display_name", func(v *validate.Validator) { v.Email("email", "Reader <reader@critique.app>") }, true},
		{"email_empty", func(v *validate.Validator) { v.Email("email", "") }, true},
		{"slug_ok", func(v *validate.Validator) { v.Slug("slug", "film-noir") }, false},
		{"slug_spaces", func(v *validate.Validator) { v.Slug("slug", "Film Noir") }, true},
		{"username_symbols", func(v *validate.Validator) { v.Username("username", "a.b@c+d-e_1", "me") }, false},
		{"username_space", func(v *validate.Validator) { v.Username("username", "two words", "me") }, true},
		{"username_slash", func(v *validate.Validator) { v.Username("username", "a/b", "me") }, true},
		{"username_reserved", func(v *validate.Validator) { v.Username("username", "ME", "me") }, true},
		{"oneof_ok", func(v *validate.Validator) { v.OneOf("role", "admin", "user", "admin") }, false},
		{"oneof_unknown", func(v *validate.Validator) { v.OneOf("role", "root", "user", "admin") }, true},
		{"custom_false", func(v *validate.Validator) { v.Custom("year", false, "future") }, false},
		{"custom_true", func(v *validate.Validator) { v.Custom("year", true, "future") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			tt.apply(v)

			assert.Equal(t, tt.fails, v.HasErrors())
			if !tt.fails {
				assert.NoError(t, v.Err())
				return
			}
			appError := apperr.As(v.Err())
			require.NotNil(t, appError)
			assert.Equal(t, apperr.CodeValidation, appError.Code)
			assert.Len(t, appError.Details, 1)
		})
	}
}

/*
TestValidator_Accumulates keeps every failure in rule order.
*/
func TestValidator_Accumulates(t *testing.T) {
	err := (&validate.Validator{}).
		Required("username", "").
		Present("score", false).
		Email("email", "not-an-email").
		OneOf("role", "root", "user", "moderator", "admin").
		Err()

	appError := apperr.As(err)
	require.NotNil(t, appError)
	require.Len(t, appError.Details, 4)

	fields := make([]string, 0, 4)
	for _, detail := range appError.Details {
		fields = append(fields, detail.Field)
	}
	assert.Equal(t, []string{"username", "score", "email", "role"}, fields)
	assert.Equal(t, "Must be one of: user, moderator, admin", appError.Details[3].Message)
}

/*
TestRequiredError builds a single-detail validation error.
*/
func TestRequiredError(t *testing.T) {
	err := validate.RequiredError("refresh", "This field is required")

	assert.Equal(t, apperr.CodeValidation, err.Code)
	assert.Equal(t, []apperr.FieldError{{Field: "refresh", Message: "This field is required"}}, err.Details)
}
