// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package validate checks decoded request payloads.

Handlers build a [Validator], chain the rules a payload needs and return
[Validator.Err]. Every failed rule becomes one [apperr.FieldError], so a
client sees all problems of a payload at once, in rule order.

A Validator is single-use and not safe for concurrent use.
*/
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/critique/internal/platform/apperr"
	"github.com/taibuivan/critique/pkg/slug"
)

const (
	msgRequired = "This field is required"
	msgFailed   = "Validation failed"
)

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// Validator accumulates field errors.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails on a blank value.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, msgRequired)
	}
	return v
}

// Present fails when an optional JSON field was left out. Pass whether the
// decoded pointer is non-nil.
func (v *Validator) Present(field string, set bool) *Validator {
	if !set {
		v.add(field, msgRequired)
	}
	return v
}

// MaxLen counts runes, not bytes.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// Range is inclusive at both ends.
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return v
}

// Email accepts a bare RFC 5322 address. Display names are rejected.
func (v *Validator) Email(field, value string) *Validator {
	address, err := mail.ParseAddress(value)
	if err != nil || address.Address != value {
		v.add(field, "Must be a valid email address")
	}
	return v
}

// Slug accepts lowercase letters, digits and inner hyphens.
func (v *Validator) Slug(field, value string) *Validator {
	if !slug.Valid(value) {
		v.add(field, "Must be a valid URL slug (lowercase letters, digits, hyphens only)")
	}
	return v
}

// Username accepts letters, digits and . @ + - _, and refuses reserved path
// words case-insensitively.
func (v *Validator) Username(field, value string, reserved ...string) *Validator {
	if !usernamePattern.MatchString(value) {
		v.add(field, "Letters, digits and @/./+/-/_ only")
		return v
	}
	for _, word := range reserved {
		if strings.EqualFold(value, word) {
			v.add(field, fmt.Sprintf("%q is reserved", word))
			break
		}
	}
	return v
}

// OneOf fails when value is outside allowed.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, candidate := range allowed {
		if value == candidate {
			return v
		}
	}
	v.add(field, "Must be one of: "+strings.Join(allowed, ", "))
	return v
}

// Custom records message when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// HasErrors reports whether any rule failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Err returns a VALIDATION_ERROR carrying every failure, or nil.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError(msgFailed, v.errs...)
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// RequiredError builds a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError(msgFailed, apperr.FieldError{Field: field, Message: message})
}
