// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package accounttest provides an in-memory [account.Repository] for tests of
// packages that depend on accounts.
package accounttest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/critique/internal/platform/apperr"
	"github.com/taibuivan/critique/internal/users/account"
	"github.com/taibuivan/critique/pkg/pagination"
)

// Repository is a mutex-guarded map keyed by user ID. It enforces the same
// uniqueness rules as the Postgres schema.
type Repository struct {
	mu    sync.Mutex
	users map[string]account.User
	now   func() time.Time

	// FailNext, when set, is returned by the next call and then cleared.
	FailNext error
}

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	return &Repository{users: make(map[string]account.User), now: time.Now}
}

// Seed stores users as-is.
func (r *Repository) Seed(users ...*account.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range users {
		r.users[user.ID] = *user
	}
}

// Len reports how many users are stored.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

func (r *Repository) fail() error {
	err := r.FailNext
	r.FailNext = nil
	return err
}

func (r *Repository) find(match func(account.User) bool) (*account.User, error) {
	for _, user := range r.users {
		if match(user) {
			found := user
			return &found, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *Repository) FindByID(_ context.Context, id string) (*account.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail(); err != nil {
		return nil, err
	}
	return r.find(func(u account.User) bool { return u.ID == id })
}

func (r *Repository) FindByEmail(_ context.Context, email string) (*account.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail(); err != nil {
		return nil, err
	}
	return r.find(func(u account.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *Repository) FindByUsername(_ context.Context, username string) (*account.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail(); err != nil {
		return nil, err
	}
	return r.find(func(u account.User) bool { return u.Username == username })
}

func (r *Repository) List(_ context.Context, filter account.Filter, params pagination.Params) ([]*account.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail(); err != nil {
		return nil, 0, err
	}

	matched := make([]*account.User, 0, len(r.users))
	for _, user := range r.users {
		if filter.Search == "" || strings.Contains(strings.ToLower(user.Username), strings.ToLower(filter.Search)) {
			found := user
			matched = append(matched, &found)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Username < matched[j].Username })

	total := len(matched)
	start := min(params.Offset(), total)
	end := min(start+params.Limit, total)
	return matched[start:end], total, nil
}

func (r *Repository) unique(user *account.User) error {
	for _, other := range r.users {
		if other.ID == user.ID {
			continue
		}
		if other.Username == user.Username {
			return apperr.ValidationError("Validation failed", apperr.FieldError{Field: account.FieldUsername, Message: "A user with that username already exists"})
		}
		if strings.EqualFold(other.Email, user.Email) {
			return apperr.ValidationError("Validation failed", apperr.FieldError{Field: account.FieldEmail, Message: "A user with that email already exists"})
		}
	}
	return nil
}

func (r *Repository) Create(_ context.Context, user *account.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail(); err != nil {
		return err
	}
	if err := r.unique(user); err != nil {
		return err
	}
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt, user.UpdatedAt = r.now(), r.now()
	r.users[user.ID] = *user
	return nil
}

func (r *Repository) Update(_ context.Context, user *account.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail(); err != nil {
		return err
	}
	stored, ok := r.users[user.ID]
	if !ok {
		return apperr.NotFound("User")
	}
	if err := r.unique(user); err != nil {
		return err
	}
	stored.Username, stored.Email = user.Username, strings.ToLower(user.Email)
	stored.FirstName, stored.LastName, stored.Bio = user.FirstName, user.LastName, user.Bio
	stored.Role = user.Role
	stored.UpdatedAt = r.now()
	r.users[user.ID] = stored
	user.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail(); err != nil {
		return err
	}
	if _, ok := r.users[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(r.users, id)
	return nil
}

func (r *Repository) BumpCodeVersion(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail(); err != nil {
		return 0, err
	}
	user, ok := r.users[id]
	if !ok {
		return 0, apperr.NotFound("User")
	}
	user.CodeVersion++
	r.users[id] = user
	return user.CodeVersion, nil
}

func (r *Repository) Activate(_ context.Context, id string, expectedVersion int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail(); err != nil {
		return false, err
	}
	user, ok := r.users[id]
	if !ok || user.CodeVersion != expectedVersion {
		return false, nil
	}
	user.IsActive = true
	user.CodeVersion++
	r.users[id] = user
	return true, nil
}

var _ account.Repository = (*Repository)(nil)
