// Package user is an in-process user store with the same contract as the
// Postgres repository. Uniqueness of email and username spans deleted users.
package user

import (
	"context"
	"sort"
	"sync"

	"user-account-api/internal/domain/query"
	"user-account-api/internal/domain/user"
)

type Repository struct {
	mu    sync.RWMutex
	users map[user.UUID]*user.User
}

func NewRepository() user.Repository {
	return &Repository{users: make(map[user.UUID]*user.User)}
}

func (r *Repository) Create(_ context.Context, u user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(u.ID, u.Email, u.Username); err != nil {
		return nil, err
	}

	stored := u.Clone()
	r.users[u.ID] = stored

	return stored.Clone(), nil
}

func (r *Repository) Update(_ context.Context, id user.UUID, patch user.Patch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}

	next := current.Clone()
	patch.Apply(next)
	if err := r.checkUnique(id, next.Email, next.Username); err != nil {
		return err
	}
	r.users[id] = next

	return nil
}

func (r *Repository) Delete(_ context.Context, id user.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.users, id)

	return nil
}

func (r *Repository) FindOne(_ context.Context, q query.Query) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := query.Narrow(r.sorted(), q)
	if len(found) == 0 {
		return nil, nil
	}

	return found[0].Clone(), nil
}

func (r *Repository) All(_ context.Context, q query.Query, p query.Pagination) (query.Page[*user.User], error) {
	r.mu.RLock()
	found := query.Narrow(r.sorted(), q)
	r.mu.RUnlock()

	page, err := query.Paginate(found, p)
	if err != nil {
		return page, err
	}
	for i, u := range page.Docs {
		page.Docs[i] = u.Clone()
	}

	return page, nil
}

// sorted orders by creation time then id, like the SQL store.
func (r *Repository) sorted() []*user.User {
	out := make([]*user.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].CreatedAt.Compare(out[j].CreatedAt); c != 0 {
			return c < 0
		}
		return out[i].ID.String() < out[j].ID.String()
	})

	return out
}

func (r *Repository) checkUnique(id user.UUID, email, username string) error {
	for otherID, u := range r.users {
		if otherID == id {
			continue
		}
		if u.Email == email {
			return user.ErrEmailAlreadyExists
		}
		if u.Username == username {
			return user.ErrUserNameExists
		}
	}

	return nil
}
