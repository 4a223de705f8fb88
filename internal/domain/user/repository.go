package user

import (
	"context"

	"user-account-api/internal/domain/query"
)

// Repository is the data store behind the user lifecycle. FindOne returns
// nil, nil when nothing matches. Create and Update report unique-index
// violations as ErrEmailAlreadyExists or ErrUserNameExists.
type Repository interface {
	Create(ctx context.Context, u User) (*User, error)
	Update(ctx context.Context, id UUID, patch Patch) error
	Delete(ctx context.Context, id UUID) error
	FindOne(ctx context.Context, q query.Query) (*User, error)
	All(ctx context.Context, q query.Query, p query.Pagination) (query.Page[*User], error)
}
