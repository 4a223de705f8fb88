package ports

import (
	"context"

	"user-account-api/internal/domain/query"
	"user-account-api/internal/domain/user"
)

type (
	// UserService is the user lifecycle. It trusts its caller to have run
	// existence and uniqueness checks.
	UserService interface {
		Create(ctx context.Context, in user.CreateInput) (*user.User, error)
		Update(ctx context.Context, id user.UUID, in user.UpdateInput) (*user.User, error)
		Delete(ctx context.Context, id user.UUID, hard bool) error
		All(ctx context.Context, c user.Criteria, p query.Pagination) (query.Page[*user.User], error)
		GetBy(ctx context.Context, l user.Lookup) (*user.User, error)
		IsUsernameExists(ctx context.Context, username string) (bool, error)
		VerifyPassword(plain, hash string) (bool, error)
	}

	// AccountService is the surface the transport layer calls.
	AccountService interface {
		Find(ctx context.Context, c user.Criteria, p query.Pagination) (query.Page[*user.User], error)
		Get(ctx context.Context, l user.Lookup) (*user.User, error)
		Password(ctx context.Context, email, password string) (bool, error)
		Create(ctx context.Context, in user.CreateInput) (*user.User, error)
		Update(ctx context.Context, id user.UUID, in user.UpdateInput) (*user.User, error)
		Delete(ctx context.Context, id user.UUID, hard bool) (bool, error)
	}
)
