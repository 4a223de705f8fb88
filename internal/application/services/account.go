package services

import (
	"context"

	"user-account-api/internal/application/ports"
	"user-account-api/internal/domain/query"
	domain "user-account-api/internal/domain/user"
	"user-account-api/pkg/nullable"
)

// AccountService runs the existence and uniqueness pre-checks before handing
// over to the lifecycle. The pre-checks only give a clearer error; the store's
// unique indexes remain the authority under concurrent writes.
type AccountService struct {
	users ports.UserService
}

func NewAccountService(users ports.UserService) ports.AccountService {
	return &AccountService{users: users}
}

func (as *AccountService) Find(ctx context.Context, c domain.Criteria, p query.Pagination) (query.Page[*domain.User], error) {
	return as.users.All(ctx, c, p)
}

func (as *AccountService) Get(ctx context.Context, l domain.Lookup) (*domain.User, error) {
	return as.users.GetBy(ctx, l)
}

// Password reports whether password matches. Absent, inactive and deleted
// users are all reported as not found.
func (as *AccountService) Password(ctx context.Context, email, password string) (bool, error) {
	u, err := as.users.GetBy(ctx, domain.Lookup{Email: email})
	if err != nil {
		return false, err
	}
	if u == nil || !u.Active || u.Deleted {
		return false, domain.ErrUserNotFound
	}

	return as.users.VerifyPassword(password, u.PasswordHash)
}

func (as *AccountService) Create(ctx context.Context, in domain.CreateInput) (*domain.User, error) {
	if in.Email != "" {
		if err := as.ensureEmailFree(ctx, in.Email); err != nil {
			return nil, err
		}
	}
	if in.Username != "" {
		if err := as.ensureUsernameFree(ctx, in.Username); err != nil {
			return nil, err
		}
	}

	return as.users.Create(ctx, in)
}

func (as *AccountService) Update(ctx context.Context, id domain.UUID, in domain.UpdateInput) (*domain.User, error) {
	current, err := as.users.GetBy(ctx, domain.Lookup{ID: id.String()})
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.Email != "" && normalizeEmail(in.Email) != current.Email {
		if err = as.ensureEmailFree(ctx, in.Email); err != nil {
			return nil, err
		}
	}
	if in.Username != "" && domain.NormalizeUsername(in.Username) != current.Username {
		if err = as.ensureUsernameFree(ctx, in.Username); err != nil {
			return nil, err
		}
	}

	return as.users.Update(ctx, id, in)
}

// Delete soft-deletes a live user. A hard delete also reaches users that were
// already soft-deleted.
func (as *AccountService) Delete(ctx context.Context, id domain.UUID, hard bool) (bool, error) {
	l := domain.Lookup{ID: id.String()}
	if hard {
		l.Deleted = nullable.Null[bool]()
	}

	current, err := as.users.GetBy(ctx, l)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, domain.ErrUserNotFound
	}

	if err = as.users.Delete(ctx, id, hard); err != nil {
		return false, err
	}

	return true, nil
}

func (as *AccountService) ensureEmailFree(ctx context.Context, email string) error {
	existing, err := as.users.GetBy(ctx, domain.Lookup{Email: email, Deleted: nullable.Null[bool]()})
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrEmailAlreadyExists
	}
	return nil
}

func (as *AccountService) ensureUsernameFree(ctx context.Context, username string) error {
	exists, err := as.users.IsUsernameExists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrUserNameExists
	}
	return nil
}
