package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"user-account-api/internal/domain/query"
	"user-account-api/internal/domain/user"
	"user-account-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, req user.User) (*user.User, error) {
	u := new(User)
	if err := r.db.QueryRow(ctx, InsertUser, insertArgs(req)...).Scan(u.scanTargets()...); err != nil {
		return nil, uniqueViolation(err)
	}

	return fromDBModel(u)
}

func (r *Repository) Update(ctx context.Context, id user.UUID, patch user.Patch) error {
	b := new(builder)
	set := b.set(patch)
	if set == "" {
		return user.ErrNothingToUpdate
	}
	b.args = append(b.args, id.String())

	tag, err := r.db.Exec(ctx, fmt.Sprintf(UpdateUserByID, set, len(b.args)), b.args...)
	if err != nil {
		return uniqueViolation(err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id user.UUID) error {
	tag, err := r.db.Exec(ctx, DeleteUserByID, id.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *Repository) FindOne(ctx context.Context, q query.Query) (*user.User, error) {
	b := new(builder)
	where, err := b.where(q)
	if err != nil {
		return nil, err
	}

	u := new(User)
	err = r.db.QueryRow(ctx, fmt.Sprintf(SelectUserWhere, where), b.args...).Scan(u.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u)
}

func (r *Repository) All(ctx context.Context, q query.Query, p query.Pagination) (query.Page[*user.User], error) {
	var page query.Page[*user.User]

	b := new(builder)
	where, err := b.where(q)
	if err != nil {
		return page, err
	}

	var count int
	if err = r.db.QueryRow(ctx, fmt.Sprintf(CountUsersWhere, where), b.args...).Scan(&count); err != nil {
		return page, err
	}

	w, err := p.Window(count)
	if err != nil {
		return page, err
	}
	if w.End == w.Start {
		return query.NewPage[*user.User](nil, p, w), nil
	}

	rows, err := r.db.Query(ctx, fmt.Sprintf(SelectUsersWhere, where, w.End-w.Start, w.Start), b.args...)
	if err != nil {
		return page, err
	}
	defer rows.Close()

	var us Users
	for rows.Next() {
		u := new(User)
		if err = rows.Scan(u.scanTargets()...); err != nil {
			return page, err
		}
		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return page, err
	}

	docs, err := fromDBModels(us)
	if err != nil {
		return page, err
	}

	return query.NewPage(docs, p, w), nil
}

func uniqueViolation(err error) error {
	switch postgres.UniqueViolationConstraint(err) {
	case "":
		return err
	case emailUniqueKey:
		return user.ErrEmailAlreadyExists
	case usernameUniqueKey:
		return user.ErrUserNameExists
	default:
		return fmt.Errorf("unique violation: %w", err)
	}
}
