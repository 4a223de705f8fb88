package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "user-account-api/internal/domain/user"
	"user-account-api/pkg/nullable"
)

func newAccountService(t *testing.T) (*AccountService, fixture) {
	t.Helper()
	f := newFixture(t, nil, nil)
	return NewAccountService(f.svc).(*AccountService), f
}

func TestAccountService_CreateUniqueness(t *testing.T) {
	ctx := context.Background()
	as, f := newAccountService(t)

	first, err := as.Create(ctx, validInput())
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, first.ID, false))

	tests := []struct {
		name   string
		mutate func(in *domain.CreateInput)
		want   error
	}{
		{"email taken by soft-deleted user", func(in *domain.CreateInput) {}, domain.ErrEmailAlreadyExists},
		{"email compared case-insensitively", func(in *domain.CreateInput) { in.Email = "A@B.COM" }, domain.ErrEmailAlreadyExists},
		{"username taken", func(in *domain.CreateInput) { in.Email = "other@b.com"; in.Username = "AB" }, domain.ErrUserNameExists},
		{"default username collides in store", func(in *domain.CreateInput) { in.Email = "other@b.com" }, domain.ErrUserNameExists},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := as.Create(ctx, in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAccountService_Password(t *testing.T) {
	ctx := context.Background()
	as, f := newAccountService(t)

	u, err := as.Create(ctx, validInput())
	require.NoError(t, err)

	ok, err := as.Password(ctx, "a@b.com", "12345678")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = as.Password(ctx, "a@b.com", "wrong-password")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = as.Password(ctx, "nobody@b.com", "12345678")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	inactive := false
	_, err = as.Update(ctx, u.ID, domain.UpdateInput{Active: &inactive})
	require.NoError(t, err)
	_, err = as.Password(ctx, "a@b.com", "12345678")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	require.NoError(t, f.svc.Delete(ctx, u.ID, false))
	_, err = as.Password(ctx, "a@b.com", "12345678")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAccountService_Update(t *testing.T) {
	ctx := context.Background()
	as, _ := newAccountService(t)

	u, err := as.Create(ctx, validInput())
	require.NoError(t, err)
	other := validInput()
	other.Email, other.FirstName = "c@d.com", "Cee"
	_, err = as.Create(ctx, other)
	require.NoError(t, err)

	_, err = as.Update(ctx, uuid.New(), domain.UpdateInput{FirstName: "Zed"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = as.Update(ctx, u.ID, domain.UpdateInput{Email: "c@d.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = as.Update(ctx, u.ID, domain.UpdateInput{Username: "ceeb"})
	assert.ErrorIs(t, err, domain.ErrUserNameExists)

	_, err = as.Update(ctx, u.ID, domain.UpdateInput{})
	assert.ErrorIs(t, err, domain.ErrNothingToUpdate)

	updated, err := as.Update(ctx, u.ID, domain.UpdateInput{Email: "A@b.com", FirstName: "Alice", Groups: nullable.Of([]string{"g1"})})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.FirstName)
	assert.Equal(t, []string{"g1"}, updated.Groups)
}

func TestAccountService_UpdateNullGroupsClears(t *testing.T) {
	ctx := context.Background()
	as, _ := newAccountService(t)

	in := validInput()
	in.Groups = []string{"g1"}
	u, err := as.Create(ctx, in)
	require.NoError(t, err)

	updated, err := as.Update(ctx, u.ID, domain.UpdateInput{Groups: nullable.Null[[]string]()})
	require.NoError(t, err)
	assert.Equal(t, []string{}, updated.Groups)
}

func TestAccountService_CreateSameNameNeedsUsername(t *testing.T) {
	ctx := context.Background()
	as, _ := newAccountService(t)

	person := func(email string) domain.CreateInput {
		in := validInput()
		in.Email = email
		in.FirstName, in.LastName = "Søren", "Ng"
		return in
	}

	first, err := as.Create(ctx, person("soren1@b.com"))
	require.NoError(t, err)
	assert.Equal(t, "sørenng", first.Username)

	_, err = as.Create(ctx, person("soren2@b.com"))
	assert.ErrorIs(t, err, domain.ErrUserNameExists)

	in := person("soren2@b.com")
	in.Username = "soren2"
	second, err := as.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "soren2", second.Username)
}

func TestAccountService_Delete(t *testing.T) {
	ctx := context.Background()
	as, f := newAccountService(t)

	u, err := as.Create(ctx, validInput())
	require.NoError(t, err)

	ok, err := as.Delete(ctx, u.ID, false)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = as.Delete(ctx, u.ID, false)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	ok, err = as.Delete(ctx, u.ID, true)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = as.Delete(ctx, u.ID, true)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = as.Get(ctx, domain.Lookup{})
	assert.ErrorIs(t, err, domain.ErrParameterRequired)

	assert.Contains(t, f.events.actions(), "user.deleted")
}
