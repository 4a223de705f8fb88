package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "user-account-api/internal/domain/user"
	"user-account-api/internal/infrastructure/jwt"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, nil)
	jwtService := jwt.New("secret")
	auth := NewAuthService(f.svc, jwtService, time.Hour, zap.NewNop())

	u, err := f.svc.Create(ctx, validInput())
	require.NoError(t, err)
	require.Nil(t, u.LastLogin)

	_, err = auth.Login(ctx, "a@b.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, "missing@b.com", "12345678")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	token, err := auth.Login(ctx, "A@B.com", "12345678")
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.UserID)
	assert.Equal(t, string(domain.RoleAdmin), claims.Role)

	reloaded, err := f.svc.GetBy(ctx, domain.Lookup{ID: u.ID.String()})
	require.NoError(t, err)
	assert.NotNil(t, reloaded.LastLogin)
}

func TestAuthService_LoginInactive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, nil)
	auth := NewAuthService(f.svc, jwt.New("secret"), time.Hour, zap.NewNop())

	in := validInput()
	inactive := false
	in.Active = &inactive
	_, err := f.svc.Create(ctx, in)
	require.NoError(t, err)

	_, err = auth.Login(ctx, "a@b.com", "12345678")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
