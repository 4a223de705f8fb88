package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"user-account-api/internal/application/ports"
	"user-account-api/internal/domain/user"
	"user-account-api/internal/infrastructure/jwt"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
)

type AuthService struct {
	users      ports.UserService
	jwtService *jwt.Service
	ttl        time.Duration
	log        *zap.Logger
}

func NewAuthService(
	users ports.UserService,
	jwtService *jwt.Service,
	ttl time.Duration,
	logger *zap.Logger,
) ports.Auth {
	return &AuthService{
		users:      users,
		jwtService: jwtService,
		ttl:        ttl,
		log:        logger,
	}
}

// Login checks the credentials of an active user, stamps lastLogin and
// issues a token.
func (as *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := as.users.GetBy(ctx, user.Lookup{Email: email})
	if err != nil {
		return "", err
	}
	if u == nil || !u.Active {
		return "", ErrInvalidCredentials
	}

	ok, err := as.users.VerifyPassword(password, u.PasswordHash)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	if _, err = as.users.Update(ctx, u.ID, user.UpdateInput{UpdateLastLogin: true}); err != nil {
		return "", err
	}

	token, err := as.jwtService.GenerateJWT(u.ID.String(), string(u.Role), as.ttl)
	if err != nil {
		as.log.Error("generate jwt", zap.Error(err))
		return "", ErrFailedToGenerateToken
	}

	return token, nil
}
