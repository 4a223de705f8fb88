package rest

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"user-account-api/internal/application/ports"
	"user-account-api/internal/application/services"
	"user-account-api/internal/interface/api/rest/middleware"
)

type fakeAuthService struct {
	LoginFunc func(ctx context.Context, email, password string) (string, error)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, error) {
	if f.LoginFunc == nil {
		return "", errors.New("not used")
	}
	return f.LoginFunc(ctx, email, password)
}

func newRouterWithController(t *testing.T, as ports.Auth, limit middleware.RateLimit) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	NewAuthController(r, zap.NewNop(), as, limit)
	return r
}

func validLogin() map[string]any {
	return map[string]any{
		"email":    "user@example.com",
		"password": "VeryStrongPassw0rd!",
	}
}

func TestAuthController_LoginHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		login      func(ctx context.Context, email, password string) (string, error)
		wantStatus int
		wantErr    string
	}{
		{
			name:       "invalid JSON",
			body:       "{bad json",
			wantStatus: http.StatusBadRequest,
			wantErr:    "invalid request body",
		},
		{
			name:       "validation error",
			body:       map[string]any{"email": "not-an-email"},
			wantStatus: http.StatusBadRequest,
			wantErr:    "validation failed",
		},
		{
			name: "invalid credentials -> 401",
			body: validLogin(),
			login: func(ctx context.Context, email, password string) (string, error) {
				return "", services.ErrInvalidCredentials
			},
			wantStatus: http.StatusUnauthorized,
			wantErr:    services.ErrInvalidCredentials.Error(),
		},
		{
			name: "token failure -> 500",
			body: validLogin(),
			login: func(ctx context.Context, email, password string) (string, error) {
				return "", services.ErrFailedToGenerateToken
			},
			wantStatus: http.StatusInternalServerError,
			wantErr:    "internal server error",
		},
		{
			name: "success",
			body: validLogin(),
			login: func(ctx context.Context, email, password string) (string, error) {
				if email != "user@example.com" || password != "VeryStrongPassw0rd!" {
					return "", errors.New("unexpected credentials")
				}
				return "tok_123", nil
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := newRouterWithController(t, &fakeAuthService{LoginFunc: tt.login}, middleware.RateLimit{})
			rr := doReq(t, r, http.MethodPost, RouteLogin, tt.body, nil)
			require.Equal(t, tt.wantStatus, rr.Code)

			resp := decode(t, rr)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, resp["error"])
				return
			}
			assert.Equal(t, "tok_123", resp["access_token"])
			assert.Equal(t, "Bearer", resp["token_type"])
		})
	}
}

func TestAuthController_LoginHandler_RateLimited(t *testing.T) {
	as := &fakeAuthService{LoginFunc: func(ctx context.Context, email, password string) (string, error) {
		return "", services.ErrInvalidCredentials
	}}
	r := newRouterWithController(t, as, middleware.RateLimit{Requests: 2, Window: time.Minute, Burst: 2})

	for i := 0; i < 2; i++ {
		rr := doReq(t, r, http.MethodPost, RouteLogin, validLogin(), nil)
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	}

	rr := doReq(t, r, http.MethodPost, RouteLogin, validLogin(), nil)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
}
