package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"storeflight/config"
	"storeflight/infras/jwt"
	jwtMocks "storeflight/infras/jwt/mocks"
	"storeflight/infras/otel/mocks"
	"storeflight/internal/domains/auth/model/dto"
	"storeflight/internal/domains/auth/service"
	"storeflight/shared/failure"
	"storeflight/shared/password"
)

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	hashed, err := password.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	newConfig := func(pass string) *config.Config {
		cfg := &config.Config{}
		cfg.JWT.Secret = "test-secret"
		cfg.Admin.User = "admin"
		cfg.Admin.Pass = pass

		return cfg
	}

	tests := []struct {
		name      string
		cfg       *config.Config
		req       dto.LoginRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful login with plain password",
			cfg:  newConfig("s3cret-pass"),
			req:  dto.LoginRequest{User: "admin", Pass: "s3cret-pass"},
			setupMock: func() {
				mockJWT.EXPECT().
					GenerateToken("admin").
					Return(&jwt.Token{AccessToken: "token", TokenType: "Bearer", ExpiresIn: 604800}, nil)
			},
		},
		{
			name: "successful login with bcrypt hash",
			cfg:  newConfig(hashed),
			req:  dto.LoginRequest{User: "admin", Pass: "s3cret-pass"},
			setupMock: func() {
				mockJWT.EXPECT().
					GenerateToken("admin").
					Return(&jwt.Token{AccessToken: "token", TokenType: "Bearer", ExpiresIn: 604800}, nil)
			},
		},
		{
			name:      "wrong password",
			cfg:       newConfig("s3cret-pass"),
			req:       dto.LoginRequest{User: "admin", Pass: "guess"},
			setupMock: func() {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:      "wrong user",
			cfg:       newConfig(hashed),
			req:       dto.LoginRequest{User: "root", Pass: "s3cret-pass"},
			setupMock: func() {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:      "missing secret",
			cfg:       func() *config.Config { c := newConfig("x"); c.JWT.Secret = ""; return c }(),
			req:       dto.LoginRequest{User: "admin", Pass: "x"},
			setupMock: func() {},
			wantCode:  http.StatusInternalServerError,
		},
		{
			name:      "missing credentials in request",
			cfg:       newConfig("s3cret-pass"),
			req:       dto.LoginRequest{},
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "token generation fails",
			cfg:  newConfig("s3cret-pass"),
			req:  dto.LoginRequest{User: "admin", Pass: "s3cret-pass"},
			setupMock: func() {
				mockJWT.EXPECT().GenerateToken("admin").Return(nil, errors.New("signing failed"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			svc := service.New(tt.cfg, mockOtel, mockJWT)
			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "token", res.Token)
			assert.Equal(t, "Bearer", res.TokenType)
		})
	}
}
