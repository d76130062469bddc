package dto_test

import (
	"testing"

	"storeflight/infras/jwt"
	"storeflight/internal/domains/auth/model/dto"
	"storeflight/shared/validator"

	"github.com/stretchr/testify/assert"
)

func TestLoginResponse_FromToken(t *testing.T) {
	token := &jwt.Token{
		AccessToken: "signed-token",
		TokenType:   "Bearer",
		ExpiresIn:   604800,
	}

	var response dto.LoginResponse
	response.FromToken(token)

	assert.Equal(t, "signed-token", response.Token)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(604800), response.ExpiresIn)
}

func TestLoginRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.LoginRequest
		wantErr bool
	}{
		{name: "valid", req: dto.LoginRequest{User: " admin ", Pass: "secret"}},
		{name: "missing user", req: dto.LoginRequest{User: "  ", Pass: "secret"}, wantErr: true},
		{name: "missing pass", req: dto.LoginRequest{User: "admin"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "admin", tt.req.User)
			}
		})
	}
}
