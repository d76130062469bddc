package dto

import (
	"storeflight/infras/jwt"
	"strings"
)

type LoginRequest struct {
	User string `json:"user" validate:"required,max=200"`
	Pass string `json:"pass" validate:"required,max=200"`
}

func (l *LoginRequest) Normalize() {
	l.User = strings.TrimSpace(l.User)
}

type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

func (l *LoginResponse) FromToken(token *jwt.Token) {
	l.Token = token.AccessToken
	l.TokenType = token.TokenType
	l.ExpiresIn = token.ExpiresIn
}
