package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"storeflight/config"
	"storeflight/infras/jwt"
	"storeflight/infras/otel"
	"storeflight/internal/domains/auth/model/dto"
	"storeflight/shared/constant"
	"storeflight/shared/failure"
	"storeflight/shared/password"
	"storeflight/shared/validator"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
}

type serviceImpl struct {
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

// Login checks the single operator account from the configuration and
// issues an admin token.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if s.cfg.JWT.Secret == "" || s.cfg.Admin.User == "" || s.cfg.Admin.Pass == "" {
		log.Error().Msg("admin login is not configured: JWT_SECRET, ADMIN_USER and ADMIN_PASS are required")

		return res, failure.ErrServerMisconfigured
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	userOK := password.Equal(req.User, s.cfg.Admin.User)
	passOK := password.Match(req.Pass, s.cfg.Admin.Pass)

	if !userOK || !passOK {
		log.Warn().Str("user", req.User).Msg("admin login attempt with invalid credentials")

		return res, failure.Unauthorized(failure.MessageInvalidCredentials) // nolint:wrapcheck
	}

	token, err := s.jwtService.GenerateToken(s.cfg.Admin.User)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate admin token")

		return res, fmt.Errorf("failed to generate admin token: %w", err)
	}

	log.Info().Str("user", s.cfg.Admin.User).Msg("admin logged in")

	res.FromToken(token)

	return res, nil
}
