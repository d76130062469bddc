package middleware

import (
	"context"
	"errors"
	"net/http"
	"storeflight/config"
	"storeflight/infras/jwt"
	"storeflight/infras/otel"
	"storeflight/shared/constant"
	"storeflight/shared/failure"
	"storeflight/shared/password"
	"storeflight/transport/http/response"

	"github.com/rs/zerolog/log"
)

// Auth guards the operator routes.
type Auth interface {
	RequireAdmin(next http.Handler) http.Handler
}

type authImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	cfg        *config.Config
}

func NewAuthMiddleware(jwtService jwt.JWT, otel otel.Otel, cfg *config.Config) Auth {
	return &authImpl{
		jwtService: jwtService,
		otel:       otel,
		cfg:        cfg,
	}
}

// RequireAdmin accepts a bearer token issued by the login endpoint or the
// static admin key from the X-Admin-Key header or the key query parameter.
func (m *authImpl) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       request.URL.Path,
			"http.method":     request.Method,
		})

		if key := adminKey(request); key != "" {
			if m.cfg.Admin.Key == "" {
				log.Error().Msg("admin key presented but ADMIN_KEY is not configured")

				scope.TraceError(failure.ErrServerMisconfigured)
				scope.End()
				response.WithError(writer, failure.ErrServerMisconfigured)

				return
			}

			if !password.Equal(key, m.cfg.Admin.Key) {
				err := failure.Unauthorized(failure.MessageUnauthorized)

				scope.TraceError(err)
				scope.End()
				response.WithError(writer, err)

				return
			}

			ctx = context.WithValue(ctx, constant.ContextKeyRole, constant.RoleAdmin)
			ctx = context.WithValue(ctx, constant.ContextKeyAuthBy, constant.AuthByKey)

			scope.SetAttribute("auth.by", constant.AuthByKey)
			scope.End()

			next.ServeHTTP(writer, request.WithContext(ctx))

			return
		}

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == "" {
			err := failure.Unauthorized(failure.MessageUnauthorized)

			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			err := failure.Unauthorized(failure.MessageUnauthorized)

			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			message := "invalid_token"
			if errors.Is(err, jwt.ErrExpiredToken) {
				message = "token_expired"
			}

			err := failure.Unauthorized(message)

			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		if claims.Role != constant.RoleAdmin || claims.Username == "" {
			err := failure.Unauthorized("invalid_token")

			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUsername, claims.Username)
		ctx = context.WithValue(ctx, constant.ContextKeyRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)
		ctx = context.WithValue(ctx, constant.ContextKeyAuthBy, constant.AuthByToken)

		scope.SetAttribute("auth.by", constant.AuthByToken)
		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func adminKey(request *http.Request) string {
	if key := request.Header.Get(constant.RequestHeaderAdminKey); key != "" {
		return key
	}

	return request.URL.Query().Get(constant.RequestParamKey)
}
