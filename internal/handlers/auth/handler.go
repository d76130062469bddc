package auth

import (
	"net/http"
	"storeflight/infras/otel"
	"storeflight/internal/domains/auth/model/dto"
	"storeflight/internal/domains/auth/service"
	"storeflight/shared/constant"
	"storeflight/shared/validator"
	"storeflight/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Post("/admin/login", handler.Login)
}

// Login exchanges the operator credentials for a bearer token.
// @Summary Admin login
// @Description Issues a signed token for the admin routes.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Decode(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("user", req.User).Msg("admin login rejected")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Admin logged in")

	response.WithOK(w, http.StatusOK, response.Fields{
		"token":      res.Token,
		"token_type": res.TokenType,
		"expires_in": res.ExpiresIn,
	})
}
