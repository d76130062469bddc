package health

import (
	"context"
	"net/http"
	"storeflight/config"
	"storeflight/infras/otel"
	"storeflight/shared/constant"
	"storeflight/transport/http/response"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db       Pinger
	cfg      *config.Config
	otel     otel.Otel
	draining *atomic.Bool
}

func New(db Pinger, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		db:       db,
		cfg:      cfg,
		otel:     otel,
		draining: &atomic.Bool{},
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Get("/health", handler.Health)
}

// Drain makes the health check fail so load balancers stop routing here.
func (handler *Handler) Drain() {
	handler.draining.Store(true)
}

// Health reports whether the API and its database are up.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message
// @Failure 503 {object} response.Error
// @Router /api/health [get]
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Health")
	defer scope.End()

	if handler.draining.Load() {
		response.WithPreparingShutdown(w)

		return
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := handler.db.Ping(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("database ping failed")

		response.WithUnhealthy(w)

		return
	}

	response.WithMessage(w, http.StatusOK, handler.cfg.App.Name+" API running ✈️")
}
