package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"storeflight/config"
	"storeflight/internal/scheduler"
	"storeflight/shared/constant"
	"storeflight/transport/http/middleware"
	"storeflight/transport/http/response"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "storeflight/docs" // swagger spec
	"storeflight/transport/http/router"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

const (
	readHeaderTimeout = 10 * time.Second
	corsAllowAll      = "*"
)

type HTTP struct {
	Config     *config.Config
	Router     router.Router
	Middleware middleware.AppMiddleware
	Dispatcher *scheduler.Dispatcher

	state  atomic.Int32
	once   sync.Once
	mux    *chi.Mux
	server *http.Server
}

func New(cfg *config.Config, r router.Router, mw middleware.AppMiddleware, dispatcher *scheduler.Dispatcher) *HTTP {
	return &HTTP{
		Config:     cfg,
		Router:     r,
		Middleware: mw,
		Dispatcher: dispatcher,
	}
}

// Serve starts the outbox dispatcher and blocks serving HTTP until the
// process receives SIGINT or SIGTERM.
func (h *HTTP) Serve() {
	h.setup()

	h.server = &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	h.Dispatcher.Start(context.Background())

	shutdownDone := h.setupGracefulShutdown()

	log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}

	<-shutdownDone
}

// Adaptor exposes the routes as a single handler for serverless hosts. The
// outbox dispatcher is not started there.
func (h *HTTP) Adaptor() http.HandlerFunc {
	h.setup()

	return h.mux.ServeHTTP
}

// State reports the lifecycle phase of the server.
func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

// Handler returns the configured router.
func (h *HTTP) Handler() http.Handler {
	h.setup()

	return h.mux
}

func (h *HTTP) setup() {
	h.once.Do(func() {
		h.setupRoutes()
		h.state.Store(int32(ServerStateReady))
	})
}

func (h *HTTP) setupRoutes() {
	h.mux = chi.NewRouter()

	h.mux.Use(chiMiddleware.RequestID)
	h.mux.Use(chiMiddleware.RealIP)
	h.mux.Use(h.Middleware.Recoverer)
	h.mux.Use(cors.Handler(h.corsOptions()))
	h.mux.Use(h.Middleware.Tracing)
	h.mux.Use(h.Middleware.RateLimit())
	h.mux.Use(h.Middleware.BodyLimit)

	h.mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.WithNotFound(w, r.URL.Path)
	})

	h.mux.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.WithNotFound(w, r.URL.Path)
	})

	if !h.Config.IsProduction() {
		h.mux.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	h.Router.SetupRoutes(h.mux)
}

// corsOptions reflects any origin with credentials when CORS_ORIGIN is "*",
// otherwise only the listed origins are allowed.
func (h *HTTP) corsOptions() cors.Options {
	options := cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{constant.RequestHeaderContentType, constant.RequestHeaderAuthorization, constant.RequestHeaderAdminKey},
		ExposedHeaders:   []string{constant.RequestHeaderRequestID},
		AllowCredentials: true,
		MaxAge:           h.Config.App.CORS.MaxAgeSeconds,
	}

	origin := strings.TrimSpace(h.Config.App.CORS.Origin)
	if origin == "" || origin == corsAllowAll {
		options.AllowOriginFunc = func(_ *http.Request, _ string) bool { return true }

		return options
	}

	for _, o := range strings.Split(origin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			options.AllowedOrigins = append(options.AllowedOrigins, o)
		}
	}

	return options
}

func (h *HTTP) setupGracefulShutdown() <-chan struct{} {
	serverStateCh := make(chan os.Signal, 1)
	done := make(chan struct{})

	signal.Notify(serverStateCh, os.Interrupt, syscall.SIGTERM)

	go h.respondToSigterm(serverStateCh, done)

	return done
}

func (h *HTTP) respondToSigterm(sig chan os.Signal, done chan struct{}) {
	<-sig

	defer close(done)

	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Msg("Received SIGTERM.")

	if h.Config.Server.Env != constant.ServerEnvDevelopment {
		log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

		h.state.Store(int32(ServerStateInGracePeriod))
		h.Router.Drain()

		time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)
	}

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.state.Store(int32(ServerStateInCleanupPeriod))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server did not shut down cleanly")
	}

	h.Dispatcher.Stop()

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}
