//go:build wireinject
// +build wireinject

package di

import (
	"storeflight/config"
	"storeflight/infras/jwt"
	"storeflight/infras/kafka"
	"storeflight/infras/otel"
	"storeflight/infras/paypal"
	"storeflight/infras/postgres"
	"storeflight/infras/redis"
	"storeflight/infras/resend"
	"storeflight/infras/s3"
	"storeflight/internal/scheduler"
	"storeflight/shared/cache"
	"storeflight/transport/http"
	"storeflight/transport/http/middleware"
	"storeflight/transport/http/router"

	authService "storeflight/internal/domains/auth/service"
	notificationRepository "storeflight/internal/domains/notification/repository"
	notificationService "storeflight/internal/domains/notification/service"
	paymentService "storeflight/internal/domains/payment/service"
	reservationRepository "storeflight/internal/domains/reservation/repository"
	reservationService "storeflight/internal/domains/reservation/service"

	authHandler "storeflight/internal/handlers/auth"
	healthHandler "storeflight/internal/handlers/health"
	paymentHandler "storeflight/internal/handlers/payment"
	reservationHandler "storeflight/internal/handlers/reservation"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Transactor), new(*postgres.Connection)),
	wire.Bind(new(healthHandler.Pinger), new(*postgres.Connection)),
	otel.New,
	redis.New,
	jwt.New,
	paypal.New,
	resend.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var notificationDomain = wire.NewSet(
	notificationRepository.New,
	notificationService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var domains = wire.NewSet(
	notificationDomain,
	reservationDomain,
	paymentService.New,
	authService.New,
)

var workers = wire.NewSet(
	scheduler.NewDispatcher,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	authHandler.New,
	reservationHandler.New,
	paymentHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		workers,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
