package router

import (
	"storeflight/internal/handlers/auth"
	"storeflight/internal/handlers/health"
	"storeflight/internal/handlers/payment"
	"storeflight/internal/handlers/reservation"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Health      health.Handler
	Auth        auth.Handler
	Reservation reservation.Handler
	Payment     payment.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/api", func(routerGroup chi.Router) {
		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
	})
}

// Drain flips the health check to report the shutdown.
func (r *Router) Drain() {
	r.DomainHandlers.Health.Drain()
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
