package main

import (
	"storeflight/config"
	"storeflight/di"
	"storeflight/helper"
	"storeflight/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title StoreFlight API
// @version 1.0
// @description Reservation and PayPal checkout backend for the StoreFlight travel agency.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin token.
func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.Configure(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	log.Info().
		Str("env", cfg.Server.Env).
		Str("paypal_mode", cfg.PayPal.Env).
		Bool("email_enabled", cfg.Email.ResendAPIKey != "").
		Bool("one_step_checkout", cfg.Reservation.OneStep).
		Msg("StoreFlight API configured")

	for _, warning := range cfg.Warnings() {
		log.Warn().Msg(warning)
	}

	http := di.InitializeService()
	http.Serve()
}
