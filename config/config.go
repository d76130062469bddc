package config

import (
	"fmt"
	"strings"
	"storeflight/shared/constant"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"10000"`
		Host     string `split_words:"true" default:"0.0.0.0"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `split_words:"true" default:"5"`
			GracePeriodSeconds   int64 `split_words:"true" default:"5"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `split_words:"true" default:"StoreFlight"`
		Timezone string `split_words:"true" default:"UTC"`
		CORS     struct {
			Origin        string `envconfig:"CORS_ORIGIN"     default:"*"`
			MaxAgeSeconds int    `split_words:"true" default:"300"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `split_words:"true" default:"true"`
			MaxRequests   int  `split_words:"true" default:"120"`
			WindowSeconds int  `split_words:"true" default:"60"`
		} `envconfig:"RATE_LIMITER"`
		HTTPClientTimeoutSeconds int `split_words:"true" default:"15"`
	} `envconfig:"APP"`

	Reservation struct {
		OneStep    bool `split_words:"true"`
		PublicList bool `split_words:"true"`
	} `envconfig:"RESERVATION"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `split_words:"true" default:"localhost"`
				Port     string `split_words:"true" default:"6379"`
				Password string `split_words:"true"`
				DB       int    `split_words:"true"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `split_words:"true" default:"60"`
	} `envconfig:"CACHE"`

	JWT struct {
		Secret      string `split_words:"true"`
		ExpireHours int    `split_words:"true" default:"168"`
	} `envconfig:"JWT"`

	Admin struct {
		User string `split_words:"true"`
		Pass string `split_words:"true"`
		Key  string `split_words:"true"`
	} `envconfig:"ADMIN"`

	DB struct {
		Postgres struct {
			URL            string `envconfig:"DATABASE_URL"`
			MaxRetry       int    `split_words:"true" default:"5"`
			RetryWaitTime  int    `split_words:"true" default:"2"`
			MaxIdleConns   int    `split_words:"true" default:"10"`
			MaxOpenConns   int    `split_words:"true" default:"10"`
			MigrationTable string `split_words:"true" default:"schema_migrations"`
			MigrationPath  string `split_words:"true" default:"file://migrations/postgres"`
			AutoMigrate    bool   `split_words:"true"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	PayPal struct {
		ClientID     string `split_words:"true"`
		ClientSecret string `split_words:"true"`
		Env          string `split_words:"true" default:"sandbox"`
		BaseURL      string `split_words:"true"`
	} `envconfig:"PAYPAL"`

	Email struct {
		ResendAPIKey  string `envconfig:"RESEND_API_KEY"`
		ResendBaseURL string `split_words:"true" default:"https://api.resend.com"`
		From          string `envconfig:"EMAIL_FROM"      default:"StoreFlight <onboarding@resend.dev>"`
		AdminAddress  string `envconfig:"ADMIN_EMAIL"`
	} `envconfig:"EMAIL"`

	Outbox struct {
		PollSeconds int `split_words:"true" default:"5"`
		BatchSize   int `split_words:"true" default:"20"`
		MaxAttempts int `split_words:"true" default:"8"`
	} `envconfig:"OUTBOX"`

	Kafka struct {
		Enable  bool     `split_words:"true"`
		Brokers []string `split_words:"true"`
		Topic   string   `split_words:"true" default:"reservation.paid"`
		SASL    struct {
			Username string `split_words:"true"`
			Password string `split_words:"true"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	External struct {
		Otel struct {
			Endpoint string `split_words:"true"`
		} `envconfig:"OTEL"`
		S3 struct {
			Enable          bool   `split_words:"true"`
			APIEndpoint     string `split_words:"true"`
			AccessKeyID     string `split_words:"true"`
			SecretAccessKey string `split_words:"true"`
			BucketName      string `split_words:"true"`
			PublicDomain    string `split_words:"true"`
			Directory       string `split_words:"true" default:"receipts"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Warn().Err(err).Msg("Configuration initialized without .env file")
		}
	}

	return &conf
}

// PayPalBaseURL resolves the provider host for the configured environment.
func (c *Config) PayPalBaseURL() string {
	if c.PayPal.BaseURL != "" {
		return c.PayPal.BaseURL
	}

	if strings.EqualFold(c.PayPal.Env, "live") {
		return "https://api-m.paypal.com"
	}

	return "https://api-m.sandbox.paypal.com"
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == constant.ServerEnvProduction
}

// Warnings lists settings that leave a feature silently degraded.
func (c *Config) Warnings() []string {
	var warnings []string

	if c.Email.ResendAPIKey != "" && c.Email.AdminAddress == "" {
		warnings = append(warnings, "ADMIN_EMAIL is not set, operator notices for paid reservations will not be sent")
	}

	if c.Email.ResendAPIKey == "" {
		warnings = append(warnings, "RESEND_API_KEY is not set, no confirmation emails will be sent")
	}

	if c.Admin.Key == "" && (c.JWT.Secret == "" || c.Admin.User == "" || c.Admin.Pass == "") {
		warnings = append(warnings, "neither ADMIN_KEY nor JWT_SECRET with ADMIN_USER and ADMIN_PASS is set, admin routes are unreachable")
	}

	return warnings
}
