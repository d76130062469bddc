package resend

//go:generate go run go.uber.org/mock/mockgen -source=./resend.go -destination=./mocks/resend_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"storeflight/config"
	"storeflight/infras/otel"
	"storeflight/shared/constant"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName = constant.OtelExternalScopeName + ".resend"
	pathEmails    = "/emails"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("email delivery is not configured")

// APIError is a non-success response from the email provider.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("resend error: %d %s", e.StatusCode, e.Body)
}

type Email struct {
	To      string
	Subject string
	HTML    string
}

type Notifier interface {
	Send(ctx context.Context, email Email) (id string, err error)
	Enabled() bool
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID string `json:"id"`
}

type notifier struct {
	client *resty.Client
	apiKey string
	from   string
	otel   otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) Notifier {
	client := resty.New().
		SetBaseURL(cfg.Email.ResendBaseURL).
		SetTimeout(time.Duration(cfg.App.HTTPClientTimeoutSeconds) * time.Second)

	if cfg.Email.ResendAPIKey == "" {
		log.Warn().Msg("RESEND_API_KEY is not set, notification emails are disabled")
	}

	return &notifier{
		client: client,
		apiKey: cfg.Email.ResendAPIKey,
		from:   cfg.Email.From,
		otel:   ot,
	}
}

// Enabled implements Notifier.
func (n *notifier) Enabled() bool {
	return n.apiKey != ""
}

// Send implements Notifier.
func (n *notifier) Send(ctx context.Context, email Email) (id string, err error) {
	ctx, scope := n.otel.NewScope(ctx, otelScopeName, otelScopeName+".Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !n.Enabled() {
		return "", ErrDisabled
	}

	scope.SetAttribute("subject", email.Subject)

	var result sendResponse

	resp, err := n.client.R().
		SetContext(ctx).
		SetAuthToken(n.apiKey).
		SetHeader(constant.RequestHeaderContentType, constant.ContentTypeJSON).
		SetBody(sendRequest{
			From:    n.from,
			To:      []string{email.To},
			Subject: email.Subject,
			HTML:    email.HTML,
		}).
		SetResult(&result).
		Post(pathEmails)
	if err != nil {
		log.Error().Err(err).Str("subject", email.Subject).Msg("failed to call resend")

		return "", fmt.Errorf("failed to send email: %w", err)
	}

	if resp.IsError() {
		return "", &APIError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}

	return result.ID, nil
}
