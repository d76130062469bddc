package paypal

//go:generate go run go.uber.org/mock/mockgen -source=./paypal.go -destination=./mocks/paypal_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"storeflight/config"
	"storeflight/infras/otel"
	"storeflight/shared/constant"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName = constant.OtelExternalScopeName + ".paypal"

	pathToken   = "/v1/oauth2/token"
	pathOrders  = "/v2/checkout/orders"
	pathCapture = "/v2/checkout/orders/{orderID}/capture"

	intentCapture   = "CAPTURE"
	linkRelApprove  = "approve"
	linkRelPayerAct = "payer-action"

	// tokens are refreshed this long before the provider expiry
	tokenExpiryLeeway = time.Minute
)

const (
	OpAuthenticate = "authenticate"
	OpCreateOrder  = "create_order"
	OpCaptureOrder = "capture_order"
)

var (
	// ErrMissingCredentials is returned when the client id or secret is unset.
	ErrMissingCredentials = errors.New("paypal client id or secret is not configured")
)

// APIError is a non-success response from the provider. Body carries the
// provider payload so callers can surface it for debugging.
type APIError struct {
	Op         string
	StatusCode int
	Body       json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("paypal %s failed with status %d: %s", e.Op, e.StatusCode, string(e.Body))
}

// Order is the result of creating a checkout order.
type Order struct {
	ID         string          `json:"id"`
	Status     string          `json:"status"`
	ApproveURL string          `json:"approve_url,omitempty"`
	Raw        json.RawMessage `json:"raw"`
}

// Capture is the result of capturing a checkout order. CaptureID is nil when
// the provider response does not contain one.
type Capture struct {
	OrderID   string          `json:"order_id"`
	Status    string          `json:"status"`
	CaptureID *string         `json:"capture_id"`
	Raw       json.RawMessage `json:"raw"`
}

type Gateway interface {
	Authenticate(ctx context.Context) (string, error)
	CreateOrder(ctx context.Context, amount, currency string) (*Order, error)
	CaptureOrder(ctx context.Context, orderID string) (*Capture, error)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type purchaseUnit struct {
	Amount amount `json:"amount"`
}

type orderRequest struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []purchaseUnit `json:"purchase_units"`
}

type link struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}

type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []link `json:"links"`
}

type captureResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				ID string `json:"id"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

type gateway struct {
	client       *resty.Client
	clientID     string
	clientSecret string
	otel         otel.Otel

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func New(cfg *config.Config, ot otel.Otel) Gateway {
	baseURL := cfg.PayPalBaseURL()

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(time.Duration(cfg.App.HTTPClientTimeoutSeconds) * time.Second).
		SetHeader(constant.RequestHeaderUserAgent, cfg.App.Name)

	log.Info().Str("mode", cfg.PayPal.Env).Str("base_url", baseURL).Msg("PayPal gateway initialized")

	return &gateway{
		client:       client,
		clientID:     cfg.PayPal.ClientID,
		clientSecret: cfg.PayPal.ClientSecret,
		otel:         ot,
	}
}

// Authenticate implements Gateway. The bearer token is reused until shortly
// before the provider expiry.
func (g *gateway) Authenticate(ctx context.Context) (token string, err error) {
	ctx, scope := g.otel.NewScope(ctx, otelScopeName, otelScopeName+".Authenticate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if g.clientID == "" || g.clientSecret == "" {
		return "", ErrMissingCredentials
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.token != "" && time.Now().Before(g.tokenExpiry) {
		return g.token, nil
	}

	var result tokenResponse

	resp, err := g.client.R().
		SetContext(ctx).
		SetBasicAuth(g.clientID, g.clientSecret).
		SetFormData(map[string]string{"grant_type": "client_credentials"}).
		SetResult(&result).
		Post(pathToken)
	if err != nil {
		log.Error().Err(err).Msg("failed to request paypal access token")

		return "", fmt.Errorf("failed to request paypal access token: %w", err)
	}

	if resp.IsError() {
		return "", newAPIError(OpAuthenticate, resp)
	}

	if result.AccessToken == "" {
		return "", &APIError{Op: OpAuthenticate, StatusCode: resp.StatusCode(), Body: rawBody(resp.Body())}
	}

	g.token = result.AccessToken
	g.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn)*time.Second - tokenExpiryLeeway)

	return g.token, nil
}

// CreateOrder implements Gateway.
func (g *gateway) CreateOrder(ctx context.Context, value, currency string) (order *Order, err error) {
	ctx, scope := g.otel.NewScope(ctx, otelScopeName, otelScopeName+".CreateOrder")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"amount":   value,
		"currency": currency,
	})

	token, err := g.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	body := orderRequest{
		Intent: intentCapture,
		PurchaseUnits: []purchaseUnit{
			{Amount: amount{CurrencyCode: currency, Value: value}},
		},
	}

	var result orderResponse

	resp, err := g.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader(constant.RequestHeaderContentType, constant.ContentTypeJSON).
		SetBody(body).
		SetResult(&result).
		Post(pathOrders)
	if err != nil {
		log.Error().Err(err).Msg("failed to create paypal order")

		return nil, fmt.Errorf("failed to create paypal order: %w", err)
	}

	if resp.IsError() {
		g.dropTokenOn(resp)

		return nil, newAPIError(OpCreateOrder, resp)
	}

	return &Order{
		ID:         result.ID,
		Status:     result.Status,
		ApproveURL: approveURL(result.Links),
		Raw:        rawBody(resp.Body()),
	}, nil
}

// CaptureOrder implements Gateway.
func (g *gateway) CaptureOrder(ctx context.Context, orderID string) (capture *Capture, err error) {
	ctx, scope := g.otel.NewScope(ctx, otelScopeName, otelScopeName+".CaptureOrder")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("order_id", orderID)

	token, err := g.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader(constant.RequestHeaderContentType, constant.ContentTypeJSON).
		SetPathParam("orderID", orderID).
		Post(pathCapture)
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("failed to capture paypal order")

		return nil, fmt.Errorf("failed to capture paypal order: %w", err)
	}

	if resp.IsError() {
		g.dropTokenOn(resp)

		return nil, newAPIError(OpCaptureOrder, resp)
	}

	raw := resp.Body()
	capture = &Capture{
		OrderID:   orderID,
		CaptureID: ParseCaptureID(raw),
		Raw:       rawBody(raw),
	}

	var parsed captureResponse
	if json.Unmarshal(raw, &parsed) == nil {
		capture.Status = parsed.Status
		if parsed.ID != "" {
			capture.OrderID = parsed.ID
		}
	}

	if capture.CaptureID == nil {
		log.Warn().Str("order_id", orderID).Msg("paypal capture response has no capture id")
	}

	return capture, nil
}

// dropTokenOn forgets the cached token when the provider rejects it.
func (g *gateway) dropTokenOn(resp *resty.Response) {
	if resp.StatusCode() != http.StatusUnauthorized {
		return
	}

	g.mu.Lock()
	g.token = ""
	g.mu.Unlock()
}

// ParseCaptureID extracts purchase_units[0].payments.captures[0].id from a
// capture response. It returns nil when the body is not JSON or any step of
// that path is missing or empty.
func ParseCaptureID(body []byte) *string {
	var parsed captureResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil
	}

	if len(parsed.PurchaseUnits) == 0 {
		return nil
	}

	captures := parsed.PurchaseUnits[0].Payments.Captures
	if len(captures) == 0 || captures[0].ID == "" {
		return nil
	}

	id := captures[0].ID

	return &id
}

func approveURL(links []link) string {
	for _, l := range links {
		if l.Rel == linkRelApprove || l.Rel == linkRelPayerAct {
			return l.Href
		}
	}

	return ""
}

func newAPIError(op string, resp *resty.Response) *APIError {
	log.Error().Str("op", op).Int("status", resp.StatusCode()).Msg("paypal request rejected")

	return &APIError{
		Op:         op,
		StatusCode: resp.StatusCode(),
		Body:       rawBody(resp.Body()),
	}
}

// rawBody keeps JSON payloads as-is and quotes anything else so it can be
// embedded in a JSON response.
func rawBody(body []byte) json.RawMessage {
	if len(body) == 0 {
		return json.RawMessage("null")
	}

	if json.Valid(body) {
		return json.RawMessage(body)
	}

	quoted, _ := json.Marshal(string(body))

	return quoted
}
