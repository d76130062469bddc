package paypal_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"storeflight/config"
	"storeflight/infras/otel/mocks"
	"storeflight/infras/paypal"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(baseURL string) *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "StoreFlight"
	cfg.App.HTTPClientTimeoutSeconds = 5
	cfg.PayPal.ClientID = "client"
	cfg.PayPal.ClientSecret = "secret"
	cfg.PayPal.Env = "sandbox"
	cfg.PayPal.BaseURL = baseURL

	return cfg
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestParseCaptureID(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected *string
	}{
		{
			name:     "expected shape",
			body:     `{"id":"ORDER1","purchase_units":[{"payments":{"captures":[{"id":"CAP1"},{"id":"CAP2"}]}}]}`,
			expected: strPtr("CAP1"),
		},
		{name: "no purchase units", body: `{"id":"ORDER1"}`},
		{name: "empty purchase units", body: `{"purchase_units":[]}`},
		{name: "no payments", body: `{"purchase_units":[{}]}`},
		{name: "empty captures", body: `{"purchase_units":[{"payments":{"captures":[]}}]}`},
		{name: "empty capture id", body: `{"purchase_units":[{"payments":{"captures":[{"id":""}]}}]}`},
		{name: "wrong types", body: `{"purchase_units":{"payments":"x"}}`},
		{name: "not json", body: `<html>bad gateway</html>`},
		{name: "empty body", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, paypal.ParseCaptureID([]byte(tt.body)))
		})
	}
}

func TestAuthenticate_MissingCredentials(t *testing.T) {
	cfg := newConfig("http://127.0.0.1:1")
	cfg.PayPal.ClientSecret = ""

	gw := paypal.New(cfg, mocks.NewOtel())

	_, err := gw.Authenticate(context.Background())
	assert.ErrorIs(t, err, paypal.ErrMissingCredentials)

	_, err = gw.CreateOrder(context.Background(), "15.00", "EUR")
	assert.ErrorIs(t, err, paypal.ErrMissingCredentials)
}

func TestAuthenticate_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"error":"invalid_client"}`)
	}))
	defer server.Close()

	gw := paypal.New(newConfig(server.URL), mocks.NewOtel())

	_, err := gw.Authenticate(context.Background())

	var apiErr *paypal.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, paypal.OpAuthenticate, apiErr.Op)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.JSONEq(t, `{"error":"invalid_client"}`, string(apiErr.Body))
}

func TestCreateOrder(t *testing.T) {
	var tokenCalls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/oauth2/token":
			tokenCalls.Add(1)

			user, pass, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "client", user)
			assert.Equal(t, "secret", pass)
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

			writeJSON(w, http.StatusOK, `{"access_token":"tok","expires_in":32400}`)
		case "/v2/checkout/orders":
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "CAPTURE", body["intent"])

			units := body["purchase_units"].([]any)
			unit := units[0].(map[string]any)["amount"].(map[string]any)
			assert.Equal(t, "EUR", unit["currency_code"])
			assert.Equal(t, "15.00", unit["value"])

			writeJSON(w, http.StatusCreated, `{"id":"ORDER1","status":"CREATED","links":[{"href":"https://paypal.test/approve","rel":"approve"}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	gw := paypal.New(newConfig(server.URL), mocks.NewOtel())

	order, err := gw.CreateOrder(context.Background(), "15.00", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "ORDER1", order.ID)
	assert.Equal(t, "CREATED", order.Status)
	assert.Equal(t, "https://paypal.test/approve", order.ApproveURL)
	assert.Contains(t, string(order.Raw), `"ORDER1"`)

	_, err = gw.CreateOrder(context.Background(), "15.00", "EUR")
	require.NoError(t, err)
	assert.Equal(t, int32(1), tokenCalls.Load())
}

func TestCreateOrder_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/oauth2/token" {
			writeJSON(w, http.StatusOK, `{"access_token":"tok","expires_in":32400}`)

			return
		}

		writeJSON(w, http.StatusUnprocessableEntity, `{"name":"UNPROCESSABLE_ENTITY","debug_id":"abc"}`)
	}))
	defer server.Close()

	gw := paypal.New(newConfig(server.URL), mocks.NewOtel())

	_, err := gw.CreateOrder(context.Background(), "abc", "EUR")

	var apiErr *paypal.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, paypal.OpCreateOrder, apiErr.Op)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.JSONEq(t, `{"name":"UNPROCESSABLE_ENTITY","debug_id":"abc"}`, string(apiErr.Body))
}

func TestCaptureOrder(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		captureID *string
	}{
		{
			name:      "capture id present",
			response:  `{"id":"ORDER1","status":"COMPLETED","purchase_units":[{"payments":{"captures":[{"id":"CAP1"}]}}]}`,
			captureID: strPtr("CAP1"),
		},
		{
			name:      "capture id absent",
			response:  `{"id":"ORDER1","status":"COMPLETED"}`,
			captureID: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/v1/oauth2/token":
					writeJSON(w, http.StatusOK, `{"access_token":"tok","expires_in":32400}`)
				case "/v2/checkout/orders/ORDER1/capture":
					assert.Equal(t, http.MethodPost, r.Method)
					writeJSON(w, http.StatusCreated, tt.response)
				default:
					http.NotFound(w, r)
				}
			}))
			defer server.Close()

			gw := paypal.New(newConfig(server.URL), mocks.NewOtel())

			capture, err := gw.CaptureOrder(context.Background(), "ORDER1")
			require.NoError(t, err)
			assert.Equal(t, "ORDER1", capture.OrderID)
			assert.Equal(t, "COMPLETED", capture.Status)
			assert.Equal(t, tt.captureID, capture.CaptureID)
		})
	}
}

func TestCaptureOrder_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/oauth2/token" {
			writeJSON(w, http.StatusOK, `{"access_token":"tok","expires_in":32400}`)

			return
		}

		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "upstream down")
	}))
	defer server.Close()

	gw := paypal.New(newConfig(server.URL), mocks.NewOtel())

	_, err := gw.CaptureOrder(context.Background(), "ORDER1")

	var apiErr *paypal.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, paypal.OpCaptureOrder, apiErr.Op)
	assert.Equal(t, `"upstream down"`, string(apiErr.Body))
}

func TestBaseURL(t *testing.T) {
	cfg := &config.Config{}

	cfg.PayPal.Env = "sandbox"
	assert.Equal(t, "https://api-m.sandbox.paypal.com", cfg.PayPalBaseURL())

	cfg.PayPal.Env = "live"
	assert.Equal(t, "https://api-m.paypal.com", cfg.PayPalBaseURL())

	cfg.PayPal.BaseURL = "http://localhost:9999"
	assert.Equal(t, "http://localhost:9999", cfg.PayPalBaseURL())
}

func strPtr(s string) *string {
	return &s
}
