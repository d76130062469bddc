package resend_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"storeflight/config"
	"storeflight/infras/otel/mocks"
	"storeflight/infras/resend"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(baseURL, apiKey string) *config.Config {
	cfg := &config.Config{}
	cfg.App.HTTPClientTimeoutSeconds = 5
	cfg.Email.ResendBaseURL = baseURL
	cfg.Email.ResendAPIKey = apiKey
	cfg.Email.From = "StoreFlight <onboarding@resend.dev>"

	return cfg
}

func TestSend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_key", r.Header.Get("Authorization"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "StoreFlight <onboarding@resend.dev>", body["from"])
		assert.Equal(t, []any{"jane@example.com"}, body["to"])
		assert.Equal(t, "Hello", body["subject"])
		assert.Equal(t, "<p>hi</p>", body["html"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"email_1"}`)
	}))
	defer server.Close()

	notifier := resend.New(newConfig(server.URL, "re_key"), mocks.NewOtel())
	assert.True(t, notifier.Enabled())

	id, err := notifier.Send(context.Background(), resend.Email{To: "jane@example.com", Subject: "Hello", HTML: "<p>hi</p>"})
	require.NoError(t, err)
	assert.Equal(t, "email_1", id)
}

func TestSend_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"message":"invalid from"}`)
	}))
	defer server.Close()

	notifier := resend.New(newConfig(server.URL, "re_key"), mocks.NewOtel())

	_, err := notifier.Send(context.Background(), resend.Email{To: "jane@example.com"})

	var apiErr *resend.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "invalid from")
}

func TestSend_Disabled(t *testing.T) {
	notifier := resend.New(newConfig("http://127.0.0.1:1", ""), mocks.NewOtel())

	assert.False(t, notifier.Enabled())

	_, err := notifier.Send(context.Background(), resend.Email{To: "jane@example.com"})
	assert.ErrorIs(t, err, resend.ErrDisabled)
}
