package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	otelMocks "storeflight/infras/otel/mocks"
	"storeflight/internal/domains/auth/mocks"
	"storeflight/internal/domains/auth/model/dto"
	"storeflight/internal/handlers/auth"
	"storeflight/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		setupMock  func(m *mocks.MockAuth)
		wantStatus int
		wantError  string
	}{
		{
			name: "token issued",
			setupMock: func(m *mocks.MockAuth) {
				m.EXPECT().Login(gomock.Any(), dto.LoginRequest{User: "admin", Pass: "pw"}).
					Return(dto.LoginResponse{Token: "t0k", TokenType: "Bearer", ExpiresIn: 604800}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "bad credentials",
			setupMock: func(m *mocks.MockAuth) {
				m.EXPECT().Login(gomock.Any(), gomock.Any()).
					Return(dto.LoginResponse{}, failure.Unauthorized(failure.MessageInvalidCredentials))
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  failure.MessageInvalidCredentials,
		},
		{
			name: "misconfigured server",
			setupMock: func(m *mocks.MockAuth) {
				m.EXPECT().Login(gomock.Any(), gomock.Any()).
					Return(dto.LoginResponse{}, failure.ErrServerMisconfigured)
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  failure.MessageServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockAuth(ctrl)
			tt.setupMock(svc)

			handler := auth.New(svc, otelMocks.NewOtel())

			router := chi.NewRouter()
			router.Route("/api", handler.Router)

			req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"user":"admin","pass":"pw"}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

			if tt.wantError != "" {
				assert.Equal(t, false, body["ok"])
				assert.Equal(t, tt.wantError, body["error"])

				return
			}

			assert.Equal(t, true, body["ok"])
			assert.Equal(t, "t0k", body["token"])
			assert.Equal(t, "Bearer", body["token_type"])
		})
	}
}
