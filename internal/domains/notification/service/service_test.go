package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"storeflight/config"
	kafkaMocks "storeflight/infras/kafka/mocks"
	otelMocks "storeflight/infras/otel/mocks"
	"storeflight/infras/resend"
	resendMocks "storeflight/infras/resend/mocks"
	s3Mocks "storeflight/infras/s3/mocks"
	notificationMocks "storeflight/internal/domains/notification/mocks"
	"storeflight/internal/domains/notification/model"
	"storeflight/internal/domains/notification/model/dto"
	"storeflight/internal/domains/notification/service"
	rModel "storeflight/internal/domains/reservation/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo     *notificationMocks.MockOutbox
	notifier *resendMocks.MockNotifier
	kafka    *kafkaMocks.MockClient
	s3       *s3Mocks.MockS3
	svc      service.Notification
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Email.AdminAddress = "ops@storeflight.test"
	cfg.Kafka.Topic = "reservation.paid"
	cfg.Outbox.BatchSize = 20
	cfg.Outbox.MaxAttempts = 3
	cfg.External.S3.BucketName = "receipts-bucket"
	cfg.External.S3.Directory = "receipts"

	f := fixture{
		repo:     notificationMocks.NewMockOutbox(ctrl),
		notifier: resendMocks.NewMockNotifier(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
		s3:       s3Mocks.NewMockS3(ctrl),
	}
	f.svc = service.New(f.repo, cfg, otelMocks.NewOtel(), f.notifier, f.kafka, f.s3)

	return f
}

func paidReservation(email *string) rModel.Reservation {
	order, capture := "ORDER-1", "CAP-1"

	return rModel.Reservation{
		ID:              12,
		FullName:        "Amina",
		Phone:           "0600000000",
		Email:           email,
		ServiceType:     "flight",
		Travelers:       1,
		DepositAmount:   decimal.NewFromInt(15),
		Currency:        "EUR",
		PaymentMethod:   "paypal",
		PaypalOrderID:   &order,
		PaypalCaptureID: &capture,
		Status:          rModel.StatusPaid,
	}
}

func TestNotificationService_Prepare(t *testing.T) {
	email := "amina@example.com"

	tests := []struct {
		name      string
		email     *string
		emails    bool
		events    bool
		receipts  bool
		wantKinds []string
	}{
		{
			name:      "every channel with customer email",
			email:     &email,
			emails:    true,
			events:    true,
			receipts:  true,
			wantKinds: []string{model.KindEmail, model.KindEmail, model.KindEvent, model.KindReceipt},
		},
		{
			name:      "no customer email",
			emails:    true,
			wantKinds: []string{model.KindEmail},
		},
		{
			name:      "nothing configured",
			email:     &email,
			wantKinds: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.notifier.EXPECT().Enabled().Return(tt.emails)
			f.kafka.EXPECT().Enabled().Return(tt.events)
			f.s3.EXPECT().Enabled().Return(tt.receipts)

			rows, err := f.svc.Prepare(context.Background(), paidReservation(tt.email))
			require.NoError(t, err)

			var kinds []string
			for _, row := range rows {
				kinds = append(kinds, row.Kind)

				assert.Equal(t, model.StatusPending, row.Status)
				assert.Equal(t, int64(12), row.ReservationID)
			}

			assert.Equal(t, tt.wantKinds, kinds)

			if len(rows) == 4 {
				assert.Equal(t, "ops@storeflight.test", rows[0].Recipient)
				assert.Equal(t, "🧾 Paiement reçu #12 - flight", rows[0].Subject)
				assert.Equal(t, email, rows[1].Recipient)
				assert.Contains(t, rows[1].Payload, "15.00 EUR")

				var event dto.ReservationPaidEvent
				require.NoError(t, json.Unmarshal([]byte(rows[2].Payload), &event))
				assert.Equal(t, model.EventReservationPaid, event.Type)
				assert.Equal(t, int64(12), event.Reservation.ID)
				assert.Equal(t, "reservation.paid", rows[2].Recipient)

				assert.Contains(t, rows[3].Recipient, "reservation-12-")
			}
		})
	}
}

func TestNotificationService_DispatchPending(t *testing.T) {
	f := newFixture(t)

	rows := []model.Outbox{
		{ID: 1, ReservationID: 12, Kind: model.KindEmail, Recipient: "ops@storeflight.test", Subject: "s", Payload: "<p>x</p>"},
		{ID: 2, ReservationID: 12, Kind: model.KindEvent, Recipient: "reservation.paid", Subject: model.EventReservationPaid, Payload: `{"id":12}`},
		{ID: 3, ReservationID: 12, Kind: model.KindReceipt, Recipient: "reservation-12.html", Payload: "<html></html>", Attempts: 2},
		{ID: 4, ReservationID: 12, Kind: "sms"},
	}

	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(rows, nil)

	f.notifier.EXPECT().
		Send(gomock.Any(), resend.Email{To: "ops@storeflight.test", Subject: "s", HTML: "<p>x</p>"}).
		Return("email-1", nil)
	f.kafka.EXPECT().SendMessages(gomock.Any(), "reservation.paid", gomock.Any()).Return(nil)
	f.s3.EXPECT().
		UploadFileBytes(gomock.Any(), "receipts-bucket", "receipts", "reservation-12.html", gomock.Any(), []byte("<html></html>")).
		Return("", errors.New("bucket unavailable"))

	var updates []map[string]any

	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
			updates = append(updates, fields)

			return nil
		}).Times(4)

	res, err := f.svc.DispatchPending(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dto.DispatchResult{Claimed: 4, Sent: 2, Retried: 1, Failed: 1}, res)
	require.Len(t, updates, 4)

	assert.Equal(t, model.StatusSent, updates[0]["status"])
	assert.Equal(t, 1, updates[0]["attempts"])
	assert.Equal(t, model.StatusSent, updates[1]["status"])

	assert.Equal(t, model.StatusFailed, updates[2]["status"])
	assert.Equal(t, 3, updates[2]["attempts"])
	assert.Equal(t, "bucket unavailable", updates[2]["last_error"])

	assert.Equal(t, model.StatusPending, updates[3]["status"])
	assert.Contains(t, updates[3]["last_error"], "unknown outbox kind")
}

func TestNotificationService_DispatchPendingLongError(t *testing.T) {
	// the stored message starts with the provider prefix
	prefix := len("resend error: 422 ")

	tests := []struct {
		name    string
		message string
	}{
		{name: "multi-byte rune across the cut", message: strings.Repeat("a", 999-prefix) + "é" + strings.Repeat("b", 50)},
		{name: "short invalid bytes", message: "provider said \xc3"},
		{name: "ascii overflow", message: strings.Repeat("x", 1500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			rows := []model.Outbox{{ID: 9, ReservationID: 12, Kind: model.KindEmail, Recipient: "ops@storeflight.test"}}
			f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(rows, nil)
			f.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).
				Return("", &resend.APIError{StatusCode: 422, Body: tt.message})

			var fields map[string]any

			f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, update map[string]any, _ any) error {
					fields = update

					return nil
				})

			res, err := f.svc.DispatchPending(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 1, res.Retried)

			lastError, ok := fields["last_error"].(string)
			require.True(t, ok)
			assert.True(t, utf8.ValidString(lastError))
			assert.LessOrEqual(t, len(lastError), 1000)
			assert.Equal(t, 1, fields["attempts"])
		})
	}
}

func TestNotificationService_DispatchPendingClaimError(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	_, err := f.svc.DispatchPending(context.Background())
	assert.Error(t, err)
}

func TestNotificationService_Enqueue(t *testing.T) {
	f := newFixture(t)
	rows := []model.Outbox{{Kind: model.KindEmail}}

	f.repo.EXPECT().InsertBulk(gomock.Any(), rows).Return(nil)
	assert.NoError(t, f.svc.Enqueue(context.Background(), rows))

	f.repo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Nil(), rows).Return(errors.New("tx aborted"))
	assert.Error(t, f.svc.EnqueueTx(context.Background(), nil, rows))
}

func TestBackoff(t *testing.T) {
	tests := []struct {
		attempts int
		want     time.Duration
	}{
		{attempts: 0, want: time.Second},
		{attempts: 1, want: 2 * time.Second},
		{attempts: 5, want: 32 * time.Second},
		{attempts: 9, want: 512 * time.Second},
		{attempts: 10, want: 10 * time.Minute},
		{attempts: 64, want: 10 * time.Minute},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, service.Backoff(tt.attempts))
	}
}
