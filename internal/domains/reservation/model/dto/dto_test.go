package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"storeflight/internal/domains/reservation/model"
	"storeflight/internal/domains/reservation/model/dto"
	"storeflight/shared/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReservationRequest_Normalize(t *testing.T) {
	req := dto.CreateReservationRequest{
		FullName:    "  Amina Diallo ",
		Phone:       " +221 77 000 00 00",
		Email:       " amina@example.com ",
		ServiceType: " flight ",
		Currency:    " eur",
	}

	req.Normalize()

	assert.Equal(t, "Amina Diallo", req.FullName)
	assert.Equal(t, "+221 77 000 00 00", req.Phone)
	assert.Equal(t, "amina@example.com", req.Email)
	assert.Equal(t, "flight", req.ServiceType)
	assert.Equal(t, "EUR", req.Currency)
	assert.Equal(t, 1, req.Travelers)
	assert.True(t, decimal.NewFromInt(15).Equal(req.DepositAmount))
	assert.Equal(t, "paypal", req.PaymentMethod)
}

func TestCreateReservationRequest_Validation(t *testing.T) {
	valid := func() dto.CreateReservationRequest {
		return dto.CreateReservationRequest{
			FullName:    "Amina",
			Phone:       "0600000000",
			ServiceType: "hotel",
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *dto.CreateReservationRequest)
		wantErr string
	}{
		{name: "minimal request", mutate: func(_ *dto.CreateReservationRequest) {}},
		{name: "blank full name", mutate: func(r *dto.CreateReservationRequest) { r.FullName = "   " }, wantErr: "full_name"},
		{name: "missing phone", mutate: func(r *dto.CreateReservationRequest) { r.Phone = "" }, wantErr: "phone"},
		{name: "missing service type", mutate: func(r *dto.CreateReservationRequest) { r.ServiceType = "" }, wantErr: "service_type"},
		{name: "invalid email", mutate: func(r *dto.CreateReservationRequest) { r.Email = "not-an-email" }, wantErr: "email"},
		{name: "valid email", mutate: func(r *dto.CreateReservationRequest) { r.Email = "a@b.co" }},
		{name: "invalid check in", mutate: func(r *dto.CreateReservationRequest) { r.CheckIn = "12/05/2026" }, wantErr: "check_in"},
		{name: "negative travelers", mutate: func(r *dto.CreateReservationRequest) { r.Travelers = -2 }, wantErr: "travelers"},
		{name: "negative deposit", mutate: func(r *dto.CreateReservationRequest) { r.DepositAmount = decimal.NewFromInt(-1) }, wantErr: "deposit_amount"},
		{name: "invalid currency", mutate: func(r *dto.CreateReservationRequest) { r.Currency = "EURO" }, wantErr: "currency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateReservationRequest_ToModel(t *testing.T) {
	req := dto.CreateReservationRequest{
		FullName:        "Amina",
		Phone:           "0600000000",
		ServiceType:     "hotel",
		CheckIn:         "2026-07-01",
		Travelers:       2,
		DepositAmount:   decimal.RequireFromString("20.5"),
		Currency:        "EUR",
		PaymentMethod:   "paypal",
		PaypalOrderID:   "ORDER-1",
		PaypalCaptureID: "CAP-1",
	}

	pending := req.ToModel(model.StatusPending)
	assert.Nil(t, pending.Email)
	assert.Nil(t, pending.CheckOut)
	require.NotNil(t, pending.CheckIn)
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), *pending.CheckIn)
	assert.Nil(t, pending.PaypalOrderID)
	assert.Equal(t, model.StatusPending, pending.Status)

	paid := req.ToModel(model.StatusPaid)
	require.NotNil(t, paid.PaypalCaptureID)
	assert.Equal(t, "CAP-1", *paid.PaypalCaptureID)
}

func TestReservationResponse_JSON(t *testing.T) {
	checkIn := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	var res dto.ReservationResponse
	res.FromModel(model.Reservation{
		ID:            7,
		FullName:      "Amina",
		CheckIn:       &checkIn,
		Travelers:     1,
		DepositAmount: decimal.NewFromInt(15),
		Currency:      "EUR",
		Status:        model.StatusPending,
	})

	body, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Equal(t, "2026-07-01", decoded["check_in"])
	assert.InDelta(t, 15.0, decoded["deposit_amount"], 0.0001)
	assert.Nil(t, decoded["email"])
	assert.Equal(t, "pending", decoded["status"])
}

func TestFinalizeReservationRequest_Validation(t *testing.T) {
	req := dto.FinalizeReservationRequest{ReservationID: 3, PaypalOrderID: " ORDER ", PaypalCaptureID: "CAP"}
	require.NoError(t, validator.ValidateStruct(&req))
	assert.Equal(t, "ORDER", req.PaypalOrderID)

	missing := dto.FinalizeReservationRequest{ReservationID: 3, PaypalOrderID: "ORDER", PaypalCaptureID: "  "}
	err := validator.ValidateStruct(&missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "paypal_capture_id")

	fields := req.ToPaidFields()
	assert.Equal(t, model.StatusPaid, fields.Status)
}
