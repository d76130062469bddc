package dto

import (
	"storeflight/internal/domains/reservation/model"
	"storeflight/shared"
	"storeflight/shared/constant"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type CreateReservationRequest struct {
	FullName        string          `json:"full_name"                   validate:"required,max=200"`
	Phone           string          `json:"phone"                       validate:"required,max=50"`
	Email           string          `json:"email"                       validate:"omitempty,basicemail,max=200"`
	ServiceType     string          `json:"service_type"                validate:"required,max=100"`
	FromCity        string          `json:"from_city"                   validate:"omitempty,max=100"`
	ToCity          string          `json:"to_city"                     validate:"omitempty,max=100"`
	CheckIn         string          `json:"check_in"                    validate:"omitempty,date"`
	CheckOut        string          `json:"check_out"                   validate:"omitempty,date"`
	Travelers       int             `json:"travelers"                   validate:"gte=1"`
	Notes           string          `json:"notes"                       validate:"omitempty,max=2000"`
	DepositAmount   decimal.Decimal `json:"deposit_amount"              validate:"gte=0"`
	Currency        string          `json:"currency"                    validate:"required,currency"`
	PaymentMethod   string          `json:"payment_method"              validate:"required,max=50"`
	PaypalOrderID   string          `json:"paypal_order_id,omitempty"   validate:"omitempty,max=100"`
	PaypalCaptureID string          `json:"paypal_capture_id,omitempty" validate:"omitempty,max=100"`
}

// Normalize trims every text field and fills the reservation defaults.
func (c *CreateReservationRequest) Normalize() {
	c.FullName = strings.TrimSpace(c.FullName)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	c.ServiceType = strings.TrimSpace(c.ServiceType)
	c.FromCity = strings.TrimSpace(c.FromCity)
	c.ToCity = strings.TrimSpace(c.ToCity)
	c.CheckIn = strings.TrimSpace(c.CheckIn)
	c.CheckOut = strings.TrimSpace(c.CheckOut)
	c.Notes = strings.TrimSpace(c.Notes)
	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
	c.PaymentMethod = strings.TrimSpace(c.PaymentMethod)
	c.PaypalOrderID = strings.TrimSpace(c.PaypalOrderID)
	c.PaypalCaptureID = strings.TrimSpace(c.PaypalCaptureID)

	if c.Travelers == 0 {
		c.Travelers = model.DefaultTravelers
	}

	if c.DepositAmount.IsZero() {
		c.DepositAmount = model.DefaultDepositAmount
	}

	if c.Currency == "" {
		c.Currency = model.DefaultCurrency
	}

	if c.PaymentMethod == "" {
		c.PaymentMethod = model.DefaultPaymentMethod
	}
}

// ToModel builds the row to insert. Dates must already be validated.
func (c *CreateReservationRequest) ToModel(status string) model.Reservation {
	res := model.Reservation{
		FullName:      c.FullName,
		Phone:         c.Phone,
		Email:         optional(c.Email),
		ServiceType:   c.ServiceType,
		FromCity:      optional(c.FromCity),
		ToCity:        optional(c.ToCity),
		CheckIn:       parseDate(c.CheckIn),
		CheckOut:      parseDate(c.CheckOut),
		Travelers:     c.Travelers,
		Notes:         optional(c.Notes),
		DepositAmount: c.DepositAmount.Round(2),
		Currency:      c.Currency,
		PaymentMethod: c.PaymentMethod,
		Status:        status,
	}

	if status == model.StatusPaid {
		res.PaypalOrderID = optional(c.PaypalOrderID)
		res.PaypalCaptureID = optional(c.PaypalCaptureID)
	}

	return res
}

type FinalizeReservationRequest struct {
	ReservationID   int64  `json:"reservation_id"    validate:"required,gt=0"`
	PaypalOrderID   string `json:"paypal_order_id"   validate:"required,max=100"`
	PaypalCaptureID string `json:"paypal_capture_id" validate:"required,max=100"`
}

func (f *FinalizeReservationRequest) Normalize() {
	f.PaypalOrderID = strings.TrimSpace(f.PaypalOrderID)
	f.PaypalCaptureID = strings.TrimSpace(f.PaypalCaptureID)
}

// PaidFields is the column set written when a reservation is finalized.
type PaidFields struct {
	PaypalOrderID   string `db:"paypal_order_id"`
	PaypalCaptureID string `db:"paypal_capture_id"`
	Status          string `db:"status"`
}

func (f *FinalizeReservationRequest) ToPaidFields() PaidFields {
	return PaidFields{
		PaypalOrderID:   f.PaypalOrderID,
		PaypalCaptureID: f.PaypalCaptureID,
		Status:          model.StatusPaid,
	}
}

type ReservationResponse struct {
	ID              int64           `json:"id"`
	FullName        string          `json:"full_name"`
	Phone           string          `json:"phone"`
	Email           *string         `json:"email"`
	ServiceType     string          `json:"service_type"`
	FromCity        *string         `json:"from_city"`
	ToCity          *string         `json:"to_city"`
	CheckIn         *string         `json:"check_in"`
	CheckOut        *string         `json:"check_out"`
	Travelers       int             `json:"travelers"`
	Notes           *string         `json:"notes"`
	DepositAmount   decimal.Decimal `json:"deposit_amount"`
	Currency        string          `json:"currency"`
	PaymentMethod   string          `json:"payment_method"`
	PaypalOrderID   *string         `json:"paypal_order_id"`
	PaypalCaptureID *string         `json:"paypal_capture_id"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"created_at"`
}

func (r *ReservationResponse) FromModel(m model.Reservation) {
	r.ID = m.ID
	r.FullName = m.FullName
	r.Phone = m.Phone
	r.Email = m.Email
	r.ServiceType = m.ServiceType
	r.FromCity = m.FromCity
	r.ToCity = m.ToCity
	r.CheckIn = formatDate(m.CheckIn)
	r.CheckOut = formatDate(m.CheckOut)
	r.Travelers = m.Travelers
	r.Notes = m.Notes
	r.DepositAmount = m.DepositAmount.Round(2)
	r.Currency = m.Currency
	r.PaymentMethod = m.PaymentMethod
	r.PaypalOrderID = m.PaypalOrderID
	r.PaypalCaptureID = m.PaypalCaptureID
	r.Status = m.Status

	if !m.CreatedAt.IsZero() {
		r.CreatedAt = m.CreatedAt.Format(constant.DateFormat)
	}
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}

	t, err := time.Parse(constant.DateOnlyFormat, value)
	if err != nil {
		return nil
	}

	return &t
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}

	s := t.Format(constant.DateOnlyFormat)

	return &s
}
