package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"
)

const (
	FieldID              = "id"
	FieldFullName        = "full_name"
	FieldPhone           = "phone"
	FieldEmail           = "email"
	FieldServiceType     = "service_type"
	FieldStatus          = "status"
	FieldPaypalOrderID   = "paypal_order_id"
	FieldPaypalCaptureID = "paypal_capture_id"
	FieldCreatedAt       = "created_at"
)

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

const (
	DefaultTravelers     = 1
	DefaultCurrency      = "EUR"
	DefaultPaymentMethod = "paypal"
)

// DefaultDepositAmount is applied when a request omits the deposit or sends zero.
var DefaultDepositAmount = decimal.NewFromInt(15)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type Reservation struct {
	ID              int64           `db:"id"                generated:"true"`
	FullName        string          `db:"full_name"`
	Phone           string          `db:"phone"`
	Email           *string         `db:"email"`
	ServiceType     string          `db:"service_type"`
	FromCity        *string         `db:"from_city"`
	ToCity          *string         `db:"to_city"`
	CheckIn         *time.Time      `db:"check_in"`
	CheckOut        *time.Time      `db:"check_out"`
	Travelers       int             `db:"travelers"`
	Notes           *string         `db:"notes"`
	DepositAmount   decimal.Decimal `db:"deposit_amount"`
	Currency        string          `db:"currency"`
	PaymentMethod   string          `db:"payment_method"`
	PaypalOrderID   *string         `db:"paypal_order_id"`
	PaypalCaptureID *string         `db:"paypal_capture_id"`
	Status          string          `db:"status"`
	CreatedAt       time.Time       `db:"created_at"        generated:"true"`
}

// IsPaid reports whether the reservation reached its terminal state.
func (r Reservation) IsPaid() bool {
	return r.Status == StatusPaid
}

// ContactEmail returns the customer address, or an empty string when none is on file.
func (r Reservation) ContactEmail() string {
	if r.Email == nil {
		return ""
	}

	return *r.Email
}
