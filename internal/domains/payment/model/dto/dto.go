package dto

import (
	"encoding/json"
	"storeflight/infras/paypal"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultAmount   = "15.00"
	DefaultCurrency = "EUR"
)

type CreateOrderRequest struct {
	Amount   decimal.Decimal `json:"amount"   validate:"gt=0"`
	Currency string          `json:"currency" validate:"required,currency"`
}

func (c *CreateOrderRequest) Normalize() {
	if c.Amount.IsZero() {
		c.Amount = decimal.RequireFromString(DefaultAmount)
	}

	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
}

// Value is the amount formatted the way the provider expects it.
func (c *CreateOrderRequest) Value() string {
	return c.Amount.StringFixed(2)
}

type CaptureOrderRequest struct {
	OrderID string `json:"orderID" validate:"required,max=100"`
}

func (c *CaptureOrderRequest) Normalize() {
	c.OrderID = strings.TrimSpace(c.OrderID)
}

type CreateOrderResponse struct {
	OrderID    string          `json:"order_id"`
	Status     string          `json:"status"`
	ApproveURL string          `json:"approve_url,omitempty"`
	Order      json.RawMessage `json:"order"`
}

func (r *CreateOrderResponse) FromOrder(order *paypal.Order) {
	r.OrderID = order.ID
	r.Status = order.Status
	r.ApproveURL = order.ApproveURL
	r.Order = order.Raw
}

type CaptureOrderResponse struct {
	OrderID   string          `json:"order_id"`
	Status    string          `json:"status"`
	CaptureID *string         `json:"captureId"`
	Capture   json.RawMessage `json:"capture"`
}

func (r *CaptureOrderResponse) FromCapture(capture *paypal.Capture) {
	r.OrderID = capture.OrderID
	r.Status = capture.Status
	r.CaptureID = capture.CaptureID
	r.Capture = capture.Raw
}
