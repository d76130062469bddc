package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"storeflight/infras/otel"
	"storeflight/infras/paypal"
	"storeflight/internal/domains/payment/model/dto"
	"storeflight/shared/constant"
	"storeflight/shared/failure"
	"storeflight/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	ErrCreateFailed  = "paypal_create_failed"
	ErrCaptureFailed = "paypal_capture_failed"
)

type Payment interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (dto.CreateOrderResponse, error)
	CaptureOrder(ctx context.Context, req dto.CaptureOrderRequest) (dto.CaptureOrderResponse, error)
}

type serviceImpl struct {
	gateway paypal.Gateway
	otel    otel.Otel
}

func New(gateway paypal.Gateway, otel otel.Otel) Payment {
	return &serviceImpl{
		gateway: gateway,
		otel:    otel,
	}
}

func (s *serviceImpl) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (res dto.CreateOrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateOrder")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	order, err := s.gateway.CreateOrder(ctx, req.Value(), req.Currency)
	if err != nil {
		return res, translate(err, paypal.OpCreateOrder, ErrCreateFailed)
	}

	log.Info().Str("order_id", order.ID).Str("status", order.Status).Msg("paypal order created")

	res.FromOrder(order)

	return res, nil
}

func (s *serviceImpl) CaptureOrder(ctx context.Context, req dto.CaptureOrderRequest) (res dto.CaptureOrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CaptureOrder")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	capture, err := s.gateway.CaptureOrder(ctx, req.OrderID)
	if err != nil {
		return res, translate(err, paypal.OpCaptureOrder, ErrCaptureFailed)
	}

	if capture.CaptureID == nil {
		log.Warn().Str("order_id", req.OrderID).Str("status", capture.Status).Msg("paypal capture response carries no capture id")
	}

	res.FromCapture(capture)

	return res, nil
}

// translate maps gateway errors to the HTTP boundary. Only a provider
// rejection of the order call itself is a client error; credential
// problems and transport failures are server errors.
func translate(err error, op, message string) error {
	var apiErr *paypal.APIError
	if errors.As(err, &apiErr) && apiErr.Op == op {
		log.Warn().Int("status", apiErr.StatusCode).Str("op", op).RawJSON("details", apiErr.Body).Msg("paypal rejected the request")

		return failure.Gateway(message, apiErr.Body) // nolint:wrapcheck
	}

	log.Error().Err(err).Str("op", op).Msg("paypal call failed")

	return fmt.Errorf("paypal %s failed: %w", op, err)
}
