package payment

import (
	"net/http"
	"storeflight/infras/otel"
	"storeflight/internal/domains/payment/model/dto"
	"storeflight/internal/domains/payment/service"
	"storeflight/shared/constant"
	"storeflight/shared/validator"
	"storeflight/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/paypal", func(routerGroup chi.Router) {
		routerGroup.Post("/create-order", handler.CreateOrder)
		routerGroup.Post("/capture-order", handler.CaptureOrder)
	})
}

// CreateOrder opens a PayPal checkout order for the deposit.
// @Summary Create a PayPal order
// @Description Amount defaults to 15.00 and currency to EUR.
// @Tags PayPal
// @Accept json
// @Produce json
// @Param request body dto.CreateOrderRequest false "Create Order Request"
// @Success 200 {object} dto.CreateOrderResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/paypal/create-order [post]
func (handler *Handler) CreateOrder(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOrder")
	defer scope.End()

	req := dto.CreateOrderRequest{}

	// an empty body falls back to the default deposit
	if err := validator.DecodeOptional(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request body")

		response.WithError(writer, err)

		return
	}

	order, err := handler.service.CreateOrder(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create paypal order")

		response.WithError(writer, err)

		return
	}

	response.WithOK(writer, http.StatusOK, response.Fields{
		"order_id":    order.OrderID,
		"status":      order.Status,
		"approve_url": order.ApproveURL,
		"order":       order.Order,
	})
}

// CaptureOrder captures an approved PayPal order.
// @Summary Capture a PayPal order
// @Tags PayPal
// @Accept json
// @Produce json
// @Param request body dto.CaptureOrderRequest true "Capture Order Request"
// @Success 200 {object} dto.CaptureOrderResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/paypal/capture-order [post]
func (handler *Handler) CaptureOrder(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CaptureOrder")
	defer scope.End()

	req := dto.CaptureOrderRequest{}

	if err := validator.Decode(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request body")

		response.WithError(writer, err)

		return
	}

	capture, err := handler.service.CaptureOrder(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("order_id", req.OrderID).Msg("failed to capture paypal order")

		response.WithError(writer, err)

		return
	}

	response.WithOK(writer, http.StatusOK, response.Fields{
		"order_id":  capture.OrderID,
		"status":    capture.Status,
		"captureId": capture.CaptureID,
		"capture":   capture.Capture,
	})
}
