package reservation

import (
	"net/http"
	"storeflight/config"
	"storeflight/infras/otel"
	"storeflight/internal/domains/reservation/model"
	"storeflight/internal/domains/reservation/model/dto"
	"storeflight/internal/domains/reservation/service"
	"storeflight/shared/constant"
	gDto "storeflight/shared/dto"
	"storeflight/shared/failure"
	"storeflight/shared/validator"
	"storeflight/transport/http/middleware"
	"storeflight/transport/http/response"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Reservation
	middleware middleware.Auth
	cfg        *config.Config
	otel       otel.Otel
}

func New(service service.Reservation, middleware middleware.Auth, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		cfg:        cfg,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Post("/create", handler.CreatePendingReservation)
		routerGroup.Post("/finalize", handler.FinalizeReservation)

		if handler.cfg.Reservation.PublicList {
			routerGroup.Get("/", handler.ListReservations)
		} else {
			routerGroup.With(handler.middleware.RequireAdmin).Get("/", handler.ListReservations)
		}
	})

	router.With(handler.middleware.RequireAdmin).Get("/admin/reservations", handler.GetReservations)
	router.With(handler.middleware.RequireAdmin).Get("/admin/reservations/{id}", handler.GetReservationByID)
}

// CreateReservation handles the reservation form submission. When one-step
// checkout is enabled and the body carries a capture id the reservation is
// stored as paid, otherwise it is stored as pending.
// @Summary Create a reservation
// @Description Store a reservation as pending, or as paid when one-step checkout is enabled and a capture id is given.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} dto.ReservationResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/reservations [post]
func (handler *Handler) CreateReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Decode(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request body")

		response.WithError(writer, err)

		return
	}

	var (
		reservation dto.ReservationResponse
		err         error
	)

	if handler.cfg.Reservation.OneStep && req.PaypalCaptureID != "" {
		reservation, err = handler.service.CreateAndPay(ctx, req)
	} else {
		reservation, err = handler.service.CreatePending(ctx, req)
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reservation")

		response.WithError(writer, err)

		return
	}

	response.WithOK(writer, http.StatusCreated, response.Fields{"reservation": reservation})
}

// CreatePendingReservation stores a reservation before the payment is captured.
// @Summary Create a pending reservation
// @Description First step of checkout: the reservation is stored with status pending.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} dto.ReservationResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/reservations/create [post]
func (handler *Handler) CreatePendingReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePendingReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Decode(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request body")

		response.WithError(writer, err)

		return
	}

	reservation, err := handler.service.CreatePending(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create pending reservation")

		response.WithError(writer, err)

		return
	}

	response.WithOK(writer, http.StatusCreated, response.Fields{"reservation": reservation})
}

// FinalizeReservation marks a pending reservation as paid after the capture.
// @Summary Finalize a reservation
// @Description Second step of checkout: record the PayPal ids, mark the reservation paid and queue its notifications.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.FinalizeReservationRequest true "Finalize Reservation Request"
// @Success 200 {object} dto.ReservationResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/reservations/finalize [post]
func (handler *Handler) FinalizeReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FinalizeReservation")
	defer scope.End()

	req := dto.FinalizeReservationRequest{}

	if err := validator.Decode(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request body")

		response.WithError(writer, err)

		return
	}

	reservation, err := handler.service.Finalize(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("reservation_id", req.ReservationID).Msg("failed to finalize reservation")

		response.WithError(writer, err)

		return
	}

	response.WithOK(writer, http.StatusOK, response.Fields{"reservation": reservation})
}

// ListReservations returns reservations newest first as a bare array.
// @Summary List reservations
// @Description Reservations newest first. Public only when RESERVATION_PUBLIC_LIST is enabled.
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, paid)"
// @Success 200 {array} dto.ReservationResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/reservations [get]
// @Security BearerAuth
func (handler *Handler) ListReservations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListReservations")
	defer scope.End()

	queryParams, filter, err := listParams(request)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	reservations, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list reservations")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, reservations.Reservations)
}

// GetReservations is the operator listing.
// @Summary List reservations (admin)
// @Description Reservations newest first with the total count.
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, paid)"
// @Param X-Admin-Key header string false "Static admin key"
// @Success 200 {object} dto.GetReservationsResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/reservations [get]
// @Security BearerAuth
func (handler *Handler) GetReservations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	queryParams, filter, err := listParams(request)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	reservations, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(writer, err)

		return
	}

	response.WithOK(writer, http.StatusOK, response.Fields{
		"reservations": reservations.Reservations,
		"total":        reservations.TotalData,
		"total_page":   reservations.TotalPage,
	})
}

// GetReservationByID returns one reservation.
// @Summary Get a reservation (admin)
// @Tags Admin
// @Produce json
// @Param id path int true "Reservation ID"
// @Param X-Admin-Key header string false "Static admin key"
// @Success 200 {object} dto.ReservationResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/reservations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReservationByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id, err := strconv.ParseInt(chi.URLParam(request, constant.RequestParamID), 10, 64)
	if err != nil || id <= 0 {
		err = failure.BadRequestFromString("invalid_id")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("reservation_id", id).Msg("failed to get reservation")

		response.WithError(writer, err)

		return
	}

	response.WithOK(writer, http.StatusOK, response.Fields{"reservation": reservation})
}

// listParams reads paging and the optional status filter. Without a limit
// every reservation is returned.
func listParams(request *http.Request) (gDto.QueryParams, gDto.FilterGroup, error) {
	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, false)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []gDto.Filter{},
	}

	status := request.URL.Query().Get(constant.RequestParamStatus)
	if status == "" {
		return queryParams, filterGroup, nil
	}

	if err := validator.ValidateVar(status, "oneof="+model.StatusPending+" "+model.StatusPaid); err != nil {
		return queryParams, filterGroup, err
	}

	filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
		Field:    model.FieldStatus,
		Operator: gDto.FilterOperatorEq,
		Value:    status,
		Table:    model.TableName,
	})

	return queryParams, filterGroup, nil
}
