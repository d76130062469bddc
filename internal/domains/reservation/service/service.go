package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Reservation=MockReservationService

import (
	"context"
	"fmt"
	"storeflight/config"
	"storeflight/infras/otel"
	"storeflight/infras/postgres"
	notificationService "storeflight/internal/domains/notification/service"
	"storeflight/internal/domains/reservation/model"
	"storeflight/internal/domains/reservation/model/dto"
	"storeflight/internal/domains/reservation/repository"
	"storeflight/shared"
	"storeflight/shared/cache"
	"storeflight/shared/constant"
	gDto "storeflight/shared/dto"
	"storeflight/shared/failure"
	"storeflight/shared/validator"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"
)

const ErrReservationNotFound = "reservation_not_found"

type Reservation interface {
	CreatePending(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	Finalize(ctx context.Context, req dto.FinalizeReservationRequest) (dto.ReservationResponse, error)
	CreateAndPay(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id int64) (dto.ReservationResponse, error)
}

type serviceImpl struct {
	repo         repository.Reservation
	notification notificationService.Notification
	transactor   postgres.Transactor
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Reservation,
	notification notificationService.Notification,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:         repo,
		notification: notification,
		transactor:   transactor,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// CreatePending stores a reservation before any payment happened.
func (s *serviceImpl) CreatePending(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreatePending")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	reservation, err := s.repo.Insert(ctx, req.ToModel(model.StatusPending))
	if err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	log.Info().Int64("reservation_id", reservation.ID).Str("service_type", reservation.ServiceType).Msg("pending reservation created")

	s.invalidate(ctx, 0)

	res.FromModel(reservation)

	return res, nil
}

// Finalize records the provider ids, marks the reservation paid and queues
// its notifications in the same transaction. Finalizing twice is accepted.
func (s *serviceImpl) Finalize(ctx context.Context, req dto.FinalizeReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Finalize")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	filter := shared.FilterByID(req.ReservationID, model.FieldID, model.TableName)

	reservation, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Int64("reservation_id", req.ReservationID).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == 0 {
		return res, failure.NotFound(ErrReservationNotFound) // nolint:wrapcheck
	}

	if reservation.IsPaid() {
		log.Info().Int64("reservation_id", reservation.ID).Msg("reservation already paid, finalizing again")
	}

	paidFields := req.ToPaidFields()
	reservation.PaypalOrderID = &paidFields.PaypalOrderID
	reservation.PaypalCaptureID = &paidFields.PaypalCaptureID
	reservation.Status = paidFields.Status

	rows, err := s.notification.Prepare(ctx, reservation)
	if err != nil {
		log.Error().Err(err).Int64("reservation_id", reservation.ID).Msg("failed to prepare notifications")

		return res, fmt.Errorf("failed to prepare notifications: %w", err)
	}

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.UpdateTx(ctx, tx, shared.TransformFields(paidFields), filter); err != nil {
			return fmt.Errorf("failed to mark reservation paid: %w", err)
		}

		return s.notification.EnqueueTx(ctx, tx, rows) //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Int64("reservation_id", reservation.ID).Msg("failed to finalize reservation")

		return res, fmt.Errorf("failed to finalize reservation: %w", err)
	}

	log.Info().
		Int64("reservation_id", reservation.ID).
		Str("paypal_order_id", paidFields.PaypalOrderID).
		Int("notifications", len(rows)).
		Msg("reservation finalized")

	s.invalidate(ctx, reservation.ID)

	res.FromModel(reservation)

	return res, nil
}

// CreateAndPay stores an already captured reservation directly as paid.
// Notifications are queued after the insert; a queueing failure is logged
// and does not fail the request.
func (s *serviceImpl) CreateAndPay(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateAndPay")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	if req.PaypalCaptureID == "" {
		return res, failure.BadRequestFromString("paypal_capture_id is required") // nolint:wrapcheck
	}

	reservation, err := s.repo.Insert(ctx, req.ToModel(model.StatusPaid))
	if err != nil {
		log.Error().Err(err).Msg("failed to create paid reservation")

		return res, fmt.Errorf("failed to create paid reservation: %w", err)
	}

	rows, prepareErr := s.notification.Prepare(ctx, reservation)
	if prepareErr == nil {
		prepareErr = s.notification.Enqueue(ctx, rows)
	}

	if prepareErr != nil {
		log.Error().Err(prepareErr).Int64("reservation_id", reservation.ID).Msg("reservation paid but notifications were not queued")
	}

	s.invalidate(ctx, 0)

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sanitize(model.FieldID, model.FieldCreatedAt, model.FieldStatus)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, gDto.QueryParams{}, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetReservation, strconv.FormatInt(id, 10))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == 0 {
		return res, failure.NotFound(ErrReservationNotFound) // nolint:wrapcheck
	}

	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

// invalidate drops the listing caches and, when id is set, the cached copy
// of that reservation. It runs before the write is acknowledged so that a
// follow-up read cannot be served from the old entries.
func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	ctx = context.WithoutCancel(ctx)

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllReservation, cacheCountReservation)

	if id == 0 {
		return
	}

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetReservation, strconv.FormatInt(id, 10))); err != nil {
		log.Warn().Err(err).Int64("reservation_id", id).Msg("failed to drop cached reservation")
	}
}
