package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"storeflight/config"
	"storeflight/infras/kafka"
	"storeflight/infras/otel"
	"storeflight/infras/resend"
	"storeflight/infras/s3"
	"storeflight/internal/domains/notification/model"
	"storeflight/internal/domains/notification/model/dto"
	"storeflight/internal/domains/notification/repository"
	"storeflight/internal/domains/notification/templates"
	rModel "storeflight/internal/domains/reservation/model"
	rDto "storeflight/internal/domains/reservation/model/dto"
	"storeflight/shared"
	"storeflight/shared/constant"
	gDto "storeflight/shared/dto"
	"storeflight/shared/timezone"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	maxBackoff         = 10 * time.Minute
	maxBackoffExponent = 10
	maxErrorLength     = 1000
	receiptExtension   = ".html"
	receiptDateLayout  = "02/01/2006 15:04"
)

var errUnknownKind = errors.New("unknown outbox kind")

type Notification interface {
	Prepare(ctx context.Context, reservation rModel.Reservation) ([]model.Outbox, error)
	Enqueue(ctx context.Context, rows []model.Outbox) error
	EnqueueTx(ctx context.Context, sqltx *sqlx.Tx, rows []model.Outbox) error
	DispatchPending(ctx context.Context) (dto.DispatchResult, error)
}

type serviceImpl struct {
	repo     repository.Outbox
	cfg      *config.Config
	otel     otel.Otel
	notifier resend.Notifier
	kafka    kafka.Client
	s3       s3.S3
}

func New(repo repository.Outbox, cfg *config.Config, otel otel.Otel, notifier resend.Notifier, kafka kafka.Client, s3 s3.S3) Notification {
	return &serviceImpl{
		repo:     repo,
		cfg:      cfg,
		otel:     otel,
		notifier: notifier,
		kafka:    kafka,
		s3:       s3,
	}
}

// Prepare renders the side tasks of a paid reservation. Channels that are
// not configured produce no rows.
func (s *serviceImpl) Prepare(ctx context.Context, reservation rModel.Reservation) (rows []model.Outbox, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Prepare")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var snapshot rDto.ReservationResponse
	snapshot.FromModel(reservation)

	view := toView(snapshot)
	now := timezone.Now()

	if s.notifier.Enabled() {
		if s.cfg.Email.AdminAddress != "" {
			html, err := templates.Render(templates.AdminEmail, view)
			if err != nil {
				return nil, err
			}

			rows = append(rows, newRow(reservation.ID, model.KindEmail, s.cfg.Email.AdminAddress, templates.AdminSubject(view), html, now))
		} else {
			log.Warn().Int64("reservation_id", reservation.ID).Msg("admin email is not configured, skipping operator notice")
		}

		if email := reservation.ContactEmail(); email != "" {
			html, err := templates.Render(templates.ClientEmail, view)
			if err != nil {
				return nil, err
			}

			rows = append(rows, newRow(reservation.ID, model.KindEmail, email, templates.ClientSubject(view), html, now))
		}
	}

	if s.kafka.Enabled() {
		event := dto.ReservationPaidEvent{
			EventID:     uuid.NewString(),
			Type:        model.EventReservationPaid,
			OccurredAt:  now,
			Reservation: snapshot,
		}

		payload, err := json.Marshal(event)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal paid event: %w", err)
		}

		rows = append(rows, newRow(reservation.ID, model.KindEvent, s.cfg.Kafka.Topic, model.EventReservationPaid, string(payload), now))
	}

	if s.s3.Enabled() {
		view.IssuedAt = timezone.Format(now, receiptDateLayout)

		html, err := templates.Render(templates.Receipt, view)
		if err != nil {
			return nil, err
		}

		fileName := fmt.Sprintf("reservation-%d-%s%s", reservation.ID, uuid.NewString(), receiptExtension)
		rows = append(rows, newRow(reservation.ID, model.KindReceipt, fileName, fmt.Sprintf("receipt #%d", reservation.ID), html, now))
	}

	return rows, nil
}

func (s *serviceImpl) Enqueue(ctx context.Context, rows []model.Outbox) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Enqueue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.repo.InsertBulk(ctx, rows); err != nil {
		log.Error().Err(err).Msg("failed to enqueue notifications")

		return fmt.Errorf("failed to enqueue notifications: %w", err)
	}

	return nil
}

func (s *serviceImpl) EnqueueTx(ctx context.Context, sqltx *sqlx.Tx, rows []model.Outbox) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EnqueueTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.repo.InsertBulkTx(ctx, sqltx, rows); err != nil {
		log.Error().Err(err).Msg("failed to enqueue notifications")

		return fmt.Errorf("failed to enqueue notifications: %w", err)
	}

	return nil
}

// DispatchPending delivers the due rows, oldest first. A delivery failure
// is recorded on the row and never returned.
func (s *serviceImpl) DispatchPending(ctx context.Context) (res dto.DispatchResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DispatchPending")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{
		Limit:   s.cfg.Outbox.BatchSize,
		SortBy:  model.FieldID,
		SortDir: gDto.SortDirAsc,
	}

	filter := gDto.FilterGroup{
		Filters: []gDto.Filter{
			{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusPending, Table: model.TableName},
			{Field: model.FieldNextAttemptAt, Operator: gDto.FilterOperatorLessEq, Value: timezone.Now(), Table: model.TableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}

	rows, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to claim outbox rows")

		return res, fmt.Errorf("failed to claim outbox rows: %w", err)
	}

	res.Claimed = len(rows)

	for _, row := range rows {
		if ctx.Err() != nil {
			break
		}

		deliverErr := s.deliver(ctx, row)
		if deliverErr == nil {
			if err := s.markSent(ctx, row); err != nil {
				log.Error().Err(err).Int64("outbox_id", row.ID).Msg("failed to mark outbox row sent")

				continue
			}

			res.Sent++

			continue
		}

		status, err := s.markRetry(ctx, row, deliverErr)
		if err != nil {
			log.Error().Err(err).Int64("outbox_id", row.ID).Msg("failed to record outbox failure")

			continue
		}

		if status == model.StatusFailed {
			res.Failed++
		} else {
			res.Retried++
		}
	}

	return res, nil
}

func (s *serviceImpl) deliver(ctx context.Context, row model.Outbox) error {
	switch row.Kind {
	case model.KindEmail:
		id, err := s.notifier.Send(ctx, resend.Email{To: row.Recipient, Subject: row.Subject, HTML: row.Payload})
		if err != nil {
			return err //nolint:wrapcheck
		}

		log.Info().Int64("outbox_id", row.ID).Str("email_id", id).Msg("notification email sent")

		return nil
	case model.KindEvent:
		msg := kafka.Message{
			Key:   strconv.FormatInt(row.ReservationID, 10),
			Value: json.RawMessage(row.Payload),
			Headers: map[string]string{
				"type":      row.Subject,
				"outbox_id": strconv.FormatInt(row.ID, 10),
			},
		}

		return s.kafka.SendMessages(ctx, row.Recipient, msg) //nolint:wrapcheck
	case model.KindReceipt:
		url, err := s.s3.UploadFileBytes(ctx, s.cfg.External.S3.BucketName, s.cfg.External.S3.Directory, row.Recipient, constant.ContentTypeHTML, []byte(row.Payload))
		if err != nil {
			return err //nolint:wrapcheck
		}

		log.Info().Int64("outbox_id", row.ID).Str("url", url).Msg("receipt archived")

		return nil
	default:
		return fmt.Errorf("%w: %s", errUnknownKind, row.Kind)
	}
}

func (s *serviceImpl) markSent(ctx context.Context, row model.Outbox) error {
	fields := model.SentFields{
		Status:   model.StatusSent,
		Attempts: row.Attempts + 1,
		SentAt:   timezone.Now(),
	}

	return s.repo.Update(ctx, shared.TransformFields(fields), shared.FilterByID(row.ID, model.FieldID, model.TableName)) //nolint:wrapcheck
}

func (s *serviceImpl) markRetry(ctx context.Context, row model.Outbox, cause error) (string, error) {
	attempts := row.Attempts + 1

	status := model.StatusPending
	if attempts >= s.cfg.Outbox.MaxAttempts {
		status = model.StatusFailed
	}

	lastError := truncate(cause.Error(), maxErrorLength)

	fields := model.RetryFields{
		Status:        status,
		Attempts:      attempts,
		LastError:     lastError,
		NextAttemptAt: timezone.Now().Add(Backoff(attempts)),
	}

	log.Warn().Err(cause).
		Int64("outbox_id", row.ID).
		Str("kind", row.Kind).
		Int("attempts", attempts).
		Str("status", status).
		Msg("outbox delivery failed")

	if err := s.repo.Update(ctx, shared.TransformFields(fields), shared.FilterByID(row.ID, model.FieldID, model.TableName)); err != nil {
		return status, err //nolint:wrapcheck
	}

	return status, nil
}

// truncate caps value at limit bytes without leaving a partial rune behind.
func truncate(value string, limit int) string {
	if len(value) > limit {
		value = value[:limit]
	}

	return strings.ToValidUTF8(value, "")
}

// Backoff returns the delay before the next delivery attempt: 2^attempts
// seconds, capped at ten minutes.
func Backoff(attempts int) time.Duration {
	if attempts < 0 {
		attempts = 0
	}

	if attempts >= maxBackoffExponent {
		return maxBackoff
	}

	return min(time.Duration(1<<attempts)*time.Second, maxBackoff)
}

func newRow(reservationID int64, kind, recipient, subject, payload string, now time.Time) model.Outbox {
	return model.Outbox{
		ReservationID: reservationID,
		Kind:          kind,
		Recipient:     recipient,
		Subject:       subject,
		Payload:       payload,
		Status:        model.StatusPending,
		NextAttemptAt: now,
	}
}

func toView(r rDto.ReservationResponse) templates.View {
	return templates.View{
		ID:              r.ID,
		FullName:        r.FullName,
		Phone:           r.Phone,
		Email:           deref(r.Email),
		ServiceType:     r.ServiceType,
		FromCity:        deref(r.FromCity),
		ToCity:          deref(r.ToCity),
		CheckIn:         deref(r.CheckIn),
		CheckOut:        deref(r.CheckOut),
		Travelers:       r.Travelers,
		Notes:           deref(r.Notes),
		DepositAmount:   r.DepositAmount.StringFixed(2),
		Currency:        r.Currency,
		PaymentMethod:   r.PaymentMethod,
		PaypalOrderID:   deref(r.PaypalOrderID),
		PaypalCaptureID: deref(r.PaypalCaptureID),
		Status:          r.Status,
		Contact:         templates.WhatsAppContact,
	}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}
