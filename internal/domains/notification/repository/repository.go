package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"storeflight/infras/otel"
	"storeflight/infras/postgres"
	"storeflight/internal/domains/notification/model"
	gDto "storeflight/shared/dto"
	gRepo "storeflight/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Outbox interface {
	InsertBulk(ctx context.Context, models []model.Outbox) error
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.Outbox) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Outbox, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Outbox]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Outbox {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Outbox](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
