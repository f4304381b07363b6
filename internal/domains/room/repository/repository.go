package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"edurooms/infras/otel"
	"edurooms/infras/postgres"
	"edurooms/internal/domains/room/model"
	gDto "edurooms/shared/dto"
	gRepo "edurooms/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Room interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error
	Insert(ctx context.Context, room model.Room) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) (int64, error)
	DeleteTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// NameFilter matches the room called name, ignoring excludeID when it is positive.
func NameFilter(name string, excludeID int64) gDto.FilterGroup {
	filter := gDto.FilterGroup{}
	filter.Add(gDto.Filter{Field: model.FieldName, Value: name, Operator: gDto.FilterOperatorEq, Table: model.TableName})

	if excludeID > 0 {
		filter.Add(gDto.Filter{Field: model.FieldID, Value: excludeID, Operator: gDto.FilterOperatorNotEq, Table: model.TableName})
	}

	return filter
}
