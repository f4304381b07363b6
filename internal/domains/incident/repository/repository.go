package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"edurooms/infras/otel"
	"edurooms/infras/postgres"
	"edurooms/internal/domains/incident/model"
	gDto "edurooms/shared/dto"
	gRepo "edurooms/shared/repository"
)

type Incident interface {
	Insert(ctx context.Context, incident model.Incident) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Incident, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Incident, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Incident]
}

func New(db *postgres.Connection, otel otel.Otel) Incident {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Incident](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
