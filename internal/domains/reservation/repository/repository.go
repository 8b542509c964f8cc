package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"tablebook/infras/otel"
	"tablebook/infras/postgres"
	"tablebook/internal/domains/reservation/model"
	gDto "tablebook/shared/dto"
	gRepo "tablebook/shared/repository"
)

type Reservation interface {
	InsertReturning(ctx context.Context, model model.Reservation) (model.Reservation, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	UpdateReturning(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (model.Reservation, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, db, otel),
	}
}
