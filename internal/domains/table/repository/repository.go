package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"tablebook/infras/otel"
	"tablebook/infras/postgres"
	reservationModel "tablebook/internal/domains/reservation/model"
	"tablebook/internal/domains/table/model"
	"tablebook/shared"
	"tablebook/shared/constant"
	gDto "tablebook/shared/dto"
	gRepo "tablebook/shared/repository"
	"tablebook/shared/timezone"

	"github.com/jmoiron/sqlx"
)

type Table interface {
	InsertReturning(ctx context.Context, model model.Table) (model.Table, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Table, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Table, error)
	// AssignReservation points the table at the reservation and marks the reservation seated,
	// in one transaction.
	AssignReservation(ctx context.Context, tableID, reservationID int64) (model.Table, error)
	// Finish frees the table and marks the reservation finished, in one transaction.
	Finish(ctx context.Context, tableID, reservationID int64) (model.Table, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Table]
	reservations gRepo.Repository[reservationModel.Reservation]
	transactor   gRepo.Transactor
	otel         otel.Otel
}

func New(db *postgres.Connection, transactor gRepo.Transactor, otel otel.Otel) Table {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Table](model.EntityName, model.TableName, db, otel),
		reservations: gRepo.NewRepository[reservationModel.Reservation](
			reservationModel.EntityName, reservationModel.TableName, db, otel,
		),
		transactor: transactor,
		otel:       otel,
	}
}

func (r *repositoryImpl) AssignReservation(ctx context.Context, tableID, reservationID int64) (model.Table, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".table.AssignReservation")
	defer scope.End()

	scope.SetAttributes(map[string]any{"table_id": tableID, "reservation_id": reservationID})

	return r.move(ctx, tableID, &reservationID, reservationID, reservationModel.StatusSeated)
}

func (r *repositoryImpl) Finish(ctx context.Context, tableID, reservationID int64) (model.Table, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".table.Finish")
	defer scope.End()

	scope.SetAttributes(map[string]any{"table_id": tableID, "reservation_id": reservationID})

	return r.move(ctx, tableID, nil, reservationID, reservationModel.StatusFinished)
}

// move sets the table's occupant and the reservation's status together. If either update
// fails or matches no row, neither is kept.
func (r *repositoryImpl) move(ctx context.Context, tableID int64, occupant *int64, reservationID int64, status string) (table model.Table, err error) {
	now := timezone.Now()

	err = r.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		table, err = r.UpdateReturningTx(ctx, tx, map[string]any{
			model.FieldReservationID: occupant,
			constant.FieldUpdatedAt:  now,
		}, shared.FilterByID(tableID, model.FieldID, model.TableName))
		if err != nil {
			return err
		}

		return r.reservations.UpdateTx(ctx, tx, map[string]any{
			reservationModel.FieldStatus: status,
			constant.FieldUpdatedAt:      now,
		}, shared.FilterByID(reservationID, reservationModel.FieldID, reservationModel.TableName))
	})
	if err != nil {
		return model.Table{}, fmt.Errorf("failed to set reservation %d %s at table %d: %w", reservationID, status, tableID, err)
	}

	return table, nil
}
