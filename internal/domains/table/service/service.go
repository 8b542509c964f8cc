package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Table=MockTableService

import (
	"context"
	"fmt"

	"tablebook/infras/otel"
	reservationModel "tablebook/internal/domains/reservation/model"
	reservationRepo "tablebook/internal/domains/reservation/repository"
	"tablebook/internal/domains/table/model"
	"tablebook/internal/domains/table/model/dto"
	"tablebook/internal/domains/table/repository"
	"tablebook/shared"
	"tablebook/shared/constant"
	gDto "tablebook/shared/dto"
	"tablebook/shared/failure"
	"tablebook/shared/timezone"
	"tablebook/shared/validator"

	"github.com/rs/zerolog/log"
)

type Table interface {
	Create(ctx context.Context, req dto.CreateTableRequest) (dto.TableResponse, error)
	Get(ctx context.Context, id string) (dto.TableResponse, error)
	GetAll(ctx context.Context) ([]dto.TableResponse, error)
	Seat(ctx context.Context, id string, req *dto.SeatRequest) (dto.TableResponse, error)
	Finish(ctx context.Context, id string) (dto.TableResponse, error)
}

type serviceImpl struct {
	repo         repository.Table
	reservations reservationRepo.Reservation
	otel         otel.Otel
}

func New(repo repository.Table, reservations reservationRepo.Reservation, otel otel.Otel) Table {
	return &serviceImpl{
		repo:         repo,
		reservations: reservations,
		otel:         otel,
	}
}

func tableNotFound(id string) error {
	return failure.NotFound(fmt.Sprintf("Table %s does not exist.", id))
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTableRequest) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	table, err := s.repo.InsertReturning(ctx, req.ToModel(timezone.Now()))
	if err != nil {
		log.Error().Err(err).Msg("failed to create table")

		return res, fmt.Errorf("failed to create table: %w", err)
	}

	res.FromModel(table)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Table, error) {
	tableID, ok := shared.ParseID(id)
	if !ok {
		return model.Table{}, tableNotFound(id)
	}

	table, err := s.repo.Get(ctx, shared.FilterByID(tableID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return table, fmt.Errorf("failed to get table: %w", err)
	}

	if table.TableID == 0 {
		return table, tableNotFound(id)
	}

	return table, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	table, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(table)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tables, err := s.repo.GetAll(ctx, gDto.OrderBy(model.FieldName), gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get tables")

		return nil, fmt.Errorf("failed to get tables: %w", err)
	}

	return dto.FromModels(tables), nil
}

// Seat checks every precondition before the transaction runs, so a rejected request writes nothing.
func (s *serviceImpl) Seat(ctx context.Context, id string, req *dto.SeatRequest) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Seat")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == nil {
		return res, failure.MissingBody
	}

	if err = validator.ValidateStruct(req); err != nil {
		return res, err
	}

	reservationID := *req.ReservationID

	reservation, err := s.reservations.Get(ctx, shared.FilterByID(reservationID, reservationModel.FieldID, reservationModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ReservationID == 0 {
		return res, failure.NotFound(fmt.Sprintf("Reservation %d does not exist.", reservationID))
	}

	table, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	switch {
	case !table.Fits(reservation.People):
		return res, failure.BadRequestFromString("table does not have sufficient capacity")
	case table.IsOccupied():
		return res, failure.BadRequestFromString("table is occupied")
	case reservation.Status == reservationModel.StatusSeated:
		return res, failure.BadRequestFromString("reservation is already seated")
	case reservation.Status != reservationModel.StatusBooked:
		return res, failure.BadRequestFromString("only booked reservations can be seated")
	}

	seated, err := s.repo.AssignReservation(ctx, table.TableID, reservation.ReservationID)
	if err != nil {
		log.Error().Err(err).Int64("table_id", table.TableID).Int64("reservation_id", reservationID).Msg("failed to seat reservation")

		return res, fmt.Errorf("failed to seat reservation: %w", err)
	}

	res.FromModel(seated)

	return res, nil
}

func (s *serviceImpl) Finish(ctx context.Context, id string) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Finish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	table, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !table.IsOccupied() {
		return res, failure.BadRequestFromString("table is not occupied")
	}

	finished, err := s.repo.Finish(ctx, table.TableID, *table.ReservationID)
	if err != nil {
		log.Error().Err(err).Int64("table_id", table.TableID).Msg("failed to finish table")

		return res, fmt.Errorf("failed to finish table: %w", err)
	}

	res.FromModel(finished)

	return res, nil
}
