package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Reservation=MockReservationService

import (
	"context"
	"errors"
	"fmt"

	"tablebook/infras/otel"
	"tablebook/internal/domains/reservation/model"
	"tablebook/internal/domains/reservation/model/dto"
	"tablebook/internal/domains/reservation/policy"
	"tablebook/internal/domains/reservation/repository"
	"tablebook/internal/domains/reservation/validation"
	"tablebook/shared"
	"tablebook/shared/constant"
	gDto "tablebook/shared/dto"
	"tablebook/shared/failure"
	gRepo "tablebook/shared/repository"
	"tablebook/shared/timezone"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	orderByDateTime = model.FieldDate + ", " + model.FieldTime
)

type Reservation interface {
	Create(ctx context.Context, data *dto.Payload) (dto.ReservationResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	Update(ctx context.Context, id string, data *dto.Payload) (dto.ReservationResponse, error)
	UpdateStatus(ctx context.Context, id string, data *dto.Payload) (dto.ReservationResponse, error)
	List(ctx context.Context) ([]dto.ReservationResponse, error)
	SearchByDate(ctx context.Context, date string) ([]dto.ReservationResponse, error)
	SearchByPhone(ctx context.Context, mobileNumber string) ([]dto.ReservationResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Reservation
	validator validation.Validator
	otel      otel.Otel
}

func New(repo repository.Reservation, validator validation.Validator, otel otel.Otel) Reservation {
	return &serviceImpl{
		repo:      repo,
		validator: validator,
		otel:      otel,
	}
}

// NotFound is the error for an unknown or malformed reservation id.
func NotFound(id string) error {
	return failure.NotFound(fmt.Sprintf("Reservation %s does not exist.", id))
}

func (s *serviceImpl) Create(ctx context.Context, data *dto.Payload) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req, err := s.validator.ValidateCreate(data)
	if err != nil {
		return res, err
	}

	created, err := s.repo.InsertReturning(ctx, req.ToModel(timezone.Now()))
	if err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	res.FromModel(created)

	return res, nil
}

// find loads a reservation by its path id. The result is handed to the validator explicitly.
func (s *serviceImpl) find(ctx context.Context, id string) (model.Reservation, error) {
	reservationID, ok := shared.ParseID(id)
	if !ok {
		return model.Reservation{}, NotFound(id)
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(reservationID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ReservationID == 0 {
		return reservation, NotFound(id)
	}

	return reservation, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, data *dto.Payload) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	existing, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	req, err := s.validator.ValidateUpdate(data, existing)
	if err != nil {
		return res, err
	}

	return s.save(ctx, id, existing.ReservationID, shared.TransformFields(req))
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, data *dto.Payload) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	existing, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	status, err := s.validator.ValidateStatus(data, existing)
	if err != nil {
		return res, err
	}

	return s.save(ctx, id, existing.ReservationID, shared.TransformFields(dto.StatusUpdate{Status: status}))
}

func (s *serviceImpl) save(ctx context.Context, id string, reservationID int64, fields map[string]any) (res dto.ReservationResponse, err error) {
	updated, err := s.repo.UpdateReturning(ctx, fields, shared.FilterByID(reservationID, model.FieldID, model.TableName))
	if errors.Is(err, gRepo.ErrNotUpdated) {
		return res, NotFound(id)
	}

	if err != nil {
		log.Error().Err(err).Int64("reservation_id", reservationID).Msg("failed to update reservation")

		return res, fmt.Errorf("failed to update reservation: %w", err)
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) getAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.ReservationResponse, error) {
	reservations, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return nil, fmt.Errorf("failed to get reservations: %w", err)
	}

	return dto.FromModels(reservations), nil
}

// List returns reservations that are still to be served, soonest first.
func (s *serviceImpl) List(ctx context.Context) (res []dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.getAll(ctx, gDto.OrderBy(orderByDateTime), gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    []string{model.StatusFinished, model.StatusCancelled},
				Operator: gDto.FilterOperatorNotIn,
				Table:    model.TableName,
			},
		},
	})
}

func (s *serviceImpl) SearchByDate(ctx context.Context, date string) (res []dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.SearchByDate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !policy.IsValidDateFormat(date) {
		return nil, failure.BadRequestFromString("date must be in YYYY-MM-DD format")
	}

	return s.getAll(ctx, gDto.OrderBy(model.FieldTime), gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldDate,
				Value:    date,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusFinished,
				Operator: gDto.FilterOperatorNotEq,
				Table:    model.TableName,
			},
		},
	})
}

// SearchByPhone matches on digits only, so "555-1234", "(555) 1234" and "5551234" are the same number.
func (s *serviceImpl) SearchByPhone(ctx context.Context, mobileNumber string) (res []dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.SearchByPhone")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	digits := shared.DigitsOnly(mobileNumber)
	if digits == "" {
		return nil, failure.BadRequestFromString("mobile_number must contain at least one digit")
	}

	return s.getAll(ctx, gDto.OrderBy(model.FieldDate), gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldMobileNumber,
				Value:    digits,
				Operator: gDto.FilterOperatorDigitsLike,
				Table:    model.TableName,
			},
		},
	})
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	err = s.repo.Delete(ctx, shared.FilterByID(reservation.ReservationID, model.FieldID, model.TableName))
	if errors.Is(err, gRepo.ErrNotUpdated) {
		return NotFound(id)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeFkViolation {
		return failure.BadRequestFromString("reservation is seated at a table")
	}

	if err != nil {
		log.Error().Err(err).Int64("reservation_id", reservation.ReservationID).Msg("failed to delete reservation")

		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	return nil
}
