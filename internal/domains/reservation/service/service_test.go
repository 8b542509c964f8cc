package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"tablebook/infras/otel/mocks"
	"tablebook/internal/domains/reservation/model"
	"tablebook/internal/domains/reservation/model/dto"
	reservationMocks "tablebook/internal/domains/reservation/mocks"
	"tablebook/internal/domains/reservation/service"
	"tablebook/internal/domains/reservation/validation"
	"tablebook/shared"
	gDto "tablebook/shared/dto"
	"tablebook/shared/failure"
	gRepo "tablebook/shared/repository"
	"tablebook/shared/timezone"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, timezone.GetLocation())
}

func newService(t *testing.T) (service.Reservation, *reservationMocks.MockReservation) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := reservationMocks.NewMockReservation(ctrl)

	return service.New(repo, validation.NewWithClock(fixedClock), mocks.NewOtel()), repo
}

func payload(t *testing.T, data string) *dto.Payload {
	t.Helper()

	var p dto.Payload
	require.NoError(t, json.Unmarshal([]byte(data), &p))

	return &p
}

func byID(id int64) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

const validData = `{"first_name":"A","last_name":"B","mobile_number":"555-1234","reservation_date":"2024-03-15","reservation_time":"18:00","people":3}`

func booked(id int64) model.Reservation {
	return model.Reservation{
		ReservationID:   id,
		FirstName:       "A",
		LastName:        "B",
		MobileNumber:    "555-1234",
		ReservationDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		ReservationTime: "18:00:00",
		People:          3,
		Status:          model.StatusBooked,
	}
}

func TestCreate(t *testing.T) {
	t.Run("stores a booked reservation and returns it with its id", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().InsertReturning(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, reservation model.Reservation) (model.Reservation, error) {
				assert.Equal(t, model.StatusBooked, reservation.Status)
				assert.Equal(t, 3, reservation.People)
				assert.Equal(t, "18:00", reservation.ReservationTime)

				reservation.ReservationID = 42

				return reservation, nil
			})

		res, err := svc.Create(context.Background(), payload(t, validData))

		require.NoError(t, err)
		assert.Equal(t, int64(42), res.ReservationID)
		assert.Equal(t, model.StatusBooked, res.Status)
		assert.Equal(t, "2024-03-15", res.ReservationDate)
		assert.Equal(t, "18:00", res.ReservationTime)
	})

	t.Run("validation failure never reaches the store", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Create(context.Background(), nil)

		require.Error(t, err)
		assert.Equal(t, "missing body", err.Error())
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("store failure is internal", func(t *testing.T) {
		svc, repo := newService(t)
		repo.EXPECT().InsertReturning(gomock.Any(), gomock.Any()).Return(model.Reservation{}, errors.New("connection reset"))

		_, err := svc.Create(context.Background(), payload(t, validData))

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestGet(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, repo := newService(t)
		repo.EXPECT().Get(gomock.Any(), byID(7)).Return(booked(7), nil).Times(2)

		first, err := svc.Get(context.Background(), "7")
		require.NoError(t, err)

		second, err := svc.Get(context.Background(), "7")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, int64(7), first.ReservationID)
	})

	t.Run("missing", func(t *testing.T) {
		svc, repo := newService(t)
		repo.EXPECT().Get(gomock.Any(), byID(9)).Return(model.Reservation{}, nil)

		_, err := svc.Get(context.Background(), "9")

		require.Error(t, err)
		assert.Equal(t, "Reservation 9 does not exist.", err.Error())
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("non numeric id", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Get(context.Background(), "abc")

		require.Error(t, err)
		assert.Equal(t, "Reservation abc does not exist.", err.Error())
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUpdate(t *testing.T) {
	t.Run("booked reservation is rewritten without touching status", func(t *testing.T) {
		svc, repo := newService(t)
		updated := booked(7)
		updated.People = 4

		repo.EXPECT().Get(gomock.Any(), byID(7)).Return(booked(7), nil)
		repo.EXPECT().UpdateReturning(gomock.Any(), gomock.Any(), byID(7)).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (model.Reservation, error) {
				assert.Equal(t, 4, fields[model.FieldPeople])
				assert.Equal(t, "2024-03-15", fields[model.FieldDate])
				assert.NotContains(t, fields, model.FieldStatus)
				assert.Contains(t, fields, "updated_at")

				return updated, nil
			})

		res, err := svc.Update(context.Background(), "7", payload(t, `{"first_name":"A","last_name":"B","mobile_number":"555-1234","reservation_date":"2024-03-15","reservation_time":"18:00","people":4,"status":"finished"}`))

		require.NoError(t, err)
		assert.Equal(t, 4, res.People)
		assert.Equal(t, model.StatusBooked, res.Status)
	})

	t.Run("seated reservation cannot be edited", func(t *testing.T) {
		svc, repo := newService(t)
		seated := booked(7)
		seated.Status = model.StatusSeated

		repo.EXPECT().Get(gomock.Any(), byID(7)).Return(seated, nil)

		_, err := svc.Update(context.Background(), "7", payload(t, validData))

		require.Error(t, err)
		assert.Equal(t, "only booked reservations can be edited", err.Error())
	})

	t.Run("row vanished before the write", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().Get(gomock.Any(), byID(7)).Return(booked(7), nil)
		repo.EXPECT().UpdateReturning(gomock.Any(), gomock.Any(), byID(7)).
			Return(model.Reservation{}, fmt.Errorf("failed to update data (reservation): %w", gRepo.ErrNotUpdated))

		_, err := svc.Update(context.Background(), "7", payload(t, validData))

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("booked to cancelled", func(t *testing.T) {
		svc, repo := newService(t)
		cancelled := booked(7)
		cancelled.Status = model.StatusCancelled

		repo.EXPECT().Get(gomock.Any(), byID(7)).Return(booked(7), nil)
		repo.EXPECT().UpdateReturning(gomock.Any(), gomock.Any(), byID(7)).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (model.Reservation, error) {
				assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])
				assert.Len(t, fields, 2)

				return cancelled, nil
			})

		res, err := svc.UpdateStatus(context.Background(), "7", payload(t, `{"status":"cancelled"}`))

		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, res.Status)
		assert.Equal(t, int64(7), res.ReservationID)
	})

	t.Run("finished reservation rejects every status", func(t *testing.T) {
		for _, status := range model.Statuses {
			svc, repo := newService(t)
			finished := booked(7)
			finished.Status = model.StatusFinished

			repo.EXPECT().Get(gomock.Any(), byID(7)).Return(finished, nil)

			_, err := svc.UpdateStatus(context.Background(), "7", payload(t, `{"status":"`+status+`"}`))

			require.Error(t, err, status)
			assert.Equal(t, "a finished reservation cannot be updated", err.Error())
		}
	})

	t.Run("seated and finished are left to the table routes", func(t *testing.T) {
		cases := []struct {
			existing, status, wantMsg string
		}{
			{model.StatusBooked, model.StatusSeated, "reservations are seated through PUT /tables/{table_id}/seat"},
			{model.StatusSeated, model.StatusFinished, "reservations are finished through DELETE /tables/{table_id}/seat"},
		}

		for _, tc := range cases {
			svc, repo := newService(t)
			existing := booked(7)
			existing.Status = tc.existing

			repo.EXPECT().Get(gomock.Any(), byID(7)).Return(existing, nil)

			_, err := svc.UpdateStatus(context.Background(), "7", payload(t, `{"status":"`+tc.status+`"}`))

			require.Error(t, err, tc.status)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Equal(t, tc.wantMsg, err.Error())
		}
	})

	t.Run("unknown reservation", func(t *testing.T) {
		svc, repo := newService(t)
		repo.EXPECT().Get(gomock.Any(), byID(8)).Return(model.Reservation{}, nil)

		_, err := svc.UpdateStatus(context.Background(), "8", payload(t, `{"status":"seated"}`))

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestList(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().GetAll(gomock.Any(), gDto.OrderBy("reservation_date, reservation_time"), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Reservation, error) {
			where, args := filter.GetWhereClause()

			assert.Equal(t, "(reservations.status NOT IN (:status_0, :status_1))", where)
			assert.Equal(t, map[string]any{"status_0": model.StatusFinished, "status_1": model.StatusCancelled}, args)

			return []model.Reservation{booked(1), booked(2)}, nil
		})

	res, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, res, 2)
}

func TestSearchByDate(t *testing.T) {
	t.Run("non finished reservations on the date ordered by time", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().GetAll(gomock.Any(), gDto.OrderBy("reservation_time"), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Reservation, error) {
				where, args := filter.GetWhereClause()

				assert.Equal(t, "(reservations.reservation_date = :reservation_date AND reservations.status != :status)", where)
				assert.Equal(t, "2024-03-15", args["reservation_date"])
				assert.Equal(t, model.StatusFinished, args["status"])

				return []model.Reservation{}, nil
			})

		res, err := svc.SearchByDate(context.Background(), "2024-03-15")

		require.NoError(t, err)
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})

	t.Run("malformed date", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.SearchByDate(context.Background(), "15/03/2024")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestSearchByPhone(t *testing.T) {
	t.Run("matches on digits", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().GetAll(gomock.Any(), gDto.OrderBy("reservation_date"), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Reservation, error) {
				where, args := filter.GetWhereClause()

				assert.Equal(t, "(regexp_replace(reservations.mobile_number, '[^0-9]', '', 'g') LIKE :mobile_number)", where)
				assert.Equal(t, "%5551234%", args["mobile_number"])

				return []model.Reservation{booked(3)}, nil
			})

		res, err := svc.SearchByPhone(context.Background(), "(555) 123-4")

		require.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("no digits", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.SearchByPhone(context.Background(), "---")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestDelete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().Get(gomock.Any(), byID(7)).Return(booked(7), nil)
		repo.EXPECT().Delete(gomock.Any(), byID(7)).Return(nil)

		require.NoError(t, svc.Delete(context.Background(), "7"))
	})

	t.Run("seated at a table", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().Get(gomock.Any(), byID(7)).Return(booked(7), nil)
		repo.EXPECT().Delete(gomock.Any(), byID(7)).
			Return(fmt.Errorf("failed to delete data (reservation): %w", &pq.Error{Code: "23503"}))

		err := svc.Delete(context.Background(), "7")

		require.Error(t, err)
		assert.Equal(t, "reservation is seated at a table", err.Error())
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown", func(t *testing.T) {
		svc, repo := newService(t)
		repo.EXPECT().Get(gomock.Any(), byID(7)).Return(model.Reservation{}, nil)

		err := svc.Delete(context.Background(), "7")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
