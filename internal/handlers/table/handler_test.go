package table_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tablebook/infras/otel/mocks"
	"tablebook/internal/domains/table/model/dto"
	tableMocks "tablebook/internal/domains/table/mocks"
	"tablebook/internal/handlers/table"
	"tablebook/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (http.Handler, *tableMocks.MockTableService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := tableMocks.NewMockTableService(ctrl)

	handler := table.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	body := struct {
		Error string `json:"error"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body.Error
}

func dataOf(t *testing.T, rec *httptest.ResponseRecorder) dto.TableResponse {
	t.Helper()

	body := struct {
		Data dto.TableResponse `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body.Data
}

func TestGetTables(t *testing.T) {
	router, svc := setup(t)
	svc.EXPECT().GetAll(gomock.Any()).Return([]dto.TableResponse{{TableID: 1, TableName: "#1", Capacity: 6}}, nil)

	rec := serve(router, http.MethodGet, "/tables", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reservation_id":null`)
}

func TestCreateTable(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		router, svc := setup(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.CreateTableRequest) (dto.TableResponse, error) {
				assert.Equal(t, "Patio", req.TableName)
				require.NotNil(t, req.Capacity)
				assert.Equal(t, 4, *req.Capacity)

				return dto.TableResponse{TableID: 9, TableName: "Patio", Capacity: 4}, nil
			})

		rec := serve(router, http.MethodPost, "/tables", `{"data":{"table_name":"Patio","capacity":4}}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, int64(9), dataOf(t, rec).TableID)
	})

	t.Run("no data", func(t *testing.T) {
		router, _ := setup(t)

		rec := serve(router, http.MethodPost, "/tables", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "missing body", errorOf(t, rec))
	})

	t.Run("capacity must be a number", func(t *testing.T) {
		router, _ := setup(t)

		rec := serve(router, http.MethodPost, "/tables", `{"data":{"table_name":"Patio","capacity":"four"}}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetTable(t *testing.T) {
	router, svc := setup(t)
	svc.EXPECT().Get(gomock.Any(), "abc").Return(dto.TableResponse{}, failure.NotFound("Table abc does not exist."))

	rec := serve(router, http.MethodGet, "/tables/abc", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Table abc does not exist.", errorOf(t, rec))
}

func TestSeatReservation(t *testing.T) {
	t.Run("seats the reservation", func(t *testing.T) {
		router, svc := setup(t)

		id := int64(42)
		svc.EXPECT().Seat(gomock.Any(), "7", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, req *dto.SeatRequest) (dto.TableResponse, error) {
				require.NotNil(t, req)
				require.NotNil(t, req.ReservationID)
				assert.Equal(t, id, *req.ReservationID)

				return dto.TableResponse{TableID: 7, Capacity: 4, ReservationID: &id}, nil
			})

		rec := serve(router, http.MethodPut, "/tables/7/seat", `{"data":{"reservation_id":42}}`)

		assert.Equal(t, http.StatusOK, rec.Code)

		res := dataOf(t, rec)
		require.NotNil(t, res.ReservationID)
		assert.Equal(t, id, *res.ReservationID)
	})

	t.Run("precondition failure", func(t *testing.T) {
		router, svc := setup(t)
		svc.EXPECT().Seat(gomock.Any(), "7", gomock.Any()).
			Return(dto.TableResponse{}, failure.BadRequestFromString("table is occupied"))

		rec := serve(router, http.MethodPut, "/tables/7/seat", `{"data":{"reservation_id":42}}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "table is occupied", errorOf(t, rec))
	})

	t.Run("no data reaches the service as nil", func(t *testing.T) {
		router, svc := setup(t)
		svc.EXPECT().Seat(gomock.Any(), "7", (*dto.SeatRequest)(nil)).Return(dto.TableResponse{}, failure.MissingBody)

		rec := serve(router, http.MethodPut, "/tables/7/seat", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestFinishTable(t *testing.T) {
	router, svc := setup(t)
	svc.EXPECT().Finish(gomock.Any(), "7").Return(dto.TableResponse{TableID: 7, Capacity: 4}, nil)

	rec := serve(router, http.MethodDelete, "/tables/7/seat", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, dataOf(t, rec).ReservationID)
}

func TestMethodNotAllowed(t *testing.T) {
	tests := []struct {
		method string
		target string
		allow  string
	}{
		{http.MethodPut, "/tables", "GET, POST"},
		{http.MethodDelete, "/tables/7", "GET"},
		{http.MethodPost, "/tables/7/seat", "PUT, DELETE"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			router, _ := setup(t)

			rec := serve(router, tt.method, tt.target, "")

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, tt.allow, rec.Header().Get("Allow"))
		})
	}
}
