package table

import (
	"net/http"

	"tablebook/infras/otel"
	"tablebook/internal/domains/table/model/dto"
	"tablebook/internal/domains/table/service"
	"tablebook/shared/constant"
	gDto "tablebook/shared/dto"
	"tablebook/shared/failure"
	"tablebook/shared/validator"
	"tablebook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Table
	otel    otel.Otel
}

func New(service service.Table, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tables", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTables)
		routerGroup.Post("/", handler.CreateTable)
		routerGroup.MethodNotAllowed(response.MethodNotAllowed(http.MethodGet, http.MethodPost))

		routerGroup.Route("/{"+constant.RequestParamTableID+"}", func(single chi.Router) {
			single.Get("/", handler.GetTable)
			single.MethodNotAllowed(response.MethodNotAllowed(http.MethodGet))

			single.Route("/seat", func(seat chi.Router) {
				seat.Put("/", handler.SeatReservation)
				seat.Delete("/", handler.FinishTable)
				seat.MethodNotAllowed(response.MethodNotAllowed(http.MethodPut, http.MethodDelete))
			})
		})
	})
}

func (handler *Handler) fail(writer http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)

	if failure.GetCode(err) >= http.StatusInternalServerError {
		log.Error().Err(err).Msg(msg)
	} else {
		log.Debug().Err(err).Msg(msg)
	}

	response.WithError(writer, err)
}

// GetTables lists every table ordered by name.
// @Summary List tables
// @Tags Table
// @Produce json
// @Success 200 {object} response.Data[[]dto.TableResponse]
// @Failure 500 {object} response.Error
// @Router /tables [get]
func (handler *Handler) GetTables(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTables")
	defer scope.End()

	tables, err := handler.service.GetAll(ctx)
	if err != nil {
		handler.fail(w, scope, err, "failed to get tables")

		return
	}

	response.WithJSON(w, http.StatusOK, tables)
}

// CreateTable adds a table.
// @Summary Create a table
// @Tags Table
// @Accept json
// @Produce json
// @Param request body gDto.Envelope[dto.CreateTableRequest] true "Table"
// @Success 201 {object} response.Data[dto.TableResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /tables [post]
func (handler *Handler) CreateTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTable")
	defer scope.End()

	body := gDto.Envelope[dto.CreateTableRequest]{}
	if err := validator.Decode(r.Body, &body); err != nil {
		handler.fail(w, scope, err, "failed to decode request body")

		return
	}

	if body.Data == nil {
		handler.fail(w, scope, failure.MissingBody, "failed to decode request body")

		return
	}

	table, err := handler.service.Create(ctx, *body.Data)
	if err != nil {
		handler.fail(w, scope, err, "failed to create table")

		return
	}

	scope.AddEvent("Table created")

	response.WithJSON(w, http.StatusCreated, table)
}

// GetTable reads a table by id.
// @Summary Get a table
// @Tags Table
// @Produce json
// @Param table_id path string true "Table ID"
// @Success 200 {object} response.Data[dto.TableResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /tables/{table_id} [get]
func (handler *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTable")
	defer scope.End()

	table, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamTableID))
	if err != nil {
		handler.fail(w, scope, err, "failed to get table")

		return
	}

	response.WithJSON(w, http.StatusOK, table)
}

// SeatReservation seats a booked reservation at a free table.
// @Summary Seat a reservation
// @Description The table must be free and large enough; the reservation must be booked.
// @Description The table and the reservation are updated in one transaction.
// @Tags Table
// @Accept json
// @Produce json
// @Param table_id path string true "Table ID"
// @Param request body gDto.Envelope[dto.SeatRequest] true "Reservation to seat"
// @Success 200 {object} response.Data[dto.TableResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /tables/{table_id}/seat [put]
func (handler *Handler) SeatReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SeatReservation")
	defer scope.End()

	body := gDto.Envelope[dto.SeatRequest]{}
	if err := validator.Decode(r.Body, &body); err != nil {
		handler.fail(w, scope, err, "failed to decode request body")

		return
	}

	table, err := handler.service.Seat(ctx, chi.URLParam(r, constant.RequestParamTableID), body.Data)
	if err != nil {
		handler.fail(w, scope, err, "failed to seat reservation")

		return
	}

	scope.AddEvent("Reservation seated")

	response.WithJSON(w, http.StatusOK, table)
}

// FinishTable frees a table and finishes the reservation seated at it.
// @Summary Finish a table
// @Tags Table
// @Produce json
// @Param table_id path string true "Table ID"
// @Success 200 {object} response.Data[dto.TableResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /tables/{table_id}/seat [delete]
func (handler *Handler) FinishTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FinishTable")
	defer scope.End()

	table, err := handler.service.Finish(ctx, chi.URLParam(r, constant.RequestParamTableID))
	if err != nil {
		handler.fail(w, scope, err, "failed to finish table")

		return
	}

	scope.AddEvent("Table finished")

	response.WithJSON(w, http.StatusOK, table)
}
