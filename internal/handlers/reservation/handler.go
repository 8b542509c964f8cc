package reservation

import (
	"net/http"

	"tablebook/infras/otel"
	"tablebook/internal/domains/reservation/model/dto"
	"tablebook/internal/domains/reservation/service"
	"tablebook/shared/constant"
	gDto "tablebook/shared/dto"
	"tablebook/shared/failure"
	"tablebook/shared/validator"
	"tablebook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const errSearchParams = "exactly one of date or mobile_number must be provided"

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.SearchReservations)
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.MethodNotAllowed(response.MethodNotAllowed(http.MethodGet, http.MethodPost))

		routerGroup.Route("/upcoming", func(upcoming chi.Router) {
			upcoming.Get("/", handler.ListReservations)
			upcoming.MethodNotAllowed(response.MethodNotAllowed(http.MethodGet))
		})

		routerGroup.Route("/{"+constant.RequestParamReservationID+"}", func(single chi.Router) {
			single.Get("/", handler.GetReservation)
			single.Put("/", handler.UpdateReservation)
			single.Delete("/", handler.DeleteReservation)
			single.MethodNotAllowed(response.MethodNotAllowed(http.MethodGet, http.MethodPut, http.MethodDelete))

			single.Route("/status", func(status chi.Router) {
				status.Put("/", handler.UpdateReservationStatus)
				status.MethodNotAllowed(response.MethodNotAllowed(http.MethodPut))
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

// SearchReservations finds reservations by date or by phone number.
// @Summary Search reservations
// @Description Exactly one of date or mobile_number must be given. A date search excludes finished
// @Description reservations and is ordered by time; a phone search matches digits only and is ordered by date.
// @Tags Reservation
// @Produce json
// @Param date query string false "Reservation date (YYYY-MM-DD)"
// @Param mobile_number query string false "Partial mobile number"
// @Success 200 {object} response.Data[[]dto.ReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /reservations [get]
func (handler *Handler) SearchReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchReservations")
	defer scope.End()

	query := r.URL.Query()
	hasDate := query.Has(constant.RequestParamDate)
	hasPhone := query.Has(constant.RequestParamMobileNumber)

	if hasDate == hasPhone {
		handler.fail(w, scope, failure.BadRequestFromString(errSearchParams), "invalid reservation search")

		return
	}

	var (
		reservations []dto.ReservationResponse
		err          error
	)

	if hasDate {
		reservations, err = handler.service.SearchByDate(ctx, query.Get(constant.RequestParamDate))
	} else {
		reservations, err = handler.service.SearchByPhone(ctx, query.Get(constant.RequestParamMobileNumber))
	}

	if err != nil {
		handler.fail(w, scope, err, "failed to search reservations")

		return
	}

	response.WithJSON(w, http.StatusOK, reservations)
}

// ListReservations lists reservations that are still booked or seated.
// @Summary List upcoming reservations
// @Tags Reservation
// @Produce json
// @Success 200 {object} response.Data[[]dto.ReservationResponse]
// @Failure 500 {object} response.Error
// @Router /reservations/upcoming [get]
func (handler *Handler) ListReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListReservations")
	defer scope.End()

	reservations, err := handler.service.List(ctx)
	if err != nil {
		handler.fail(w, scope, err, "failed to list reservations")

		return
	}

	response.WithJSON(w, http.StatusOK, reservations)
}

// CreateReservation books a new reservation.
// @Summary Create a reservation
// @Description Validates the payload against the booking rules and stores it with status booked.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body gDto.Envelope[dto.ReservationRequest] true "Reservation"
// @Success 201 {object} response.Data[dto.ReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /reservations [post]
func (handler *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	body := gDto.Envelope[dto.Payload]{}
	if err := validator.Decode(r.Body, &body); err != nil {
		handler.fail(w, scope, err, "failed to decode request body")

		return
	}

	reservation, err := handler.service.Create(ctx, body.Data)
	if err != nil {
		handler.fail(w, scope, err, "failed to create reservation")

		return
	}

	scope.AddEvent("Reservation created")

	response.WithJSON(w, http.StatusCreated, reservation)
}

// GetReservation reads a reservation by id.
// @Summary Get a reservation
// @Tags Reservation
// @Produce json
// @Param reservation_id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /reservations/{reservation_id} [get]
func (handler *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamReservationID)

	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		handler.fail(w, scope, err, "failed to get reservation")

		return
	}

	response.WithJSON(w, http.StatusOK, reservation)
}

// UpdateReservation replaces the editable fields of a booked reservation.
// @Summary Update a reservation
// @Description Only booked reservations can be edited. A status in the payload is ignored.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param reservation_id path string true "Reservation ID"
// @Param request body gDto.Envelope[dto.ReservationRequest] true "Reservation"
// @Success 200 {object} response.Data[dto.ReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /reservations/{reservation_id} [put]
func (handler *Handler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamReservationID)

	body := gDto.Envelope[dto.Payload]{}
	if err := validator.Decode(r.Body, &body); err != nil {
		handler.fail(w, scope, err, "failed to decode request body")

		return
	}

	reservation, err := handler.service.Update(ctx, id, body.Data)
	if err != nil {
		handler.fail(w, scope, err, "failed to update reservation")

		return
	}

	scope.AddEvent("Reservation updated")

	response.WithJSON(w, http.StatusOK, reservation)
}

// UpdateReservationStatus moves a reservation to another status.
// @Summary Update a reservation's status
// @Description Cancels a booked reservation. Seating and finishing go through the table seat routes.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param reservation_id path string true "Reservation ID"
// @Param request body gDto.Envelope[dto.StatusUpdate] true "Status"
// @Success 200 {object} response.Data[dto.ReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /reservations/{reservation_id}/status [put]
func (handler *Handler) UpdateReservationStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservationStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamReservationID)

	body := gDto.Envelope[dto.Payload]{}
	if err := validator.Decode(r.Body, &body); err != nil {
		handler.fail(w, scope, err, "failed to decode request body")

		return
	}

	reservation, err := handler.service.UpdateStatus(ctx, id, body.Data)
	if err != nil {
		handler.fail(w, scope, err, "failed to update reservation status")

		return
	}

	scope.AddEvent("Reservation status changed to " + reservation.Status)

	response.WithJSON(w, http.StatusOK, reservation)
}

// DeleteReservation destroys a reservation that is not seated at a table.
// @Summary Delete a reservation
// @Tags Reservation
// @Param reservation_id path string true "Reservation ID"
// @Success 204
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /reservations/{reservation_id} [delete]
func (handler *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamReservationID)

	if err := handler.service.Delete(ctx, id); err != nil {
		handler.fail(w, scope, err, "failed to delete reservation")

		return
	}

	scope.AddEvent("Reservation deleted")

	w.WriteHeader(http.StatusNoContent)
}
