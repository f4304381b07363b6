package reservation

import (
	"net/http"

	"edurooms/infras/otel"
	"edurooms/internal/domains/reservation/model"
	"edurooms/internal/domains/reservation/model/dto"
	"edurooms/internal/domains/reservation/service"
	"edurooms/shared/constant"
	gDto "edurooms/shared/dto"
	"edurooms/shared/validator"
	"edurooms/transport/http/request"
	"edurooms/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

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
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/availability", handler.GetAvailability)
		routerGroup.Get("/mine", handler.GetMyReservations)
		routerGroup.Get("/admin/all", handler.GetAllReservations)
		routerGroup.Post("/admin/complete-expired", handler.CompleteExpired)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Delete("/{id}", handler.CancelReservation)
		routerGroup.Put("/{id}/transfer", handler.TransferReservation)
	})
}

// CreateReservation books a room for a time window.
// @Summary Create a reservation
// @Description Book a room on an open day that is not a holiday. Overlaps with the room or the caller are rejected.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} response.Data[dto.ReservationResponse] "Reservation created successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [post]
// @Security BearerAuth
func (handler *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Int64("room_id", req.RoomID).Str("date", req.Date).Msg("failed to create reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation created successfully")

	response.WithJSON(w, http.StatusCreated, "Reservation created successfully", reservation)
}

// GetAvailability lists free and occupied slots of a room on a date.
// @Summary Get room availability
// @Tags Reservation
// @Produce json
// @Param room_id query int true "Room ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	roomID, err := request.QueryID(r, constant.RequestParamRoomID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.AvailabilityRequest{
		RoomID: roomID,
		Date:   r.URL.Query().Get(constant.RequestParamDate),
	}

	availability, err := handler.service.Availability(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Int64("room_id", roomID).Str("date", req.Date).Msg("failed to get availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Availability retrieved successfully", availability)
}

// GetMyReservations lists the reservations of the caller.
// Past confirmed reservations of the caller are completed first.
// @Summary Get my reservations
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status" Enums(confirmed, cancelled, completed)
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetReservationsResponse] "List of reservations"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := request.Filters(r, model.TableName, []string{model.FieldStatus, model.FieldDate}, nil)

	reservations, err := handler.service.ListMine(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get own reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Reservations retrieved successfully", reservations)
}

// GetAllReservations lists every reservation. Past confirmed reservations are completed first.
// @Summary Get all reservations
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status" Enums(confirmed, cancelled, completed)
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Param room_id query int false "Filter by room"
// @Param user_id query int false "Filter by user"
// @Success 200 {object} response.Data[dto.GetReservationsResponse] "List of reservations"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/admin/all [get]
// @Security BearerAuth
func (handler *Handler) GetAllReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAllReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := request.Filters(r, model.TableName, []string{model.FieldStatus, model.FieldDate}, nil)

	for _, field := range []string{model.FieldRoomID, model.FieldUserID} {
		id, err := request.QueryID(r, field)
		if err != nil {
			scope.TraceError(err)
			response.WithError(w, err)

			return
		}

		if id > 0 {
			filterGroup.Add(gDto.Filter{Field: field, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName})
		}
	}

	reservations, err := handler.service.ListAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Reservations retrieved successfully", reservations)
}

// CompleteExpired marks every past confirmed reservation as completed.
// @Summary Complete expired reservations
// @Tags Reservation
// @Produce json
// @Success 200 {object} response.Data[dto.CompleteExpiredResponse] "Expired reservations completed"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/admin/complete-expired [post]
// @Security BearerAuth
func (handler *Handler) CompleteExpired(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompleteExpired")
	defer scope.End()

	completed, err := handler.service.CompleteExpired(ctx, 0)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete expired reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Expired reservations completed", dto.CompleteExpiredResponse{Completed: completed})
}

// GetReservationByID retrieves a reservation owned by the caller, or any reservation for administrators.
// @Summary Get a reservation by ID
// @Tags Reservation
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Reservation details"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id, err := request.PathID(r, constant.RequestParamID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("reservation_id", id).Msg("failed to get reservation by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Reservation retrieved successfully", reservation)
}

// CancelReservation cancels a reservation of the caller. Administrators may cancel any reservation.
// @Summary Cancel a reservation
// @Tags Reservation
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} response.Message "Reservation cancelled successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [delete]
// @Security BearerAuth
func (handler *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelReservation")
	defer scope.End()

	id, err := request.PathID(r, constant.RequestParamID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Int64("reservation_id", id).Msg("failed to cancel reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation cancelled successfully")

	response.WithMessage(w, http.StatusOK, "Reservation cancelled successfully")
}

// TransferReservation moves a confirmed reservation to another room.
// @Summary Transfer a reservation
// @Description Move a confirmed reservation to another available room keeping its date and times.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path int true "Reservation ID"
// @Param request body dto.TransferReservationRequest true "Transfer Reservation Request"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Reservation transferred successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/transfer [put]
// @Security BearerAuth
func (handler *Handler) TransferReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TransferReservation")
	defer scope.End()

	id, err := request.PathID(r, constant.RequestParamID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.TransferReservationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Transfer(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Int64("reservation_id", id).Int64("room_id", req.RoomID).Msg("failed to transfer reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation transferred successfully")

	response.WithJSON(w, http.StatusOK, "Reservation transferred successfully", reservation)
}
