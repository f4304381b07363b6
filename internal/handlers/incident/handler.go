package incident

import (
	"net/http"

	"edurooms/infras/otel"
	"edurooms/internal/domains/incident/model"
	"edurooms/internal/domains/incident/model/dto"
	"edurooms/internal/domains/incident/service"
	"edurooms/shared/constant"
	gDto "edurooms/shared/dto"
	"edurooms/shared/validator"
	"edurooms/transport/http/request"
	"edurooms/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Incident
	otel    otel.Otel
}

func New(service service.Incident, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/incidents", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateIncident)
		routerGroup.Get("/", handler.GetIncidents)
		routerGroup.Get("/room/{room_id}", handler.GetIncidentsByRoom)
		routerGroup.Get("/{id}", handler.GetIncidentByID)
		routerGroup.Patch("/{id}", handler.UpdateIncidentStatus)
	})
}

// CreateIncident reports a problem in a room.
// @Summary Report an incident
// @Tags Incident
// @Accept json
// @Produce json
// @Param request body dto.CreateIncidentRequest true "Create Incident Request"
// @Success 201 {object} response.Data[dto.IncidentResponse] "Incident reported successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/incidents [post]
// @Security BearerAuth
func (handler *Handler) CreateIncident(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateIncident")
	defer scope.End()

	req := dto.CreateIncidentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	incident, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create incident")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Incident reported successfully")

	response.WithJSON(w, http.StatusCreated, "Incident reported successfully", incident)
}

// GetIncidents lists incidents.
// @Summary Get all incidents
// @Tags Incident
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status" Enums(pending, in_review, resolved)
// @Param type query string false "Filter by type" Enums(electrical, it, structural, cleaning, other)
// @Param room_id query int false "Filter by room"
// @Success 200 {object} response.Data[dto.GetIncidentsResponse] "List of incidents"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/incidents [get]
func (handler *Handler) GetIncidents(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetIncidents")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	roomID, err := request.QueryID(r, constant.RequestParamRoomID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	filterGroup := request.Filters(r, model.TableName, []string{model.FieldStatus, model.FieldType}, nil)
	if roomID > 0 {
		filterGroup.Add(gDto.Filter{Field: model.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	incidents, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get incidents")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Incidents retrieved successfully", incidents)
}

// GetIncidentsByRoom lists the incidents of one room.
// @Summary Get incidents of a room
// @Tags Incident
// @Produce json
// @Param room_id path int true "Room ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetIncidentsResponse] "List of incidents"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/incidents/room/{room_id} [get]
func (handler *Handler) GetIncidentsByRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetIncidentsByRoom")
	defer scope.End()

	roomID, err := request.PathID(r, constant.RequestParamRoomID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	incidents, err := handler.service.GetByRoom(ctx, roomID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("room_id", roomID).Msg("failed to get incidents by room")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Incidents retrieved successfully", incidents)
}

// GetIncidentByID retrieves an incident.
// @Summary Get an incident by ID
// @Tags Incident
// @Produce json
// @Param id path int true "Incident ID"
// @Success 200 {object} response.Data[dto.IncidentResponse] "Incident details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/incidents/{id} [get]
func (handler *Handler) GetIncidentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetIncidentByID")
	defer scope.End()

	id, err := request.PathID(r, constant.RequestParamID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	incident, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("incident_id", id).Msg("failed to get incident by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Incident retrieved successfully", incident)
}

// UpdateIncidentStatus moves an incident through its review workflow.
// @Summary Update incident status
// @Tags Incident
// @Accept json
// @Produce json
// @Param id path int true "Incident ID"
// @Param request body dto.UpdateIncidentStatusRequest true "Update Incident Status Request"
// @Success 200 {object} response.Message "Incident updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/incidents/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateIncidentStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateIncidentStatus")
	defer scope.End()

	id, err := request.PathID(r, constant.RequestParamID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.UpdateIncidentStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("incident_id", id).Msg("failed to update incident")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Incident updated successfully")

	response.WithMessage(w, http.StatusOK, "Incident updated successfully")
}
