package service

import (
	"context"
	"fmt"

	"edurooms/config"
	"edurooms/infras/otel"
	"edurooms/internal/domains/incident/model"
	"edurooms/internal/domains/incident/model/dto"
	"edurooms/internal/domains/incident/repository"
	roomModel "edurooms/internal/domains/room/model"
	roomRepo "edurooms/internal/domains/room/repository"
	"edurooms/shared"
	"edurooms/shared/cache"
	"edurooms/shared/constant"
	gDto "edurooms/shared/dto"
	"edurooms/shared/failure"
	"edurooms/shared/timezone"

	"github.com/rs/zerolog/log"
)

const cacheListIncident = "incident:list"

var sortableColumns = []string{model.FieldStatus, model.FieldType, constant.FieldCreatedAt}

type Incident interface {
	Create(ctx context.Context, req dto.CreateIncidentRequest) (dto.IncidentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetIncidentsResponse, error)
	GetByRoom(ctx context.Context, roomID int64, req gDto.QueryParams) (dto.GetIncidentsResponse, error)
	Get(ctx context.Context, id int64) (dto.IncidentResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateIncidentStatusRequest, id int64) error
}

type serviceImpl struct {
	repo  repository.Incident
	rooms roomRepo.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	now   timezone.Clock
}

func New(repo repository.Incident, rooms roomRepo.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, now timezone.Clock) Incident {
	return &serviceImpl{
		repo:  repo,
		rooms: rooms,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		now:   now,
	}
}

func byID(id int64) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateIncidentRequest) (res dto.IncidentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID := shared.UserIDFromContext(ctx)
	if userID <= 0 {
		return res, failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	room, err := s.rooms.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Int64("room_id", req.RoomID).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == 0 {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	incident := req.ToModel(userID, shared.UsernameFromContext(ctx), s.now())

	id, err := s.repo.Insert(ctx, incident)
	if err != nil {
		log.Error().Err(err).Int64("room_id", req.RoomID).Msg("failed to create incident")

		return res, fmt.Errorf("failed to create incident: %w", err)
	}

	incident.ID = id
	incident.RoomName = room.Name
	res.FromModel(incident)

	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheListIncident)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetIncidentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.RestrictSort(constant.FieldCreatedAt, sortableColumns...)
	req.SortBy = model.TableName + "." + req.SortBy

	cacheKey := shared.BuildCacheKeyWithQuery(cacheListIncident, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for incidents")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count incidents")

		return res, fmt.Errorf("failed to count incidents: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get incidents")

		return res, fmt.Errorf("failed to get incidents: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save incidents to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByRoom(ctx context.Context, roomID int64, req gDto.QueryParams) (dto.GetIncidentsResponse, error) {
	return s.GetAll(ctx, req, shared.FilterByID(roomID, model.FieldRoomID, model.TableName))
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.IncidentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	incident, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get incident")

		return res, fmt.Errorf("failed to get incident: %w", err)
	}

	if incident.ID == 0 {
		return res, failure.NotFound("incident not found") // nolint:wrapcheck
	}

	res.FromModel(incident)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateIncidentStatusRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	affected, err := s.repo.Update(ctx, shared.TransformFields(req, shared.UsernameFromContext(ctx)), byID(id))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update incident")

		return fmt.Errorf("failed to update incident: %w", err)
	}

	if affected == 0 {
		return failure.NotFound("incident not found") // nolint:wrapcheck
	}

	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheListIncident)

	return nil
}
