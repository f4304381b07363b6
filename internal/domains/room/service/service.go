package service

import (
	"context"
	"fmt"

	"edurooms/config"
	"edurooms/infras/metrics"
	"edurooms/infras/otel"
	"edurooms/internal/domains/reservation/event"
	reservationModel "edurooms/internal/domains/reservation/model"
	reservationRepo "edurooms/internal/domains/reservation/repository"
	"edurooms/internal/domains/room/model"
	"edurooms/internal/domains/room/model/dto"
	"edurooms/internal/domains/room/repository"
	"edurooms/shared"
	"edurooms/shared/cache"
	"edurooms/shared/constant"
	gDto "edurooms/shared/dto"
	"edurooms/shared/failure"
	gRepo "edurooms/shared/repository"
	"edurooms/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
	cacheCountRoom  = "room:count"

	// shared with the reservation service, whose reads embed room names and statuses
	cacheGetReservation  = "reservation:get"
	cacheListReservation = "reservation:list"
)

var sortableColumns = []string{model.FieldName, model.FieldCapacity, model.FieldLocation, model.FieldStatus, constant.FieldCreatedAt}

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id int64) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id int64) (dto.UpdateRoomResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo         repository.Room
	reservations reservationRepo.Reservation
	publisher    event.Publisher
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	now          timezone.Clock
}

func New(
	repo repository.Room,
	reservations reservationRepo.Reservation,
	publisher event.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	now timezone.Clock,
) Room {
	return &serviceImpl{
		repo:         repo,
		reservations: reservations,
		publisher:    publisher,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		now:          now,
	}
}

func byID(id int64) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureUniqueName(ctx, req.Name, 0); err != nil {
		return res, err
	}

	room := req.ToModel(shared.UsernameFromContext(ctx), s.now())

	id, err := s.repo.Insert(ctx, room)
	if err != nil {
		if gRepo.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict("a room with that name already exists") // nolint:wrapcheck
		}

		log.Error().Err(err).Str("name", req.Name).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	room.ID = id
	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.RestrictSort(model.FieldName, sortableColumns...)
	if req.SortDir == gDto.SortDirDesc && req.SortBy == model.FieldName {
		req.SortDir = gDto.SortDirAsc
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoom, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == 0 {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

// Update applies a partial update. Moving a room into maintenance cancels its confirmed
// reservations in the same transaction.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id int64) (res dto.UpdateRoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Name != nil {
		if err = s.ensureUniqueName(ctx, *req.Name, id); err != nil {
			return res, err
		}
	}

	actor := shared.UsernameFromContext(ctx)
	now := s.now()

	var (
		room      model.Room
		cancelled []reservationModel.Reservation
	)

	err = s.repo.RunInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.repo.GetForUpdateTx(ctx, tx, byID(id))
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if current.ID == 0 {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		if _, err := s.repo.UpdateTx(ctx, tx, shared.TransformFields(req, actor), byID(id)); err != nil {
			if gRepo.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
				return failure.Conflict("a room with that name already exists") // nolint:wrapcheck
			}

			return fmt.Errorf("failed to update room: %w", err)
		}

		if req.EntersMaintenance(current.Status) {
			cancelled, err = s.reservations.CancelConfirmedByRoomTx(ctx, tx, id, actor, now)
			if err != nil {
				return fmt.Errorf("failed to cancel room reservations: %w", err)
			}
		}

		room = applyUpdate(current, req)

		return nil
	})
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update room")

		return res, err // nolint:wrapcheck
	}

	res.FromModel(room)
	res.CancelledReservations = len(cancelled)

	if len(cancelled) > 0 {
		log.Info().Int64("room_id", id).Int("cancelled", len(cancelled)).Msg("room entered maintenance, reservations cancelled")

		events := make([]event.Event, len(cancelled))
		for i, reservation := range cancelled {
			events[i] = event.New(event.TypeCancelled, reservation, actor, now)
		}

		metrics.AddReservationTransitions("cancelled", int64(len(cancelled)))

		c := context.WithoutCancel(ctx)

		for _, reservation := range cancelled {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, reservation.ID)); err != nil {
				log.Error().Err(err).Int64("id", reservation.ID).Msg("failed to delete reservation from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheListReservation)

		go s.publisher.Publish(c, events...)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
		shared.InvalidateCaches(c, s.cache, cacheListReservation)
	}()

	return res, nil
}

// Delete removes a room that holds no confirmed reservations. Its cancelled and completed
// reservations go with it. The room row stays locked while the check runs so no booking lands
// in between.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.repo.RunInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		room, err := s.repo.GetForUpdateTx(ctx, tx, byID(id))
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if room.ID == 0 {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		filter := shared.FilterByID(id, reservationModel.FieldRoomID, reservationModel.TableName)
		filter.Add(reservationRepo.ConfirmedFilter())

		busy, err := s.reservations.ExistTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to check room reservations: %w", err)
		}

		if busy {
			return failure.BadRequestFromString("the room has confirmed reservations") // nolint:wrapcheck
		}

		if err := s.repo.DeleteTx(ctx, tx, byID(id)); err != nil {
			return fmt.Errorf("failed to delete room: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete room")

		return err // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
		shared.InvalidateCaches(c, s.cache, cacheListReservation)
	}()

	return nil
}

func (s *serviceImpl) ensureUniqueName(ctx context.Context, name string, excludeID int64) error {
	taken, err := s.repo.Exist(ctx, repository.NameFilter(name, excludeID))
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("failed to check room name")

		return fmt.Errorf("failed to check room name: %w", err)
	}

	if taken {
		return failure.Conflict("a room with that name already exists") // nolint:wrapcheck
	}

	return nil
}

func applyUpdate(room model.Room, req dto.UpdateRoomRequest) model.Room {
	if req.Name != nil {
		room.Name = *req.Name
	}

	if req.Location != nil {
		room.Location = *req.Location
	}

	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}

	if req.QRCode != nil {
		room.QRCode = req.QRCode
	}

	if req.Status != nil {
		room.Status = model.Status(*req.Status)
	}

	return room
}
