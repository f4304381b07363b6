package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"edurooms/config"
	"edurooms/infras/metrics"
	"edurooms/infras/otel"
	calendar "edurooms/internal/domains/calendar/service"
	"edurooms/internal/domains/reservation/event"
	"edurooms/internal/domains/reservation/model"
	"edurooms/internal/domains/reservation/model/dto"
	"edurooms/internal/domains/reservation/repository"
	"edurooms/internal/domains/reservation/schedule"
	roomModel "edurooms/internal/domains/room/model"
	roomRepo "edurooms/internal/domains/room/repository"
	userModel "edurooms/internal/domains/user/model"
	userRepo "edurooms/internal/domains/user/repository"
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
	cacheGetReservation  = "reservation:get"
	cacheListReservation = "reservation:list"
)

const (
	transitionCreated     = "created"
	transitionCancelled   = "cancelled"
	transitionCompleted   = "completed"
	transitionTransferred = "transferred"

	rejectDate         = "date"
	rejectInvalid      = "invalid"
	rejectRoom         = "room"
	rejectRoomConflict = "room_conflict"
	rejectUserConflict = "user_conflict"
)

var sortableColumns = []string{model.FieldDate, model.FieldStartTime, model.FieldStatus, constant.FieldCreatedAt}

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	Cancel(ctx context.Context, id int64) error
	CompleteExpired(ctx context.Context, userID int64) (int, error)
	Transfer(ctx context.Context, id int64, req dto.TransferReservationRequest) (dto.ReservationResponse, error)
	Get(ctx context.Context, id int64) (dto.ReservationResponse, error)
	ListMine(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	ListAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Availability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	repo        repository.Reservation
	rooms       roomRepo.Room
	users       userRepo.User
	eligibility calendar.Eligibility
	publisher   event.Publisher
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	now         timezone.Clock
}

func New(
	repo repository.Reservation,
	rooms roomRepo.Room,
	users userRepo.User,
	eligibility calendar.Eligibility,
	publisher event.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	now timezone.Clock,
) Reservation {
	return &serviceImpl{
		repo:        repo,
		rooms:       rooms,
		users:       users,
		eligibility: eligibility,
		publisher:   publisher,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		now:         now,
	}
}

func byID(id int64) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID := shared.UserIDFromContext(ctx)
	if userID <= 0 {
		return res, failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	date, err := s.eligibility.ValidateBookingDate(ctx, req.Date)
	if err != nil {
		metrics.IncReservationRejection(rejectDate)

		return res, err // nolint:wrapcheck
	}

	slot, err := schedule.ParseSlot(req.StartTime, req.EndTime)
	if err != nil {
		metrics.IncReservationRejection(rejectInvalid)

		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if req.RoomID <= 0 {
		metrics.IncReservationRejection(rejectInvalid)

		return res, failure.BadRequestFromString("room_id must be a positive integer") // nolint:wrapcheck
	}

	now := s.now()
	actor := shared.UsernameFromContext(ctx)
	reservation := req.ToModel(userID, schedule.DayOf(date), slot, now, actor)

	err = s.repo.RunInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		room, err := s.lockBookableRoom(ctx, tx, req.RoomID)
		if err != nil {
			return err
		}

		if _, err := s.users.GetForUpdateTx(ctx, tx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName)); err != nil {
			return fmt.Errorf("failed to lock user: %w", err)
		}

		roomQuery := model.OverlapQuery{Scope: model.ScopeRoom, ScopeID: req.RoomID, Date: reservation.Date, Slot: slot}
		if err := s.checkOverlap(ctx, tx, roomQuery, rejectRoomConflict, "the room is already booked for that time"); err != nil {
			return err
		}

		userQuery := model.OverlapQuery{Scope: model.ScopeUser, ScopeID: userID, Date: reservation.Date, Slot: slot}
		if err := s.checkOverlap(ctx, tx, userQuery, rejectUserConflict, "you already have a reservation that overlaps that time"); err != nil {
			return err
		}

		id, err := s.repo.InsertTx(ctx, tx, reservation)
		if err != nil {
			return translateWriteError(err, "failed to create reservation")
		}

		reservation.ID = id
		reservation.RoomName = room.Name

		return nil
	})
	if err != nil {
		log.Error().Err(err).Int64("room_id", req.RoomID).Int64("user_id", userID).Msg("failed to create reservation")

		return res, err // nolint:wrapcheck
	}

	metrics.IncReservationTransition(transitionCreated)
	s.afterTransition(ctx, []event.Event{event.New(event.TypeCreated, reservation, actor, now)})

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == 0 {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if !s.ownerOrAdmin(ctx, reservation) {
		return failure.Forbidden("you are not allowed to cancel this reservation") // nolint:wrapcheck
	}

	actor := shared.UsernameFromContext(ctx)
	fields := shared.TransformFields(dto.UpdateStatusRequest{Status: string(model.StatusCancelled)}, actor)

	if _, err = s.repo.Update(ctx, fields, byID(id)); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to cancel reservation")

		return fmt.Errorf("failed to cancel reservation: %w", err)
	}

	reservation.Status = model.StatusCancelled

	metrics.IncReservationTransition(transitionCancelled)
	s.afterTransition(ctx, []event.Event{event.New(event.TypeCancelled, reservation, actor, s.now())})

	return nil
}

// CompleteExpired moves confirmed reservations dated before today to completed. It is idempotent.
// A positive userID restricts the sweep to that user.
func (s *serviceImpl) CompleteExpired(ctx context.Context, userID int64) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CompleteExpired")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := s.now()
	today := schedule.DayOf(now).String()

	actor := constant.ContextSystem
	if shared.UserIDFromContext(ctx) > 0 {
		actor = shared.UsernameFromContext(ctx)
	}

	completed, err := s.repo.CompleteExpired(ctx, today, userID, actor, now)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("failed to complete expired reservations")

		return 0, fmt.Errorf("failed to complete expired reservations: %w", err)
	}

	if len(completed) == 0 {
		return 0, nil
	}

	events := make([]event.Event, len(completed))
	for i, reservation := range completed {
		events[i] = event.New(event.TypeCompleted, reservation, actor, now)
	}

	log.Info().Int("completed", len(completed)).Int64("user_id", userID).Msg("expired reservations completed")

	metrics.AddReservationTransitions(transitionCompleted, int64(len(completed)))
	s.afterTransition(ctx, events)

	return len(completed), nil
}

func (s *serviceImpl) Transfer(ctx context.Context, id int64, req dto.TransferReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transfer")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !userModel.IsAdmin(shared.RoleFromContext(ctx)) {
		return res, failure.ForbiddenError // nolint:wrapcheck
	}

	if req.RoomID <= 0 {
		return res, failure.BadRequestFromString("room_id must be a positive integer") // nolint:wrapcheck
	}

	reservation, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == 0 {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if reservation.RoomID == req.RoomID {
		return res, failure.BadRequestFromString("the reservation is already assigned to that room") // nolint:wrapcheck
	}

	if reservation.Status != model.StatusConfirmed {
		return res, failure.BadRequestFromString("only confirmed reservations can be transferred") // nolint:wrapcheck
	}

	actor := shared.UsernameFromContext(ctx)
	previousRoom := reservation.RoomID

	err = s.repo.RunInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		room, err := s.lockBookableRoom(ctx, tx, req.RoomID)
		if err != nil {
			return err
		}

		query := model.OverlapQuery{
			Scope:     model.ScopeRoom,
			ScopeID:   req.RoomID,
			Date:      reservation.Date,
			Slot:      reservation.Slot(),
			ExcludeID: reservation.ID,
		}
		if err := s.checkOverlap(ctx, tx, query, rejectRoomConflict, "the target room is already booked for that time"); err != nil {
			return err
		}

		filter := byID(reservation.ID)
		filter.Add(repository.ConfirmedFilter())

		affected, err := s.repo.UpdateTx(ctx, tx, shared.TransformFields(dto.UpdateRoomRequest{RoomID: req.RoomID}, actor), filter)
		if err != nil {
			return translateWriteError(err, "failed to transfer reservation")
		}

		if affected == 0 {
			return failure.BadRequestFromString("only confirmed reservations can be transferred") // nolint:wrapcheck
		}

		reservation.RoomID = req.RoomID
		reservation.RoomName = room.Name

		return nil
	})
	if err != nil {
		log.Error().Err(err).Int64("id", id).Int64("room_id", req.RoomID).Msg("failed to transfer reservation")

		return res, err // nolint:wrapcheck
	}

	evt := event.New(event.TypeTransferred, reservation, actor, s.now())
	evt.PreviousRoom = previousRoom

	metrics.IncReservationTransition(transitionTransferred)
	s.afterTransition(ctx, []event.Event{evt})

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetReservation, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		if !s.ownerOrAdmin(ctx, model.Reservation{UserID: res.UserID}) {
			return dto.ReservationResponse{}, failure.ResourceRestrictedError // nolint:wrapcheck
		}

		return res, nil
	}

	reservation, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == 0 {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if !s.ownerOrAdmin(ctx, reservation) {
		return res, failure.ResourceRestrictedError // nolint:wrapcheck
	}

	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

// ListMine completes the caller's expired reservations before listing them. A failed sweep is
// logged and the listing still runs.
func (s *serviceImpl) ListMine(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID := shared.UserIDFromContext(ctx)
	if userID <= 0 {
		return res, failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	if _, err := s.CompleteExpired(ctx, userID); err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("listing without completing expired reservations")
	}

	filter.Add(gDto.Filter{Field: model.FieldUserID, Value: userID, Operator: gDto.FilterOperatorEq, Table: model.TableName})

	return s.list(ctx, req, filter)
}

// ListAll completes every expired reservation before listing.
func (s *serviceImpl) ListAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err := s.CompleteExpired(ctx, 0); err != nil {
		log.Warn().Err(err).Msg("listing without completing expired reservations")
	}

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	req.RestrictSort(model.FieldDate, sortableColumns...)
	req.SortBy = model.TableName + "." + req.SortBy

	cacheKey := shared.BuildCacheKeyWithQuery(cacheListReservation, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Availability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.RoomID <= 0 {
		return res, failure.BadRequestFromString("room_id must be a positive integer") // nolint:wrapcheck
	}

	date, err := s.eligibility.ValidateBookingDate(ctx, req.Date)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	room, err := s.rooms.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Int64("room_id", req.RoomID).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == 0 {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if room.Status == roomModel.StatusMaintenance {
		return res, failure.BadRequestFromString("the room is under maintenance") // nolint:wrapcheck
	}

	day := schedule.DayOf(date)

	reservations, err := s.repo.ListConfirmedByRoomDate(ctx, req.RoomID, day.String())
	if err != nil {
		log.Error().Err(err).Int64("room_id", req.RoomID).Msg("failed to list reservations")

		return res, fmt.Errorf("failed to list reservations: %w", err)
	}

	booked := make([]schedule.Slot, len(reservations))
	for i, reservation := range reservations {
		booked[i] = reservation.Slot()
	}

	free, occupied := schedule.Compose(schedule.GenerateSlots(day.Time, s.now()), booked)

	res.FromSlots(req.RoomID, day, free, occupied)

	return res, nil
}

func (s *serviceImpl) ownerOrAdmin(ctx context.Context, reservation model.Reservation) bool {
	return reservation.UserID == shared.UserIDFromContext(ctx) || userModel.IsAdmin(shared.RoleFromContext(ctx))
}

// lockBookableRoom locks the room row for the rest of tx and rejects rooms that cannot take bookings.
func (s *serviceImpl) lockBookableRoom(ctx context.Context, tx *sqlx.Tx, roomID int64) (roomModel.Room, error) {
	room, err := s.rooms.GetForUpdateTx(ctx, tx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return room, fmt.Errorf("failed to lock room: %w", err)
	}

	if room.ID == 0 {
		return room, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if !room.Bookable() {
		metrics.IncReservationRejection(rejectRoom)

		return room, failure.BadRequestFromString("the room is under maintenance") // nolint:wrapcheck
	}

	return room, nil
}

func (s *serviceImpl) checkOverlap(ctx context.Context, tx *sqlx.Tx, query model.OverlapQuery, reason, message string) error {
	overlap, err := s.repo.HasOverlap(ctx, tx, query)
	if err != nil {
		return fmt.Errorf("failed to check overlapping reservations: %w", err)
	}

	if overlap {
		metrics.IncReservationRejection(reason)

		return failure.Conflict(message) // nolint:wrapcheck
	}

	return nil
}

// translateWriteError maps exclusion-constraint violations raised by concurrent bookings to a conflict.
func translateWriteError(err error, message string) error {
	if gRepo.IsPqError(err, constant.PqErrorCodeExclusionViolation) {
		metrics.IncReservationRejection(rejectRoomConflict)

		return failure.Conflict("the requested time overlaps an existing reservation") // nolint:wrapcheck
	}

	return fmt.Errorf("%s: %w", message, err)
}

// afterTransition drops the cached reads of the touched reservations before returning, so the
// caller's next read sees the new state. Events are published in the background.
func (s *serviceImpl) afterTransition(ctx context.Context, events []event.Event) {
	ctx = context.WithoutCancel(ctx)

	for _, evt := range events {
		if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetReservation, evt.ReservationID)); err != nil {
			log.Error().Err(err).Int64("id", evt.ReservationID).Msg("failed to delete reservation from cache")
		}
	}

	shared.InvalidateCaches(ctx, s.cache, cacheListReservation)

	go s.publisher.Publish(ctx, events...)
}
