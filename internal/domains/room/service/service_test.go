package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"edurooms/config"
	"edurooms/infras/otel/mocks"
	"edurooms/internal/domains/reservation/event"
	reservationMocks "edurooms/internal/domains/reservation/mocks"
	reservationModel "edurooms/internal/domains/reservation/model"
	roomMocks "edurooms/internal/domains/room/mocks"
	"edurooms/internal/domains/room/model"
	"edurooms/internal/domains/room/model/dto"
	"edurooms/internal/domains/room/service"
	cacheMocks "edurooms/shared/cache/mocks"
	"edurooms/shared/constant"
	gDto "edurooms/shared/dto"
	"edurooms/shared/failure"
	"edurooms/shared/timezone"
)

var errCacheMiss = errors.New("cache miss")

type missCache struct{}

func (missCache) Save(context.Context, string, any, int) error          { return nil }
func (missCache) Get(context.Context, string, any) error                { return errCacheMiss }
func (missCache) Delete(context.Context, string) error                  { return nil }
func (missCache) Clear(context.Context, string) error                   { return nil }
func (missCache) Increment(context.Context, string, int) (int64, error) { return 1, nil }

// invalidationCache misses every read and records the keys and patterns it is asked to drop.
type invalidationCache struct {
	missCache

	mu      sync.Mutex
	dropped []string
}

func (c *invalidationCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dropped = append(c.dropped, key)

	return nil
}

func (c *invalidationCache) Clear(_ context.Context, pattern string) error {
	return c.Delete(context.Background(), pattern)
}

func (c *invalidationCache) Dropped() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.dropped...)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) Publish(_ context.Context, events ...event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, events...)
}

func (p *recordingPublisher) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.events)
}

var (
	now      = time.Date(2025, 11, 5, 10, 15, 0, 0, timezone.GetLocation())
	adminCtx = context.WithValue(context.Background(), constant.ContextKeyUserEmail, "admin@edurooms.com")
)

type fixture struct {
	repo         *roomMocks.MockRoom
	reservations *reservationMocks.MockReservation
	publisher    *recordingPublisher
	svc          service.Room
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:         roomMocks.NewMockRoom(ctrl),
		reservations: reservationMocks.NewMockReservation(ctrl),
		publisher:    &recordingPublisher{},
	}

	f.svc = service.New(f.repo, f.reservations, f.publisher, &config.Config{}, missCache{}, mocks.NewOtel(), timezone.Fixed(now))

	return f
}

func ptr[T any](v T) *T {
	return &v
}

func aula101() model.Room {
	return model.Room{ID: 3, Name: "Aula 101", Location: "Planta 1", Capacity: 30, Status: model.StatusAvailable}
}

func TestRoomService_Create(t *testing.T) {
	req := dto.CreateRoomRequest{Name: "Aula 301", Location: "Planta 3", Capacity: 20}

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, room model.Room) (int64, error) {
				assert.Equal(t, model.StatusAvailable, room.Status)
				assert.Equal(t, "admin@edurooms.com", room.CreatedBy)

				return 9, nil
			})

		res, err := f.svc.Create(adminCtx, req)

		require.NoError(t, err)
		assert.Equal(t, int64(9), res.ID)
		assert.Equal(t, "available", res.Status)
	})

	t.Run("duplicated name", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Create(adminCtx, req)

		assert.True(t, failure.IsKind(err, failure.KindConflict))
	})
}

func TestRoomService_Get(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := roomMocks.NewMockRoom(ctrl)
		redisCache := cacheMocks.NewMockRedisCache(ctrl)

		svc := service.New(repo, reservationMocks.NewMockReservation(ctrl), &recordingPublisher{}, &config.Config{}, redisCache, mocks.NewOtel(), timezone.Fixed(now))

		redisCache.EXPECT().
			Get(gomock.Any(), "room:get:3", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, _ := value.(*dto.RoomResponse)
				res.ID = 3
				res.Name = "Aula 101"

				return nil
			})

		res, err := svc.Get(context.Background(), 3)

		require.NoError(t, err)
		assert.Equal(t, "Aula 101", res.Name)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := f.svc.Get(context.Background(), 3)

		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}

func TestRoomService_Update(t *testing.T) {
	expectTx := func(f fixture) {
		f.repo.EXPECT().
			RunInTx(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(context.Context, *sqlx.Tx) error) error {
				return fn(ctx, nil)
			})
	}

	t.Run("maintenance cancels confirmed reservations", func(t *testing.T) {
		f := newFixture(t)

		cancelled := []reservationModel.Reservation{
			{ID: 1, RoomID: 3, Status: reservationModel.StatusCancelled},
			{ID: 2, RoomID: 3, Status: reservationModel.StatusCancelled},
		}

		expectTx(f)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(aula101(), nil)
		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, "maintenance", fields[model.FieldStatus])

				return 1, nil
			})
		f.reservations.EXPECT().CancelConfirmedByRoomTx(gomock.Any(), gomock.Any(), int64(3), "admin@edurooms.com", now).Return(cancelled, nil)

		res, err := f.svc.Update(adminCtx, dto.UpdateRoomRequest{Status: ptr("maintenance")}, 3)

		require.NoError(t, err)
		assert.Equal(t, "maintenance", res.Status)
		assert.Equal(t, 2, res.CancelledReservations)
		assert.Eventually(t, func() bool { return f.publisher.Len() == 2 }, time.Second, 10*time.Millisecond)
	})

	t.Run("maintenance drops cached reservation reads before returning", func(t *testing.T) {
		f := newFixture(t)
		redisCache := &invalidationCache{}
		svc := service.New(f.repo, f.reservations, f.publisher, &config.Config{}, redisCache, mocks.NewOtel(), timezone.Fixed(now))

		expectTx(f)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(aula101(), nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.reservations.EXPECT().
			CancelConfirmedByRoomTx(gomock.Any(), gomock.Any(), int64(3), gomock.Any(), gomock.Any()).
			Return([]reservationModel.Reservation{{ID: 5, RoomID: 3, Status: reservationModel.StatusCancelled}}, nil)

		_, err := svc.Update(adminCtx, dto.UpdateRoomRequest{Status: ptr("maintenance")}, 3)

		require.NoError(t, err)

		dropped := redisCache.Dropped()
		assert.Contains(t, dropped, "reservation:get:5")
		assert.Contains(t, dropped, "reservation:list:*")
	})

	t.Run("already in maintenance does not cascade", func(t *testing.T) {
		f := newFixture(t)

		room := aula101()
		room.Status = model.StatusMaintenance

		expectTx(f)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room, nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)

		res, err := f.svc.Update(adminCtx, dto.UpdateRoomRequest{Status: ptr("maintenance")}, 3)

		require.NoError(t, err)
		assert.Zero(t, res.CancelledReservations)
	})

	t.Run("rename to a taken name", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Update(adminCtx, dto.UpdateRoomRequest{Name: ptr("Aula 102")}, 3)

		assert.True(t, failure.IsKind(err, failure.KindConflict))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		expectTx(f)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := f.svc.Update(adminCtx, dto.UpdateRoomRequest{Capacity: ptr(35)}, 3)

		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}

func TestRoomService_Delete(t *testing.T) {
	expectTx := func(f fixture) {
		f.repo.EXPECT().
			RunInTx(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(context.Context, *sqlx.Tx) error) error {
				return fn(ctx, nil)
			})
	}

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)

		expectTx(f)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(aula101(), nil)
		f.reservations.EXPECT().
			ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup) (bool, error) {
				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "reservations.room_id = :room_id")
				assert.Equal(t, reservationModel.StatusConfirmed, args[reservationModel.FieldStatus])

				return false, nil
			})
		f.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, f.svc.Delete(adminCtx, 3))
	})

	t.Run("confirmed reservations block deletion", func(t *testing.T) {
		f := newFixture(t)

		expectTx(f)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(aula101(), nil)
		f.reservations.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

		err := f.svc.Delete(adminCtx, 3)

		assert.True(t, failure.IsKind(err, failure.KindValidation))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		expectTx(f)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		err := f.svc.Delete(adminCtx, 3)

		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})

	t.Run("delete failure", func(t *testing.T) {
		f := newFixture(t)

		expectTx(f)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(aula101(), nil)
		f.reservations.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		err := f.svc.Delete(adminCtx, 3)

		require.Error(t, err)
		assert.Equal(t, 500, failure.GetCode(err))
	})
}
