package reservation_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	otelMocks "edurooms/infras/otel/mocks"
	"edurooms/internal/domains/reservation/model/dto"
	"edurooms/internal/domains/reservation/schedule"
	"edurooms/internal/handlers/reservation"
	"edurooms/shared/constant"
	gDto "edurooms/shared/dto"
	"edurooms/shared/failure"
)

type fakeService struct {
	created     []dto.CreateReservationRequest
	cancelled   []int64
	completedBy []int64
	transferred map[int64]int64
	available   dto.AvailabilityRequest
	listedMine  gDto.FilterGroup
	createErr   error
}

func (f *fakeService) Create(_ context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error) {
	if f.createErr != nil {
		return dto.ReservationResponse{}, f.createErr
	}

	f.created = append(f.created, req)

	return dto.ReservationResponse{ID: 11, RoomID: req.RoomID, Date: req.Date, StartTime: req.StartTime, EndTime: req.EndTime, Status: "confirmed"}, nil
}

func (f *fakeService) Cancel(_ context.Context, id int64) error {
	if id == 404 {
		return failure.NotFound("reservation not found")
	}

	f.cancelled = append(f.cancelled, id)

	return nil
}

func (f *fakeService) CompleteExpired(_ context.Context, userID int64) (int, error) {
	f.completedBy = append(f.completedBy, userID)

	return 3, nil
}

func (f *fakeService) Transfer(_ context.Context, id int64, req dto.TransferReservationRequest) (dto.ReservationResponse, error) {
	if f.transferred == nil {
		f.transferred = map[int64]int64{}
	}

	f.transferred[id] = req.RoomID

	return dto.ReservationResponse{ID: id, RoomID: req.RoomID}, nil
}

func (f *fakeService) Get(_ context.Context, id int64) (dto.ReservationResponse, error) {
	return dto.ReservationResponse{ID: id}, nil
}

func (f *fakeService) ListMine(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error) {
	f.listedMine = filter

	return dto.GetReservationsResponse{TotalPage: 1}, nil
}

func (f *fakeService) ListAll(context.Context, gDto.QueryParams, gDto.FilterGroup) (dto.GetReservationsResponse, error) {
	return dto.GetReservationsResponse{TotalPage: 1}, nil
}

func (f *fakeService) Availability(_ context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error) {
	f.available = req

	date := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 11, 5, 10, 15, 0, 0, time.UTC)

	res := dto.AvailabilityResponse{}
	res.FromSlots(req.RoomID, schedule.DayOf(date), schedule.GenerateSlots(date, now), nil)

	return res, nil
}

func newRouter(svc *fakeService) chi.Router {
	handler := reservation.New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), constant.ContextKeyUserID, int64(7))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	handler.Router(router)

	return router
}

func serve(router chi.Router, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func TestCreateReservation(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeService{}

		rec := serve(newRouter(svc), http.MethodPost, "/reservations/",
			`{"room_id":3,"date":"2025-11-10","start_time":"09:00","end_time":"10:30"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":11`)
		require.Len(t, svc.created, 1)
		assert.Equal(t, "09:00", svc.created[0].StartTime)
	})

	t.Run("malformed time never reaches the service", func(t *testing.T) {
		svc := &fakeService{}

		rec := serve(newRouter(svc), http.MethodPost, "/reservations/",
			`{"room_id":3,"date":"2025-11-10","start_time":"9h","end_time":"10:30"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, svc.created)
	})

	t.Run("conflict is a bad request", func(t *testing.T) {
		svc := &fakeService{createErr: failure.Conflict("the room is already booked in that window")}

		rec := serve(newRouter(svc), http.MethodPost, "/reservations/",
			`{"room_id":3,"date":"2025-11-10","start_time":"09:00","end_time":"10:30"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":400`)
	})
}

func TestGetAvailability(t *testing.T) {
	t.Run("passes room and date", func(t *testing.T) {
		svc := &fakeService{}

		rec := serve(newRouter(svc), http.MethodGet, "/reservations/availability?room_id=3&date=2025-11-10", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, dto.AvailabilityRequest{RoomID: 3, Date: "2025-11-10"}, svc.available)
		assert.Contains(t, rec.Body.String(), `"free_count":8`)
	})

	t.Run("non numeric room", func(t *testing.T) {
		rec := serve(newRouter(&fakeService{}), http.MethodGet, "/reservations/availability?room_id=abc&date=2025-11-10", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetMyReservations(t *testing.T) {
	svc := &fakeService{}

	rec := serve(newRouter(svc), http.MethodGet, "/reservations/mine?status=confirmed", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, svc.completedBy)

	_, args := svc.listedMine.GetWhereClause()
	assert.Equal(t, "confirmed", args["status"])
}

func TestCancelReservation(t *testing.T) {
	svc := &fakeService{}
	router := newRouter(svc)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodDelete, "/reservations/5", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodDelete, "/reservations/404", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodDelete, "/reservations/zero", "").Code)
	assert.Equal(t, []int64{5}, svc.cancelled)
}

func TestTransferReservation(t *testing.T) {
	svc := &fakeService{}

	rec := serve(newRouter(svc), http.MethodPut, "/reservations/5/transfer", `{"room_id":2}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), svc.transferred[5])

	rec = serve(newRouter(svc), http.MethodPut, "/reservations/5/transfer", `{"room_id":"2"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAllReservations(t *testing.T) {
	svc := &fakeService{}

	rec := serve(newRouter(svc), http.MethodGet, "/reservations/admin/all?room_id=3", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, svc.completedBy)

	rec = serve(newRouter(svc), http.MethodGet, "/reservations/admin/all?user_id=x", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompleteExpired(t *testing.T) {
	svc := &fakeService{}

	rec := serve(newRouter(svc), http.MethodPost, "/reservations/admin/complete-expired", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"completed":3`)
	assert.Equal(t, []int64{0}, svc.completedBy)
}
