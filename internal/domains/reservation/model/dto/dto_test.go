package dto_test

import (
	"testing"
	"time"

	"edurooms/internal/domains/reservation/model"
	"edurooms/internal/domains/reservation/model/dto"
	"edurooms/internal/domains/reservation/schedule"
	"edurooms/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReservationRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateReservationRequest
		wantErr bool
	}{
		{name: "valid", req: dto.CreateReservationRequest{RoomID: 1, Date: "2025-11-10", StartTime: "09:00", EndTime: "10:30"}},
		{name: "missing room", req: dto.CreateReservationRequest{Date: "2025-11-10", StartTime: "09:00", EndTime: "10:30"}, wantErr: true},
		{name: "negative room", req: dto.CreateReservationRequest{RoomID: -4, Date: "2025-11-10", StartTime: "09:00", EndTime: "10:30"}, wantErr: true},
		{name: "bad start", req: dto.CreateReservationRequest{RoomID: 1, Date: "2025-11-10", StartTime: "9h", EndTime: "10:30"}, wantErr: true},
		{name: "bad end", req: dto.CreateReservationRequest{RoomID: 1, Date: "2025-11-10", StartTime: "09:00", EndTime: "25:00"}, wantErr: true},
		{name: "missing date", req: dto.CreateReservationRequest{RoomID: 1, StartTime: "09:00", EndTime: "10:30"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReservationResponse_FromModel(t *testing.T) {
	date, err := schedule.ParseDay("2025-11-10")
	require.NoError(t, err)

	slot, err := schedule.ParseSlot("09:00", "10:30")
	require.NoError(t, err)

	req := dto.CreateReservationRequest{RoomID: 2}
	mod := req.ToModel(7, date, slot, time.Now(), "teacher@edurooms.com")
	mod.ID = 11
	mod.RoomName = "Aula 102"

	var res dto.ReservationResponse
	res.FromModel(mod)

	assert.Equal(t, int64(11), res.ID)
	assert.Equal(t, int64(7), res.UserID)
	assert.Equal(t, int64(2), res.RoomID)
	assert.Equal(t, "Aula 102", res.RoomName)
	assert.Equal(t, "2025-11-10", res.Date)
	assert.Equal(t, "09:00", res.StartTime)
	assert.Equal(t, "10:30", res.EndTime)
	assert.Equal(t, string(model.StatusConfirmed), res.Status)
	assert.Equal(t, "teacher@edurooms.com", res.CreatedBy)
}

func TestAvailabilityResponse_FromSlots(t *testing.T) {
	date, err := schedule.ParseDay("2025-11-10")
	require.NoError(t, err)

	free, occupied := schedule.Compose(schedule.GenerateSlots(date.Time, date.AddDate(0, 0, -1)), []schedule.Slot{
		{Start: schedule.NewClock(9, 0), End: schedule.NewClock(10, 30)},
	})

	var res dto.AvailabilityResponse
	res.FromSlots(3, date, free, occupied)

	assert.Equal(t, "2025-11-10", res.Date)
	assert.Equal(t, 2, res.OccupiedCount)
	assert.Equal(t, 6, res.FreeCount)
	assert.Equal(t, res.FreeCount+res.OccupiedCount, len(schedule.GenerateSlots(date.Time, date.AddDate(0, 0, -1))))
}
