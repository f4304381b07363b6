package dto

import (
	"time"

	"edurooms/internal/domains/reservation/model"
	"edurooms/internal/domains/reservation/schedule"
	"edurooms/shared"
	gDto "edurooms/shared/dto"
	gModel "edurooms/shared/model"
)

type CreateReservationRequest struct {
	RoomID    int64  `json:"room_id"    validate:"required,gt=0"`
	Date      string `json:"date"       validate:"required"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time"   validate:"required,clock"`
}

func (c *CreateReservationRequest) ToModel(userID int64, date schedule.Day, slot schedule.Slot, now time.Time, actor string) model.Reservation {
	return model.Reservation{
		UserID:    userID,
		RoomID:    c.RoomID,
		Date:      date,
		StartTime: slot.Start,
		EndTime:   slot.End,
		Status:    model.StatusConfirmed,
		Metadata:  gModel.NewMetadata(now, actor),
	}
}

type TransferReservationRequest struct {
	RoomID int64 `json:"room_id" validate:"required,gt=0"`
}

type AvailabilityRequest struct {
	RoomID int64
	Date   string
}

type ReservationResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	UserName  string `json:"user_name,omitempty"`
	RoomID    int64  `json:"room_id"`
	RoomName  string `json:"room_name,omitempty"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.UserName = model.UserName
	r.RoomID = model.RoomID
	r.RoomName = model.RoomName
	r.Date = model.Date.String()
	r.StartTime = model.StartTime.String()
	r.EndTime = model.EndTime.String()
	r.Status = string(model.Status)
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

type AvailabilityResponse struct {
	RoomID        int64           `json:"room_id"`
	Date          string          `json:"date"`
	Free          []schedule.Slot `json:"free"`
	Occupied      []schedule.Slot `json:"occupied"`
	FreeCount     int             `json:"free_count"`
	OccupiedCount int             `json:"occupied_count"`
}

func (a *AvailabilityResponse) FromSlots(roomID int64, date schedule.Day, free, occupied []schedule.Slot) {
	a.RoomID = roomID
	a.Date = date.String()
	a.Free = free
	a.Occupied = occupied
	a.FreeCount = len(free)
	a.OccupiedCount = len(occupied)
}

type CompleteExpiredResponse struct {
	Completed int `json:"completed"`
}

type UpdateStatusRequest struct {
	Status string `db:"status"`
}

type UpdateRoomRequest struct {
	RoomID int64 `db:"room_id"`
}
