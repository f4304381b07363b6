package dto

import (
	"time"

	"edurooms/internal/domains/room/model"
	"edurooms/shared"
	gDto "edurooms/shared/dto"
	gModel "edurooms/shared/model"
)

// CreateRoomRequest takes capacity as a JSON number; a quoted "30" fails to decode.
type CreateRoomRequest struct {
	Name     string  `json:"name"              validate:"required,max=100"`
	Location string  `json:"location"          validate:"omitempty,max=150"`
	Capacity int     `json:"capacity"          validate:"required,gt=0"`
	QRCode   *string `json:"qr_code,omitempty" validate:"omitempty,max=100"`
	Status   string  `json:"status,omitempty"  validate:"omitempty,oneof=available maintenance"`
}

func (c *CreateRoomRequest) ToModel(actor string, now time.Time) model.Room {
	status := model.StatusAvailable
	if c.Status != "" {
		status = model.Status(c.Status)
	}

	return model.Room{
		Name:     c.Name,
		Location: c.Location,
		Capacity: c.Capacity,
		QRCode:   c.QRCode,
		Status:   status,
		Metadata: gModel.NewMetadata(now, actor),
	}
}

type UpdateRoomRequest struct {
	Name     *string `db:"name"     json:"name,omitempty"     validate:"omitempty,max=100"`
	Location *string `db:"location" json:"location,omitempty" validate:"omitempty,max=150"`
	Capacity *int    `db:"capacity" json:"capacity,omitempty" validate:"omitempty,gt=0"`
	QRCode   *string `db:"qr_code"  json:"qr_code,omitempty"  validate:"omitempty,max=100"`
	Status   *string `db:"status"   json:"status,omitempty"   validate:"omitempty,oneof=available maintenance"`
}

// EntersMaintenance reports whether the update moves a room from another status into maintenance.
func (u *UpdateRoomRequest) EntersMaintenance(current model.Status) bool {
	return u.Status != nil && model.Status(*u.Status) == model.StatusMaintenance && current != model.StatusMaintenance
}

type RoomResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Capacity int     `json:"capacity"`
	QRCode   *string `json:"qr_code,omitempty"`
	Status   string  `json:"status"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Location = model.Location
	r.Capacity = model.Capacity
	r.QRCode = model.QRCode
	r.Status = string(model.Status)
	r.Metadata.FromModel(model.Metadata)
}

type UpdateRoomResponse struct {
	RoomResponse
	CancelledReservations int `json:"cancelled_reservations"`
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
