package model

import "edurooms/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID       = "id"
	FieldName     = "name"
	FieldLocation = "location"
	FieldCapacity = "capacity"
	FieldQRCode   = "qr_code"
	FieldStatus   = "status"
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusMaintenance Status = "maintenance"
)

type Room struct {
	ID       int64   `db:"id"`
	Name     string  `db:"name"`
	Location string  `db:"location"`
	Capacity int     `db:"capacity"`
	QRCode   *string `db:"qr_code"`
	Status   Status  `db:"status"`
	model.Metadata
}

func (r Room) Bookable() bool {
	return r.ID > 0 && r.Status == StatusAvailable
}
