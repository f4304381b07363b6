package model

import "edurooms/shared/model"

const (
	TableName  = "incidents"
	EntityName = "incident"

	FieldID          = "id"
	FieldRoomID      = "room_id"
	FieldUserID      = "user_id"
	FieldDescription = "description"
	FieldType        = "type"
	FieldStatus      = "status"
)

type Type string

const (
	TypeElectrical Type = "electrical"
	TypeIT         Type = "it"
	TypeStructural Type = "structural"
	TypeCleaning   Type = "cleaning"
	TypeOther      Type = "other"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusInReview Status = "in_review"
	StatusResolved Status = "resolved"
)

type Incident struct {
	ID          int64  `db:"id"`
	RoomID      int64  `db:"room_id"`
	UserID      int64  `db:"user_id"`
	Description string `db:"description"`
	Type        Type   `db:"type"`
	Status      Status `db:"status"`
	RoomName    string `column:"name" db:"room_name" table:"rooms"`
	UserName    string `column:"name" db:"user_name" table:"users"`
	model.Metadata
}

func (Incident) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = incidents.room_id JOIN users ON users.id = incidents.user_id"
}
