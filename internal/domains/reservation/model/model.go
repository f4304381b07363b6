package model

import (
	"edurooms/internal/domains/reservation/schedule"
	"edurooms/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldRoomID    = "room_id"
	FieldDate      = "date"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldStatus    = "status"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

type Reservation struct {
	ID        int64          `db:"id"`
	UserID    int64          `db:"user_id"`
	RoomID    int64          `db:"room_id"`
	Date      schedule.Day   `db:"date"`
	StartTime schedule.Clock `db:"start_time"`
	EndTime   schedule.Clock `db:"end_time"`
	Status    Status         `db:"status"`
	RoomName  string         `column:"name" db:"room_name" table:"rooms"`
	UserName  string         `column:"name" db:"user_name" table:"users"`
	model.Metadata
}

func (Reservation) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = reservations.room_id JOIN users ON users.id = reservations.user_id"
}

func (r Reservation) Slot() schedule.Slot {
	return schedule.Slot{Start: r.StartTime, End: r.EndTime}
}

// Scope names the column an overlap check is restricted to.
type Scope string

const (
	ScopeRoom Scope = FieldRoomID
	ScopeUser Scope = FieldUserID
)

// OverlapQuery looks for confirmed reservations of one room or one user intersecting Slot on Date.
// ExcludeID, when positive, ignores that reservation.
type OverlapQuery struct {
	Scope     Scope
	ScopeID   int64
	Date      schedule.Day
	Slot      schedule.Slot
	ExcludeID int64
}
