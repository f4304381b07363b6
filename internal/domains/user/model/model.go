package model

import (
	"errors"
	"fmt"

	"edurooms/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID         = "id"
	FieldName       = "name"
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldRole       = "role"
	FieldStatus     = "status"
	FieldDepartment = "department"
	FieldFirstLogin = "first_login"
)

var ErrUnknownRole = errors.New("unknown role")

// Role is the closed set of actors known to the system.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

func ParseRole(value string) (Role, error) {
	switch role := Role(value); role {
	case RoleTeacher, RoleAdmin:
		return role, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, value)
	}
}

// IsAdmin reports whether value names the administrator role. Unknown roles are never admins.
func IsAdmin(value string) bool {
	role, err := ParseRole(value)
	if err != nil {
		return false
	}

	switch role {
	case RoleAdmin:
		return true
	case RoleTeacher:
		return false
	default:
		return false
	}
}

type Status string

const (
	StatusEnabled  Status = "enabled"
	StatusDisabled Status = "disabled"
)

type User struct {
	ID         int64   `db:"id"`
	Name       string  `db:"name"`
	Email      string  `db:"email"`
	Password   string  `db:"password"`
	Role       Role    `db:"role"`
	Status     Status  `db:"status"`
	Department *string `db:"department"`
	FirstLogin bool    `db:"first_login"`
	model.Metadata
}
