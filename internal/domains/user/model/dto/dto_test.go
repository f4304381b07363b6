package dto_test

import (
	"testing"
	"time"

	"edurooms/internal/domains/user/model"
	"edurooms/internal/domains/user/model/dto"
	"edurooms/shared"
	"edurooms/shared/validator"

	"github.com/stretchr/testify/assert"
)

func TestCreateUserRequest_ToModel(t *testing.T) {
	department := "Matemáticas"
	req := dto.CreateUserRequest{
		Name:       "Lucía Pérez",
		Email:      "lucia@edurooms.com",
		Password:   "Teacher123@",
		Role:       "teacher",
		Department: &department,
	}

	assert.NoError(t, validator.ValidateStruct(&req))

	user := req.ToModel("admin@edurooms.com", "hash", time.Now())

	assert.Equal(t, model.RoleTeacher, user.Role)
	assert.Equal(t, model.StatusEnabled, user.Status)
	assert.True(t, user.FirstLogin)
	assert.Equal(t, "hash", user.Password)
	assert.Equal(t, "admin@edurooms.com", user.CreatedBy)
}

func TestCreateUserRequest_RejectsUnknownRole(t *testing.T) {
	req := dto.CreateUserRequest{
		Name:     "Lucía Pérez",
		Email:    "lucia@edurooms.com",
		Password: "Teacher123@",
		Role:     "administrador",
	}

	assert.Error(t, validator.ValidateStruct(&req))
}

func TestUpdateUserRequest_TransformFields(t *testing.T) {
	status := "disabled"
	req := dto.UpdateUserRequest{Status: &status}

	assert.NoError(t, validator.ValidateStruct(&req))

	fields := shared.TransformFields(req, "admin@edurooms.com")

	assert.Equal(t, "disabled", fields[model.FieldStatus])
	assert.NotContains(t, fields, model.FieldRole)
	assert.Equal(t, "admin@edurooms.com", fields["modified_by"])
}
