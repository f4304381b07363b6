package model_test

import (
	"testing"

	"edurooms/internal/domains/user/model"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	role, err := model.ParseRole("admin")
	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, role)

	role, err = model.ParseRole("teacher")
	assert.NoError(t, err)
	assert.Equal(t, model.RoleTeacher, role)

	_, err = model.ParseRole("administrador")
	assert.ErrorIs(t, err, model.ErrUnknownRole)
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, model.IsAdmin("admin"))
	assert.False(t, model.IsAdmin("teacher"))
	assert.False(t, model.IsAdmin("Admin"))
	assert.False(t, model.IsAdmin(""))
}
