package dto_test

import (
	"strings"
	"testing"
	"time"

	"edurooms/internal/domains/room/model"
	"edurooms/internal/domains/room/model/dto"
	"edurooms/shared/failure"
	"edurooms/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRoomRequest_Capacity(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind failure.Kind
		ok   bool
	}{
		{name: "integer", body: `{"name":"Aula 301","capacity":30}`, ok: true},
		{name: "zero", body: `{"name":"Aula 301","capacity":0}`, kind: failure.KindValidation},
		{name: "negative", body: `{"name":"Aula 301","capacity":-5}`, kind: failure.KindValidation},
		{name: "numeric string", body: `{"name":"Aula 301","capacity":"30"}`, kind: failure.KindFormat},
		{name: "fraction", body: `{"name":"Aula 301","capacity":30.5}`, kind: failure.KindFormat},
		{name: "bad status", body: `{"name":"Aula 301","capacity":30,"status":"closed"}`, kind: failure.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.CreateRoomRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)
			if tt.ok {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.True(t, failure.IsKind(err, tt.kind), "unexpected failure %v", err)
		})
	}
}

func TestCreateRoomRequest_ToModel(t *testing.T) {
	req := dto.CreateRoomRequest{Name: "Aula 301", Capacity: 20}

	room := req.ToModel("admin@edurooms.com", time.Now())

	assert.Equal(t, model.StatusAvailable, room.Status)
	assert.True(t, room.Status == model.StatusAvailable)
	assert.Equal(t, "admin@edurooms.com", room.CreatedBy)
}

func TestUpdateRoomRequest_EntersMaintenance(t *testing.T) {
	maintenance := string(model.StatusMaintenance)
	available := string(model.StatusAvailable)

	assert.True(t, (&dto.UpdateRoomRequest{Status: &maintenance}).EntersMaintenance(model.StatusAvailable))
	assert.False(t, (&dto.UpdateRoomRequest{Status: &maintenance}).EntersMaintenance(model.StatusMaintenance))
	assert.False(t, (&dto.UpdateRoomRequest{Status: &available}).EntersMaintenance(model.StatusMaintenance))
	assert.False(t, (&dto.UpdateRoomRequest{}).EntersMaintenance(model.StatusAvailable))
}
