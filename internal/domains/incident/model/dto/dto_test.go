package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"edurooms/internal/domains/incident/model/dto"
	"edurooms/shared/validator"
)

func TestCreateIncidentRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateIncidentRequest
		wantErr bool
	}{
		{name: "valid", req: dto.CreateIncidentRequest{RoomID: 3, Description: "Broken window in the back", Type: "structural"}},
		{name: "type is optional", req: dto.CreateIncidentRequest{RoomID: 3, Description: "Broken window in the back"}},
		{name: "short description", req: dto.CreateIncidentRequest{RoomID: 3, Description: "Broken"}, wantErr: true},
		{name: "unknown type", req: dto.CreateIncidentRequest{RoomID: 3, Description: "Broken window in the back", Type: "plumbing"}, wantErr: true},
		{name: "missing room", req: dto.CreateIncidentRequest{Description: "Broken window in the back"}, wantErr: true},
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
