package validator_test

import (
	"strings"
	"testing"

	"edurooms/shared/failure"
	"edurooms/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingRequest struct {
	RoomID    int64  `json:"room_id"    validate:"required,gt=0"`
	Date      string `json:"date"       validate:"required,isodate"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time"   validate:"required,clock"`
	Purpose   string `json:"purpose"    validate:"omitempty,oneof=class exam meeting"`
}

func validBooking() bookingRequest {
	return bookingRequest{RoomID: 3, Date: "2025-11-10", StartTime: "09:00", EndTime: "10:30"}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*bookingRequest)
		wantMsg string
	}{
		{name: "valid", mutate: func(*bookingRequest) {}},
		{name: "missing room", mutate: func(b *bookingRequest) { b.RoomID = 0 }, wantMsg: "room_id is required"},
		{name: "negative room", mutate: func(b *bookingRequest) { b.RoomID = -2 }, wantMsg: "room_id must be greater than 0"},
		{name: "impossible date", mutate: func(b *bookingRequest) { b.Date = "2099-02-30" }, wantMsg: "date must be a valid date in YYYY-MM-DD format"},
		{name: "bad start", mutate: func(b *bookingRequest) { b.StartTime = "9:00" }, wantMsg: "start_time must use the HH:MM format"},
		{name: "unknown purpose", mutate: func(b *bookingRequest) { b.Purpose = "party" }, wantMsg: "purpose must be one of [class exam meeting]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBooking()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.wantMsg == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.True(t, failure.IsKind(err, failure.KindValidation))
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		field   any
		tag     string
		wantErr bool
	}{
		{name: "valid clock", field: "09:00", tag: "clock"},
		{name: "clock at last minute", field: "23:59", tag: "clock"},
		{name: "clock without leading zero", field: "9:00", tag: "clock", wantErr: true},
		{name: "clock hour out of range", field: "24:00", tag: "clock", wantErr: true},
		{name: "clock with seconds", field: "09:00:00", tag: "clock", wantErr: true},
		{name: "valid date", field: "2025-11-10", tag: "isodate"},
		{name: "leap day", field: "2024-02-29", tag: "isodate"},
		{name: "impossible day", field: "2099-02-30", tag: "isodate", wantErr: true},
		{name: "wrong separator", field: "2025/11/10", tag: "isodate", wantErr: true},
		{name: "short year", field: "25-11-10", tag: "isodate", wantErr: true},
		{name: "role in enumeration", field: "teacher", tag: "oneof=teacher admin"},
		{name: "role outside enumeration", field: "student", tag: "oneof=teacher admin", wantErr: true},
		{name: "email", field: "teacher@edurooms.com", tag: "email"},
		{name: "broken email", field: "teacher@", tag: "email", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantKind failure.Kind
	}{
		{name: "valid", body: `{"room_id":3,"date":"2025-11-10","start_time":"09:00","end_time":"10:30"}`},
		{name: "semantic violation", body: `{"room_id":3,"date":"2025-11-10","start_time":"9h","end_time":"10:30"}`, wantKind: failure.KindValidation},
		{name: "malformed json", body: `{"room_id":3,"date":}`, wantKind: failure.KindFormat},
		{name: "unknown field", body: `{"room_id":3,"date":"2025-11-10","start_time":"09:00","end_time":"10:30","user_id":1}`, wantKind: failure.KindFormat},
		{name: "string for integer", body: `{"room_id":"3","date":"2025-11-10","start_time":"09:00","end_time":"10:30"}`, wantKind: failure.KindFormat},
		{name: "empty object", body: `{}`, wantKind: failure.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req bookingRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantKind == "" {
				require.NoError(t, err)
				assert.Equal(t, validBooking(), req)

				return
			}

			require.Error(t, err)
			assert.True(t, failure.IsKind(err, tt.wantKind), "got %v", err)
		})
	}
}
