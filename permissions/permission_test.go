package permissions_test

import (
	"net/http"
	"testing"

	"edurooms/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name      string
		path      string
		method    string
		wantSkip  bool
		teacherOK bool
		adminOK   bool
	}{
		{name: "availability is public", path: "/v1/reservations/availability", method: http.MethodGet, wantSkip: true, teacherOK: true, adminOK: true},
		{name: "teachers book rooms", path: "/v1/reservations/", method: http.MethodPost, teacherOK: true, adminOK: true},
		{name: "transfer is admin only", path: "/v1/reservations/{id}/transfer", method: http.MethodPut, adminOK: true},
		{name: "room deletion is admin only", path: "/v1/rooms/{id}", method: http.MethodDelete, adminOK: true},
		{name: "room listing is public", path: "/v1/rooms/", method: http.MethodGet, wantSkip: true, teacherOK: true, adminOK: true},
		{name: "unknown route needs a token", path: "/v1/unknown", method: http.MethodGet, teacherOK: true, adminOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.wantSkip, permission.Skip)
			assert.Equal(t, tt.teacherOK, permission.Skip || permission.Allows("teacher"))
			assert.Equal(t, tt.adminOK, permission.Skip || permission.Allows("admin"))
		})
	}
}
