package request_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edurooms/shared/failure"
	"edurooms/transport/http/request"
)

func withParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestPathID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int64
		wantErr bool
	}{
		{name: "positive", value: "42", want: 42},
		{name: "zero", value: "0", wantErr: true},
		{name: "negative", value: "-3", wantErr: true},
		{name: "text", value: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := withParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", tt.value)

			got, err := request.PathID(r, "id")

			if tt.wantErr {
				assert.True(t, failure.IsKind(err, failure.KindFormat))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilters(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?status=confirmed&name=aula&room_id=", nil)

	group := request.Filters(r, "rooms", []string{"status", "room_id"}, []string{"name"})

	where, args := group.GetWhereClause()

	assert.Len(t, group.Filters, 2)
	assert.Contains(t, where, "rooms.status = :status")
	assert.Equal(t, "confirmed", args["status"])
	assert.Equal(t, "%aula%", args["name"])
}

func TestQueryID(t *testing.T) {
	id, err := request.QueryID(httptest.NewRequest(http.MethodGet, "/", nil), "room_id")
	require.NoError(t, err)
	assert.Zero(t, id)

	_, err = request.QueryID(httptest.NewRequest(http.MethodGet, "/?room_id=x", nil), "room_id")
	assert.True(t, failure.IsKind(err, failure.KindFormat))
}
