package shared_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"edurooms/shared"
	"edurooms/shared/cache/mocks"
	"edurooms/shared/constant"
	"edurooms/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToID(t *testing.T) {
	id, err := shared.ConvertStringToID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, input := range []string{"", "0", "-3", "abc", "1.5"} {
		_, err := shared.ConvertStringToID(input)
		assert.Error(t, err, input)
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "negative limit returns 1", total: 100, limit: -5, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
		{name: "limit greater than total", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type roomUpdate struct {
		Name     string  `db:"name"`
		Location string  `db:"location"`
		Capacity *int    `db:"capacity"`
		Status   *string `db:"status"`
		Ignored  string  `db:"-"`
		NoTag    string
	}

	capacity := 0
	status := "maintenance"

	result := shared.TransformFields(roomUpdate{
		Name:     "Aula 101",
		Capacity: &capacity,
		Status:   &status,
		Ignored:  "ignored",
		NoTag:    "ignored",
	}, "admin@edurooms.com")

	assert.Equal(t, "Aula 101", result["name"])
	assert.Equal(t, 0, result["capacity"])
	assert.Equal(t, "maintenance", result["status"])
	assert.NotContains(t, result, "location")
	assert.NotContains(t, result, "-")
	assert.Equal(t, "admin@edurooms.com", result[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
	assert.Len(t, result, 5)
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID(int64(7), "id", "rooms")

	assert.Equal(t, dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "id", Value: int64(7), Operator: dto.FilterOperatorEq, Table: "rooms"},
		},
	}, result)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get:7", shared.BuildCacheKey("room:get", int64(7)))
	assert.Equal(t, "limiter:127.0.0.1:curl", shared.BuildCacheKey("limiter", "127.0.0.1", "curl"))
	assert.Equal(t, "room:gets", shared.BuildCacheKey("room:gets"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "status", Value: "available", Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "name", Value: "aula", Operator: dto.FilterOperatorLike},
		},
	}

	first := shared.BuildCacheKeyWithQuery("room:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("room:gets", params, filter)

	assert.Equal(t, first, second)
	assert.Regexp(t, `^room:gets:[0-9a-f]{16}$`, first)

	params.Page = 2
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("room:gets", params, filter))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := mocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "room:gets:*").Return(nil)
	mockCache.EXPECT().Clear(gomock.Any(), "room:count:*").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), mockCache, "room:gets")
	shared.InvalidateCaches(context.Background(), mockCache, "room:count")
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()

	assert.Zero(t, shared.UserIDFromContext(ctx))
	assert.Empty(t, shared.RoleFromContext(ctx))
	assert.Equal(t, constant.ContextGuest, shared.UsernameFromContext(ctx))

	ctx = context.WithValue(ctx, constant.ContextKeyUserID, int64(3))
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, "admin")
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, "admin@edurooms.com")

	assert.Equal(t, int64(3), shared.UserIDFromContext(ctx))
	assert.Equal(t, "admin", shared.RoleFromContext(ctx))
	assert.Equal(t, "admin@edurooms.com", shared.UsernameFromContext(ctx))
}
