package dto_test

import (
	"edurooms/shared/dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "status", Value: "confirmed", Operator: dto.FilterOperatorEq, Table: "reservations"},
			wantWhere: "reservations.status = :status",
			wantArgs:  map[string]any{"status": "confirmed"},
		},
		{
			name:      "strict less uses arg name",
			filter:    dto.Filter{ArgName: "today", Field: "date", Value: "2025-11-10", Operator: dto.FilterOperatorLess},
			wantWhere: "date < :today",
			wantArgs:  map[string]any{"today": "2025-11-10"},
		},
		{
			name:      "strict greater",
			filter:    dto.Filter{Field: "end_time", Value: "09:00:00", Operator: dto.FilterOperatorGreater},
			wantWhere: "end_time > :end_time",
			wantArgs:  map[string]any{"end_time": "09:00:00"},
		},
		{
			name:      "in expands slice",
			filter:    dto.Filter{Field: "id", Value: []int64{1, 2}, Operator: dto.FilterOperatorIn},
			wantWhere: "id IN (:id_0, :id_1) ",
			wantArgs:  map[string]any{"id_0": int64(1), "id_1": int64(2)},
		},
		{
			name:      "in with empty slice matches nothing",
			filter:    dto.Filter{Field: "id", Value: []int64{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "deleted_at", Operator: dto.FilterIsNull},
			wantWhere: "deleted_at IS NULL",
			wantArgs:  map[string]any{},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "id", Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "room_id", Value: int64(1), Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "id", Operator: "unknown"},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "status", Value: "confirmed", Operator: dto.FilterOperatorEq},
					dto.Filter{Field: "status", ArgName: "status_2", Value: "completed", Operator: dto.FilterOperatorEq},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(room_id = :room_id AND (status = :status OR status = :status_2))", where)
	assert.Equal(t, map[string]any{"room_id": int64(1), "status": "confirmed", "status_2": "completed"}, args)
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.FilterGroup{}
	group.Add(dto.Filter{Field: "id", Operator: "unknown"})

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestQueryParams_RestrictSort(t *testing.T) {
	params := dto.QueryParams{SortBy: "name; DROP TABLE rooms"}
	params.RestrictSort("created_at", "name", "capacity")

	assert.Equal(t, "created_at", params.SortBy)
	assert.Equal(t, dto.SortDirDesc, params.SortDir)

	params = dto.QueryParams{SortBy: "capacity", SortDir: dto.SortDirAsc}
	params.RestrictSort("created_at", "name", "capacity")

	assert.Equal(t, "capacity", params.SortBy)
	assert.Equal(t, dto.SortDirAsc, params.SortDir)
}
