package repository_test

import (
	"testing"

	"edurooms/internal/domains/reservation/model"
	"edurooms/internal/domains/reservation/repository"
	"edurooms/internal/domains/reservation/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlapFilter(t *testing.T) {
	day, err := schedule.ParseDay("2025-11-10")
	require.NoError(t, err)

	slot := schedule.Slot{Start: schedule.NewClock(9, 30), End: schedule.NewClock(11, 0)}

	tests := []struct {
		name      string
		query     model.OverlapQuery
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:  "room scope",
			query: model.OverlapQuery{Scope: model.ScopeRoom, ScopeID: 3, Date: day, Slot: slot},
			wantWhere: "(reservations.room_id = :room_id AND reservations.date = :date AND reservations.status = :status" +
				" AND reservations.start_time < :start_time AND reservations.end_time > :end_time)",
			wantArgs: map[string]any{
				"room_id":    int64(3),
				"date":       day,
				"status":     model.StatusConfirmed,
				"start_time": slot.End,
				"end_time":   slot.Start,
			},
		},
		{
			name:  "user scope",
			query: model.OverlapQuery{Scope: model.ScopeUser, ScopeID: 7, Date: day, Slot: slot},
			wantWhere: "(reservations.user_id = :user_id AND reservations.date = :date AND reservations.status = :status" +
				" AND reservations.start_time < :start_time AND reservations.end_time > :end_time)",
			wantArgs: map[string]any{
				"user_id":    int64(7),
				"date":       day,
				"status":     model.StatusConfirmed,
				"start_time": slot.End,
				"end_time":   slot.Start,
			},
		},
		{
			name:  "transfer excludes the moved reservation",
			query: model.OverlapQuery{Scope: model.ScopeRoom, ScopeID: 4, Date: day, Slot: slot, ExcludeID: 42},
			wantWhere: "(reservations.room_id = :room_id AND reservations.date = :date AND reservations.status = :status" +
				" AND reservations.start_time < :start_time AND reservations.end_time > :end_time AND reservations.id != :id)",
			wantArgs: map[string]any{
				"room_id":    int64(4),
				"date":       day,
				"status":     model.StatusConfirmed,
				"start_time": slot.End,
				"end_time":   slot.Start,
				"id":         int64(42),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := repository.OverlapFilter(tt.query)

			where, args := filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestOverlapFilter_TouchingSlotsDoNotMatch(t *testing.T) {
	slot := schedule.Slot{Start: schedule.NewClock(9, 30), End: schedule.NewClock(11, 0)}

	filter := repository.OverlapFilter(model.OverlapQuery{Scope: model.ScopeRoom, ScopeID: 3, Slot: slot})
	_, args := filter.GetWhereClause()

	// An existing 08:00-09:30 booking fails start_time < 11:00 AND end_time > 09:30 on the second bound.
	existing := schedule.Slot{Start: schedule.NewClock(8, 0), End: schedule.NewClock(9, 30)}
	assert.False(t, existing.Start < args["start_time"].(schedule.Clock) && existing.End > args["end_time"].(schedule.Clock))

	// 11:00-12:30 fails the first bound.
	existing = schedule.Slot{Start: schedule.NewClock(11, 0), End: schedule.NewClock(12, 30)}
	assert.False(t, existing.Start < args["start_time"].(schedule.Clock) && existing.End > args["end_time"].(schedule.Clock))

	// 10:00-10:30 sits inside and matches both.
	existing = schedule.Slot{Start: schedule.NewClock(10, 0), End: schedule.NewClock(10, 30)}
	assert.True(t, existing.Start < args["start_time"].(schedule.Clock) && existing.End > args["end_time"].(schedule.Clock))
}
