package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"edurooms/config"
	otelMocks "edurooms/infras/otel/mocks"
	"edurooms/internal/domains/calendar/mocks"
	"edurooms/internal/domains/calendar/service"
	"edurooms/shared/failure"
	"edurooms/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// Wednesday 2025-11-05, mid-morning.
var wednesday = time.Date(2025, time.November, 5, 10, 15, 0, 0, timezone.GetLocation())

func newEligibility(t *testing.T, closed ...string) (service.Eligibility, *mocks.MockHolidayCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	holidays := mocks.NewMockHolidayCache(ctrl)

	cfg := &config.Config{}
	cfg.Reservation.ClosedWeekdays = []string{"sunday"}

	if len(closed) > 0 {
		cfg.Reservation.ClosedWeekdays = closed
	}

	return service.NewEligibility(cfg, holidays, timezone.Fixed(wednesday), otelMocks.NewOtel()), holidays
}

func TestValidateBookingDate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		mock    func(holidays *mocks.MockHolidayCache)
		kind    failure.Kind
		wantErr bool
	}{
		{name: "malformed pattern", date: "2025/11/10", kind: failure.KindFormat, wantErr: true},
		{name: "impossible calendar day", date: "2099-02-30", kind: failure.KindFormat, wantErr: true},
		{name: "past date", date: "2025-11-04", kind: failure.KindValidation, wantErr: true},
		{name: "sunday", date: "2025-11-09", kind: failure.KindValidation, wantErr: true},
		{
			name: "holiday",
			date: "2025-12-08",
			mock: func(holidays *mocks.MockHolidayCache) {
				holidays.EXPECT().IsHoliday(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			kind:    failure.KindValidation,
			wantErr: true,
		},
		{
			name: "feed unreachable",
			date: "2025-11-10",
			mock: func(holidays *mocks.MockHolidayCache) {
				holidays.EXPECT().IsHoliday(gomock.Any(), gomock.Any()).Return(false, errors.New("dial tcp: timeout"))
			},
			kind:    failure.KindFetch,
			wantErr: true,
		},
		{
			name: "same day",
			date: "2025-11-05",
			mock: func(holidays *mocks.MockHolidayCache) {
				holidays.EXPECT().IsHoliday(gomock.Any(), gomock.Any()).Return(false, nil)
			},
		},
		{
			name: "saturday is bookable",
			date: "2025-11-08",
			mock: func(holidays *mocks.MockHolidayCache) {
				holidays.EXPECT().IsHoliday(gomock.Any(), gomock.Any()).Return(false, nil)
			},
		},
		{
			name: "monday",
			date: "2025-11-10",
			mock: func(holidays *mocks.MockHolidayCache) {
				holidays.EXPECT().IsHoliday(gomock.Any(), gomock.Any()).Return(false, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eligibility, holidays := newEligibility(t)
			if tt.mock != nil {
				tt.mock(holidays)
			}

			date, err := eligibility.ValidateBookingDate(context.Background(), tt.date)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, failure.IsKind(err, tt.kind), "unexpected failure %v", err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.date, date.Format("2006-01-02"))
			assert.Equal(t, 0, date.Hour())
		})
	}
}

func TestValidateBookingDate_ConfiguredWeekend(t *testing.T) {
	eligibility, _ := newEligibility(t, "Saturday", "sunday", "someday")

	_, err := eligibility.ValidateBookingDate(context.Background(), "2025-11-08")
	require.Error(t, err)
	assert.True(t, failure.IsKind(err, failure.KindValidation))
}
