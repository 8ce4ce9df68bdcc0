package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodWindow(t *testing.T) {
	now := day(1, 10, 0)
	tests := []struct {
		name        string
		period      Period
		now         time.Time
		wantBounded bool
		want        TimeRange
		wantErr     error
	}{
		{
			name:   "unlimited",
			period: Period{Type: PeriodUnlimited},
			now:    now,
		},
		{
			name:   "zero value is unlimited",
			period: Period{},
			now:    now,
		},
		{
			name:        "rolling calendar days",
			period:      Period{Type: PeriodRolling, Days: 3, CalendarDays: true},
			now:         now,
			wantBounded: true,
			want:        TimeRange{Start: now, End: day(5, 0, 0)},
		},
		{
			name:        "rolling business days skip weekend",
			period:      Period{Type: PeriodRolling, Days: 3},
			now:         day(5, 10, 0), // Friday
			wantBounded: true,
			want:        TimeRange{Start: day(5, 10, 0), End: day(11, 0, 0)},
		},
		{
			name:        "fixed range inclusive",
			period:      Period{Type: PeriodRange, StartDate: "2024-01-10", EndDate: "2024-01-12"},
			now:         now,
			wantBounded: true,
			want:        TimeRange{Start: day(10, 0, 0), End: day(13, 0, 0)},
		},
		{
			name:    "range end before start",
			period:  Period{Type: PeriodRange, StartDate: "2024-01-12", EndDate: "2024-01-10"},
			now:     now,
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "range bad date",
			period:  Period{Type: PeriodRange, StartDate: "tomorrow", EndDate: "2024-01-10"},
			now:     now,
			wantErr: ErrInvalidDate,
		},
		{
			name:    "negative rolling",
			period:  Period{Type: PeriodRolling, Days: -1},
			now:     now,
			wantErr: ErrInvalidTimeRange,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, bounded, err := PeriodWindow(tt.period, tt.now, time.UTC)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBounded, bounded)
			if tt.wantBounded {
				assert.True(t, tt.want.Start.Equal(got.Start), "start %s", got.Start)
				assert.True(t, tt.want.End.Equal(got.End), "end %s", got.End)
			}
		})
	}
}

func TestPeriodWindow_UnknownType(t *testing.T) {
	_, _, err := PeriodWindow(Period{Type: "forever"}, day(1, 0, 0), time.UTC)
	assert.Error(t, err)
}

func TestPeriodWindow_RangeUsesLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	got, bounded, err := PeriodWindow(Period{Type: PeriodRange, StartDate: "2024-01-10", EndDate: "2024-01-10"}, day(1, 0, 0), tokyo)
	require.NoError(t, err)
	require.True(t, bounded)
	assert.Equal(t, time.Date(2024, 1, 9, 15, 0, 0, 0, time.UTC), got.Start)
	assert.Equal(t, time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC), got.End)
}
