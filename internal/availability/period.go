package availability

import (
	"fmt"
	"time"
)

// PeriodType limits how far into the future an event can be booked.
type PeriodType string

const (
	PeriodUnlimited PeriodType = "unlimited"
	PeriodRolling   PeriodType = "rolling"
	PeriodRange     PeriodType = "range"
)

// Period describes the bookable horizon of an event type.
type Period struct {
	Type PeriodType
	// Days is the rolling horizon length.
	Days int
	// CalendarDays counts every day; otherwise only Monday to Friday count.
	CalendarDays bool
	// StartDate and EndDate bound a fixed range, inclusive, in DateLayout.
	StartDate string
	EndDate   string
}

// PeriodWindow returns the bookable window for p as seen at now in loc.
// The boolean is false when the period does not restrict anything.
func PeriodWindow(p Period, now time.Time, loc *time.Location) (TimeRange, bool, error) {
	switch p.Type {
	case "", PeriodUnlimited:
		return TimeRange{}, false, nil
	case PeriodRolling:
		if p.Days < 0 {
			return TimeRange{}, false, fmt.Errorf("%w: negative rolling period", ErrInvalidTimeRange)
		}
		y, m, d := now.In(loc).Date()
		last := time.Date(y, m, d, 0, 0, 0, 0, loc)
		if p.CalendarDays {
			last = last.AddDate(0, 0, p.Days)
		} else {
			for added := 0; added < p.Days; {
				last = last.AddDate(0, 0, 1)
				if wd := last.Weekday(); wd != time.Saturday && wd != time.Sunday {
					added++
				}
			}
		}
		return TimeRange{Start: now, End: last.AddDate(0, 0, 1).UTC()}, true, nil
	case PeriodRange:
		start, err := time.ParseInLocation(DateLayout, p.StartDate, loc)
		if err != nil {
			return TimeRange{}, false, fmt.Errorf("%w: period start %q", ErrInvalidDate, p.StartDate)
		}
		end, err := time.ParseInLocation(DateLayout, p.EndDate, loc)
		if err != nil {
			return TimeRange{}, false, fmt.Errorf("%w: period end %q", ErrInvalidDate, p.EndDate)
		}
		if end.Before(start) {
			return TimeRange{}, false, ErrInvalidTimeRange
		}
		return TimeRange{Start: start.UTC(), End: end.AddDate(0, 0, 1).UTC()}, true, nil
	default:
		return TimeRange{}, false, fmt.Errorf("unknown period type %q", p.Type)
	}
}
