package availability

import (
	"fmt"
	"time"
)

// DateLayout is the layout of override and period dates.
const DateLayout = "2006-01-02"

const minutesPerDay = 24 * 60

// WeeklyRule opens [StartMinute, EndMinute) on each of Days, measured from
// local midnight. EndMinute may be 1440 to run until the end of the day.
type WeeklyRule struct {
	Days        []time.Weekday
	StartMinute int
	EndMinute   int
}

// DateOverride replaces all weekly rules for one local date. A zero-length
// override marks the whole day unavailable.
type DateOverride struct {
	Date        string
	StartMinute int
	EndMinute   int
}

// Schedule is a host's working hours in a single IANA time zone.
type Schedule struct {
	TimeZone  string
	Rules     []WeeklyRule
	Overrides []DateOverride
}

// LoadLocation resolves an IANA zone name. An empty name means UTC.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeZone, name)
	}
	return loc, nil
}

// ValidMinuteSpan reports whether [start, end) is a non-empty span inside one day.
func ValidMinuteSpan(start, end int) bool {
	return start >= 0 && end <= minutesPerDay && start < end
}

// WorkingRanges expands the schedule into absolute ranges inside [from, to).
// Each local day is built with time.Date in the schedule's zone so that DST
// shifts move the absolute instants rather than the wall clock.
func WorkingRanges(s Schedule, from, to time.Time) ([]TimeRange, error) {
	if !to.After(from) {
		return nil, ErrInvalidTimeRange
	}
	loc, err := LoadLocation(s.TimeZone)
	if err != nil {
		return nil, err
	}

	overrides := make(map[string][]DateOverride, len(s.Overrides))
	for _, o := range s.Overrides {
		if _, err := time.ParseInLocation(DateLayout, o.Date, loc); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, o.Date)
		}
		overrides[o.Date] = append(overrides[o.Date], o)
	}

	var ranges []TimeRange
	y, m, d := from.In(loc).Date()
	for i := 0; ; i++ {
		dayStart := time.Date(y, m, d+i, 0, 0, 0, 0, loc)
		if !dayStart.Before(to) {
			break
		}
		key := dayStart.Format(DateLayout)
		if dayOverrides, ok := overrides[key]; ok {
			for _, o := range dayOverrides {
				if o.EndMinute <= o.StartMinute {
					continue
				}
				ranges = append(ranges, dayRange(dayStart, o.StartMinute, o.EndMinute))
			}
			continue
		}
		wd := dayStart.Weekday()
		for _, rule := range s.Rules {
			if !ValidMinuteSpan(rule.StartMinute, rule.EndMinute) || !hasWeekday(rule.Days, wd) {
				continue
			}
			ranges = append(ranges, dayRange(dayStart, rule.StartMinute, rule.EndMinute))
		}
	}

	return ClipRanges(ranges, TimeRange{Start: from, End: to}), nil
}

func dayRange(dayStart time.Time, startMinute, endMinute int) TimeRange {
	y, m, d := dayStart.Date()
	loc := dayStart.Location()
	return TimeRange{
		Start: time.Date(y, m, d, 0, startMinute, 0, 0, loc).UTC(),
		End:   time.Date(y, m, d, 0, endMinute, 0, 0, loc).UTC(),
	}
}

func hasWeekday(days []time.Weekday, wd time.Weekday) bool {
	for _, d := range days {
		if d == wd {
			return true
		}
	}
	return false
}
