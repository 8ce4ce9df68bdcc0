package availability

import (
	"sort"
	"time"
)

// Limits caps the number of bookings of one event type per local period.
// Zero disables a cap.
type Limits struct {
	PerDay   int `json:"per_day,omitempty"`
	PerWeek  int `json:"per_week,omitempty"`
	PerMonth int `json:"per_month,omitempty"`
	PerYear  int `json:"per_year,omitempty"`
}

// Empty reports whether no cap is set.
func (l Limits) Empty() bool {
	return l.PerDay <= 0 && l.PerWeek <= 0 && l.PerMonth <= 0 && l.PerYear <= 0
}

// Rules are the event-type settings that shape slots.
type Rules struct {
	Length        time.Duration
	Interval      time.Duration
	BeforeBuffer  time.Duration
	AfterBuffer   time.Duration
	MinimumNotice time.Duration
	Period        Period
	// Seats is the number of attendees per slot; zero means the event is not seated.
	Seats  int
	Limits Limits
	// TimeZone anchors the period window and booking limit periods.
	TimeZone string
}

func (r Rules) step() time.Duration {
	if r.Interval > 0 {
		return r.Interval
	}
	return r.Length
}

// Slot is a bookable start time.
type Slot struct {
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Attendees      int       `json:"attendees,omitempty"`
	SeatsRemaining int       `json:"seats_remaining,omitempty"`
	HostIDs        []string  `json:"-"`
}

// Range returns the slot as a TimeRange.
func (s Slot) Range() TimeRange {
	return TimeRange{Start: s.Start, End: s.End}
}

// GenerateSlots walks each available range in interval steps and returns the
// slots of rules.Length that fit. The first start in a range is rounded up on
// the local clock to a multiple of the interval within the hour. Slots that
// start before earliest are dropped.
func GenerateSlots(available []TimeRange, rules Rules, loc *time.Location, earliest time.Time) ([]TimeRange, error) {
	if rules.Length <= 0 {
		return nil, ErrSlotDuration
	}
	step := rules.step()
	if loc == nil {
		loc = time.UTC
	}

	var out []TimeRange
	for _, r := range MergeRanges(available) {
		cur := alignUp(r.Start.In(loc), step)
		for end := cur.Add(rules.Length); !end.After(r.End); end = cur.Add(rules.Length) {
			if !cur.Before(earliest) {
				out = append(out, TimeRange{Start: cur.UTC(), End: end.UTC()})
			}
			cur = cur.Add(step)
		}
	}
	return out, nil
}

// alignUp rounds t up to the next multiple of step minutes past the local hour.
// Steps that are not whole minutes are left unaligned.
func alignUp(t time.Time, step time.Duration) time.Time {
	stepMin := int(step / time.Minute)
	if stepMin <= 0 || step%time.Minute != 0 {
		return t
	}
	hour := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	offset := t.Sub(hour)
	if offset == 0 {
		return t
	}
	n := (int(offset/time.Minute) + stepMin - 1) / stepMin
	aligned := hour.Add(time.Duration(n*stepMin) * time.Minute)
	if aligned.Before(t) {
		aligned = aligned.Add(step)
	}
	return aligned
}

// Booking is an existing reservation that may block or fill a slot.
type Booking struct {
	Range TimeRange
	// SameEventType marks bookings of the event type being scheduled; only
	// those can share a seated slot.
	SameEventType bool
	Attendees     int
}

// FilterBusy drops every candidate whose range, widened by the buffers,
// overlaps a busy range or a booking. For seated rules a same-event-type
// booking starting exactly at the candidate's start fills seats instead of
// blocking; candidates with no seats left are dropped.
func FilterBusy(candidates []TimeRange, busy []TimeRange, bookings []Booking, rules Rules) []Slot {
	busy = MergeRanges(busy)
	out := make([]Slot, 0, len(candidates))

next:
	for _, c := range candidates {
		widened := c.Widen(rules.BeforeBuffer, rules.AfterBuffer)
		if overlapsAny(widened, busy) {
			continue
		}
		taken := 0
		for _, b := range bookings {
			if rules.Seats > 0 && b.SameEventType && b.Range.Start.Equal(c.Start) {
				taken += b.Attendees
				continue
			}
			if widened.Overlaps(b.Range) {
				continue next
			}
		}
		slot := Slot{Start: c.Start, End: c.End}
		if rules.Seats > 0 {
			if taken >= rules.Seats {
				continue
			}
			slot.Attendees = taken
			slot.SeatsRemaining = rules.Seats - taken
		}
		out = append(out, slot)
	}
	return out
}

func overlapsAny(r TimeRange, sorted []TimeRange) bool {
	i := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].End.After(r.Start)
	})
	return i < len(sorted) && sorted[i].Start.Before(r.End)
}
