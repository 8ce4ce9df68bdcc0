package availability

import (
	"sort"
	"time"
)

// Mode controls how several hosts combine into one slot list.
type Mode int

const (
	// ModeAnyHost offers a start when at least one host is free.
	ModeAnyHost Mode = iota
	// ModeAllHosts offers a start only when every host is free.
	ModeAllHosts
)

// HostInput is everything known about one host for the requested window.
type HostInput struct {
	HostID   string
	Schedule Schedule
	// Busy holds external calendar busy times.
	Busy     []TimeRange
	Bookings []Booking
}

// Input is a slot computation request.
type Input struct {
	Rules Rules
	Mode  Mode
	Hosts []HostInput
	// EventBookings are the active bookings of the event type, used for limits.
	EventBookings []TimeRange
	From          time.Time
	To            time.Time
	Now           time.Time
}

// Compute returns the bookable slots for the input, sorted by start.
func Compute(in Input) ([]Slot, error) {
	if !in.To.After(in.From) {
		return nil, ErrInvalidTimeRange
	}
	if in.Rules.Length <= 0 {
		return nil, ErrSlotDuration
	}
	eventLoc, err := LoadLocation(in.Rules.TimeZone)
	if err != nil {
		return nil, err
	}

	window := TimeRange{Start: in.From, End: in.To}
	if period, bounded, err := PeriodWindow(in.Rules.Period, in.Now, eventLoc); err != nil {
		return nil, err
	} else if bounded {
		clipped := IntersectRanges([]TimeRange{window}, []TimeRange{period})
		if len(clipped) == 0 {
			return []Slot{}, nil
		}
		window = clipped[0]
	}
	earliest := in.Now.Add(in.Rules.MinimumNotice)

	perHost := make([][]Slot, 0, len(in.Hosts))
	for _, h := range in.Hosts {
		slots, err := hostSlots(h, in.Rules, window, earliest)
		if err != nil {
			return nil, err
		}
		perHost = append(perHost, slots)
	}

	var combined []Slot
	if in.Mode == ModeAllHosts {
		combined = intersectHosts(perHost)
	} else {
		combined = unionHosts(perHost)
	}

	if !in.Rules.Limits.Empty() {
		combined = applyLimits(combined, in.EventBookings, in.Rules.Limits, eventLoc)
	}
	return combined, nil
}

func hostSlots(h HostInput, rules Rules, window TimeRange, earliest time.Time) ([]Slot, error) {
	loc, err := LoadLocation(h.Schedule.TimeZone)
	if err != nil {
		return nil, err
	}
	candidates, err := anchoredCandidates(h.Schedule, rules, loc, window, earliest)
	if err != nil {
		return nil, err
	}
	slots := FilterBusy(candidates, h.Busy, h.Bookings, rules)
	for i := range slots {
		slots[i].HostIDs = []string{h.HostID}
	}
	return slots, nil
}

// anchoredCandidates builds the slot grid from whole local working days so a
// start is offered or not regardless of where the window begins. Each day is
// generated on its own and only candidates inside window are kept.
func anchoredCandidates(s Schedule, rules Rules, loc *time.Location, window TimeRange, earliest time.Time) ([]TimeRange, error) {
	y, m, d := window.Start.In(loc).Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)
	working, err := WorkingRanges(s, dayStart, window.End)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]TimeRange)
	var days []string
	for _, r := range working {
		key := r.Start.In(loc).Format(DateLayout)
		if _, ok := byDay[key]; !ok {
			days = append(days, key)
		}
		byDay[key] = append(byDay[key], r)
	}

	var out []TimeRange
	for _, key := range days {
		generated, err := GenerateSlots(byDay[key], rules, loc, earliest)
		if err != nil {
			return nil, err
		}
		for _, c := range generated {
			if c.Start.Before(window.Start) || c.End.After(window.End) {
				continue
			}
			out = append(out, c)
		}
	}
	return out, nil
}

func unionHosts(perHost [][]Slot) []Slot {
	byStart := make(map[int64]*Slot)
	for _, slots := range perHost {
		for _, s := range slots {
			key := s.Start.UnixNano()
			if existing, ok := byStart[key]; ok {
				existing.HostIDs = append(existing.HostIDs, s.HostIDs...)
				continue
			}
			cp := s
			cp.HostIDs = append([]string(nil), s.HostIDs...)
			byStart[key] = &cp
		}
	}
	return sortedSlots(byStart)
}

func intersectHosts(perHost [][]Slot) []Slot {
	if len(perHost) == 0 {
		return []Slot{}
	}
	byStart := make(map[int64]*Slot)
	counts := make(map[int64]int)
	for _, slots := range perHost {
		for _, s := range slots {
			key := s.Start.UnixNano()
			counts[key]++
			existing, ok := byStart[key]
			if !ok {
				cp := s
				cp.HostIDs = append([]string(nil), s.HostIDs...)
				byStart[key] = &cp
				continue
			}
			existing.HostIDs = append(existing.HostIDs, s.HostIDs...)
			if s.Attendees > existing.Attendees {
				existing.Attendees = s.Attendees
				existing.SeatsRemaining = s.SeatsRemaining
			}
		}
	}
	for key := range byStart {
		if counts[key] != len(perHost) {
			delete(byStart, key)
		}
	}
	return sortedSlots(byStart)
}

func sortedSlots(byStart map[int64]*Slot) []Slot {
	out := make([]Slot, 0, len(byStart))
	for _, s := range byStart {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// applyLimits drops slots whose local day, week, month or year already holds
// the maximum number of bookings. Slots that join an existing seated booking
// do not create a booking and are kept.
func applyLimits(slots []Slot, bookings []TimeRange, limits Limits, loc *time.Location) []Slot {
	counts := make(map[string]int)
	for _, b := range bookings {
		for _, key := range periodKeys(b.Start, limits, loc) {
			counts[key]++
		}
	}

	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if s.Attendees > 0 {
			out = append(out, s)
			continue
		}
		if limitReached(s.Start, limits, loc, counts) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func limitReached(t time.Time, limits Limits, loc *time.Location, counts map[string]int) bool {
	local := t.In(loc)
	checks := []struct {
		max int
		key string
	}{
		{limits.PerDay, dayKey(local)},
		{limits.PerWeek, weekKey(local)},
		{limits.PerMonth, monthKey(local)},
		{limits.PerYear, yearKey(local)},
	}
	for _, c := range checks {
		if c.max > 0 && counts[c.key] >= c.max {
			return true
		}
	}
	return false
}

func periodKeys(t time.Time, limits Limits, loc *time.Location) []string {
	local := t.In(loc)
	var keys []string
	if limits.PerDay > 0 {
		keys = append(keys, dayKey(local))
	}
	if limits.PerWeek > 0 {
		keys = append(keys, weekKey(local))
	}
	if limits.PerMonth > 0 {
		keys = append(keys, monthKey(local))
	}
	if limits.PerYear > 0 {
		keys = append(keys, yearKey(local))
	}
	return keys
}

func dayKey(t time.Time) string   { return "d:" + t.Format(DateLayout) }
func monthKey(t time.Time) string { return "m:" + t.Format("2006-01") }
func yearKey(t time.Time) string  { return "y:" + t.Format("2006") }

// weekKey identifies the Monday-based week containing t.
func weekKey(t time.Time) string {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	monday := time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
	return "w:" + monday.Format(DateLayout)
}

// GroupByDate keys slots by their local date in loc, keeping start order.
func GroupByDate(slots []Slot, loc *time.Location) map[string][]Slot {
	if loc == nil {
		loc = time.UTC
	}
	out := make(map[string][]Slot)
	for _, s := range slots {
		key := s.Start.In(loc).Format(DateLayout)
		out[key] = append(out[key], s)
	}
	return out
}
