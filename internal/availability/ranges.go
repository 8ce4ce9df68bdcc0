// Package availability computes bookable slots from working hours, date
// overrides, busy times and event rules. It has no storage or transport
// dependencies; callers load the inputs and hand them over as plain values.
package availability

import (
	"errors"
	"sort"
	"time"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrSlotDuration     = errors.New("slot duration must be positive")
	ErrInvalidTimeZone  = errors.New("invalid time zone")
	ErrInvalidDate      = errors.New("invalid date")
)

// TimeRange is the half-open interval [Start, End).
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimeRange validates that end is strictly after start.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// Empty reports whether the range has no duration.
func (r TimeRange) Empty() bool {
	return !r.End.After(r.Start)
}

func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Overlaps reports whether two half-open ranges share any instant.
// Ranges that only touch at an endpoint do not overlap.
func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

// Contains reports whether o lies entirely inside r.
func (r TimeRange) Contains(o TimeRange) bool {
	return !o.Start.Before(r.Start) && !o.End.After(r.End)
}

// Widen extends the range by before at the start and after at the end.
func (r TimeRange) Widen(before, after time.Duration) TimeRange {
	return TimeRange{Start: r.Start.Add(-before), End: r.End.Add(after)}
}

// MergeRanges returns the ranges sorted by start with overlapping and
// adjacent ranges coalesced. Empty ranges are dropped. The input is not modified.
func MergeRanges(ranges []TimeRange) []TimeRange {
	sorted := make([]TimeRange, 0, len(ranges))
	for _, r := range ranges {
		if !r.Empty() {
			sorted = append(sorted, r)
		}
	}
	if len(sorted) == 0 {
		return []TimeRange{}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	out := []TimeRange{sorted[0]}
	for _, r := range sorted[1:] {
		last := &out[len(out)-1]
		if !r.Start.After(last.End) {
			if r.End.After(last.End) {
				last.End = r.End
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// SubtractRanges removes every instant covered by cut from base.
func SubtractRanges(base, cut []TimeRange) []TimeRange {
	base = MergeRanges(base)
	cut = MergeRanges(cut)
	if len(cut) == 0 {
		return base
	}

	out := []TimeRange{}
	j := 0
	for _, b := range base {
		cur := b
		for j < len(cut) && !cut[j].End.After(cur.Start) {
			j++
		}
		k := j
		for k < len(cut) && cut[k].Start.Before(cur.End) {
			c := cut[k]
			if c.Start.After(cur.Start) {
				out = append(out, TimeRange{Start: cur.Start, End: c.Start})
			}
			if !c.End.Before(cur.End) {
				cur.Start = cur.End
				break
			}
			cur.Start = c.End
			k++
		}
		if !cur.Empty() {
			out = append(out, cur)
		}
	}
	return out
}

// IntersectRanges returns the instants covered by both a and b.
func IntersectRanges(a, b []TimeRange) []TimeRange {
	a = MergeRanges(a)
	b = MergeRanges(b)

	out := []TimeRange{}
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		start := maxTime(a[i].Start, b[j].Start)
		end := minTime(a[i].End, b[j].End)
		if end.After(start) {
			out = append(out, TimeRange{Start: start, End: end})
		}
		if a[i].End.Before(b[j].End) {
			i++
		} else {
			j++
		}
	}
	return out
}

// ClipRanges limits every range to window and drops what falls outside.
func ClipRanges(ranges []TimeRange, window TimeRange) []TimeRange {
	return IntersectRanges(ranges, []TimeRange{window})
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
