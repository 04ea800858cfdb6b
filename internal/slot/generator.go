package slot

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time within a day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "15:04" or "15:04:05" (seconds are ignored).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
	}
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

// GenerateParams describe one bulk slot generation request. Dates are
// calendar days (the time portion is ignored); all wall-clock values are
// interpreted in Location.
type GenerateParams struct {
	StartDate       time.Time
	EndDate         time.Time
	DaysOfWeek      []time.Weekday // Sunday = 0
	DailyStart      TimeOfDay
	DailyEnd        TimeOfDay
	DurationMinutes int
	Location        *time.Location
}

// Generate produces the ordered, non-overlapping candidate intervals for
// the given parameters. Candidates step forward from DailyStart by the
// slot duration; a candidate that would run past DailyEnd is dropped, not
// truncated. An empty result is valid, not an error.
func Generate(p GenerateParams) ([]Interval, error) {
	if p.Location == nil {
		p.Location = time.UTC
	}
	if len(p.DaysOfWeek) == 0 {
		return nil, ErrInvalidInput
	}
	for _, d := range p.DaysOfWeek {
		if d < time.Sunday || d > time.Saturday {
			return nil, ErrInvalidInput
		}
	}
	if p.DurationMinutes <= 0 {
		return nil, ErrInvalidInput
	}
	if p.DailyStart.minutes() >= p.DailyEnd.minutes() {
		return nil, ErrInvalidInput
	}

	startDay := dateOnly(p.StartDate, p.Location)
	endDay := dateOnly(p.EndDate, p.Location)
	if startDay.After(endDay) {
		return nil, ErrInvalidRange
	}

	wanted := make(map[time.Weekday]bool, len(p.DaysOfWeek))
	for _, d := range p.DaysOfWeek {
		wanted[d] = true
	}

	var intervals []Interval
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		if !wanted[day.Weekday()] {
			continue
		}

		y, m, d := day.Date()
		windowEnd := time.Date(y, m, d, p.DailyEnd.Hour, p.DailyEnd.Minute, 0, 0, p.Location)

		for i := 0; ; i++ {
			startMin := p.DailyStart.minutes() + i*p.DurationMinutes
			start := time.Date(y, m, d, 0, startMin, 0, 0, p.Location)
			end := time.Date(y, m, d, 0, startMin+p.DurationMinutes, 0, 0, p.Location)
			if end.After(windowEnd) {
				break
			}
			intervals = append(intervals, Interval{Start: start, End: end})
		}
	}

	return intervals, nil
}

func dateOnly(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
