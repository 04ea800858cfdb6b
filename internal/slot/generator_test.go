package slot

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func mustTimeOfDay(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, err := ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		days       []time.Weekday
		dailyStart string
		dailyEnd   string
		duration   int
		want       []Interval
	}{
		{
			name:       "single day full window",
			start:      monday,
			end:        monday,
			days:       []time.Weekday{time.Monday},
			dailyStart: "09:00",
			dailyEnd:   "11:00",
			duration:   60,
			want: []Interval{
				{Start: monday.Add(9 * time.Hour), End: monday.Add(10 * time.Hour)},
				{Start: monday.Add(10 * time.Hour), End: monday.Add(11 * time.Hour)},
			},
		},
		{
			name:       "trailing partial slot is dropped not truncated",
			start:      monday,
			end:        monday,
			days:       []time.Weekday{time.Monday},
			dailyStart: "09:00",
			dailyEnd:   "10:05",
			duration:   30,
			want: []Interval{
				{Start: monday.Add(9 * time.Hour), End: monday.Add(9*time.Hour + 30*time.Minute)},
				{Start: monday.Add(9*time.Hour + 30*time.Minute), End: monday.Add(10 * time.Hour)},
			},
		},
		{
			name:       "slot ending exactly at window end is kept",
			start:      monday,
			end:        monday,
			days:       []time.Weekday{time.Monday},
			dailyStart: "09:00",
			dailyEnd:   "09:30",
			duration:   30,
			want: []Interval{
				{Start: monday.Add(9 * time.Hour), End: monday.Add(9*time.Hour + 30*time.Minute)},
			},
		},
		{
			name:       "window shorter than one slot yields nothing",
			start:      monday,
			end:        monday,
			days:       []time.Weekday{time.Monday},
			dailyStart: "09:00",
			dailyEnd:   "09:20",
			duration:   30,
			want:       nil,
		},
		{
			name:       "weekday not in range yields nothing",
			start:      monday,
			end:        monday.AddDate(0, 0, 4), // Mon..Fri
			days:       []time.Weekday{time.Sunday},
			dailyStart: "09:00",
			dailyEnd:   "17:00",
			duration:   60,
			want:       nil,
		},
		{
			name:       "multiple weekdays across a week",
			start:      monday,
			end:        monday.AddDate(0, 0, 6),
			days:       []time.Weekday{time.Monday, time.Thursday},
			dailyStart: "08:00",
			dailyEnd:   "09:00",
			duration:   60,
			want: []Interval{
				{Start: monday.Add(8 * time.Hour), End: monday.Add(9 * time.Hour)},
				{Start: monday.AddDate(0, 0, 3).Add(8 * time.Hour), End: monday.AddDate(0, 0, 3).Add(9 * time.Hour)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(GenerateParams{
				StartDate:       tt.start,
				EndDate:         tt.end,
				DaysOfWeek:      tt.days,
				DailyStart:      mustTimeOfDay(t, tt.dailyStart),
				DailyEnd:        mustTimeOfDay(t, tt.dailyEnd),
				DurationMinutes: tt.duration,
				Location:        time.UTC,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateInvalidInputs(t *testing.T) {
	valid := GenerateParams{
		StartDate:       monday,
		EndDate:         monday,
		DaysOfWeek:      []time.Weekday{time.Monday},
		DailyStart:      TimeOfDay{Hour: 9},
		DailyEnd:        TimeOfDay{Hour: 17},
		DurationMinutes: 30,
		Location:        time.UTC,
	}

	t.Run("start date after end date", func(t *testing.T) {
		p := valid
		p.StartDate = monday.AddDate(0, 0, 1)
		_, err := Generate(p)
		assert.True(t, errors.Is(err, ErrInvalidRange))
	})

	t.Run("empty weekday set", func(t *testing.T) {
		p := valid
		p.DaysOfWeek = nil
		_, err := Generate(p)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("weekday out of range", func(t *testing.T) {
		p := valid
		p.DaysOfWeek = []time.Weekday{time.Weekday(7)}
		_, err := Generate(p)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("inverted daily window", func(t *testing.T) {
		p := valid
		p.DailyStart = TimeOfDay{Hour: 17}
		p.DailyEnd = TimeOfDay{Hour: 9}
		_, err := Generate(p)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("non-positive duration", func(t *testing.T) {
		p := valid
		p.DurationMinutes = 0
		_, err := Generate(p)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})
}

// Property check over a dense request: every interval lies inside the
// daily window on a wanted weekday, has the exact duration, and no two
// intervals overlap.
func TestGenerateProperties(t *testing.T) {
	days := []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	got, err := Generate(GenerateParams{
		StartDate:       monday,
		EndDate:         monday.AddDate(0, 0, 27),
		DaysOfWeek:      days,
		DailyStart:      TimeOfDay{Hour: 9, Minute: 15},
		DailyEnd:        TimeOfDay{Hour: 16, Minute: 45},
		DurationMinutes: 45,
		Location:        time.UTC,
	})
	require.NoError(t, err)
	require.NotEmpty(t, got)

	wanted := map[time.Weekday]bool{}
	for _, d := range days {
		wanted[d] = true
	}

	for i, iv := range got {
		assert.True(t, wanted[iv.Start.Weekday()], "interval %d on unwanted weekday %s", i, iv.Start.Weekday())
		assert.Equal(t, 45*time.Minute, iv.End.Sub(iv.Start), "interval %d has wrong duration", i)

		dayStart := time.Date(iv.Start.Year(), iv.Start.Month(), iv.Start.Day(), 9, 15, 0, 0, time.UTC)
		dayEnd := time.Date(iv.Start.Year(), iv.Start.Month(), iv.Start.Day(), 16, 45, 0, 0, time.UTC)
		assert.False(t, iv.Start.Before(dayStart), "interval %d starts before daily window", i)
		assert.False(t, iv.End.After(dayEnd), "interval %d ends after daily window", i)

		if i > 0 {
			assert.False(t, iv.Start.Before(got[i-1].End), "interval %d overlaps previous", i)
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 9, Minute: 30}, tod)

	tod, err = ParseTimeOfDay("18:00:00")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 18, Minute: 0}, tod)

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)

	_, err = ParseTimeOfDay("not-a-time")
	assert.Error(t, err)
}
