package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekOfMonth_KnownDates(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want int
	}{
		// March 2024 starts on a Friday; the first Sunday is March 3rd.
		{"first of month", date(2024, time.March, 1), 1},
		{"last day of week one", date(2024, time.March, 2), 1},
		{"first sunday starts week two", date(2024, time.March, 3), 2},
		{"march fourth", date(2024, time.March, 4), 2},
		{"end of march", date(2024, time.March, 31), 6},
		// September 2024 starts on a Sunday.
		{"sunday-start month", date(2024, time.September, 1), 1},
		{"sunday-start month second week", date(2024, time.September, 8), 2},
		{"sunday-start month last day", date(2024, time.September, 30), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekOfMonth(tt.in)
			assert.Equal(t, tt.in.Year(), got.Year)
			assert.Equal(t, int(tt.in.Month()), got.Month)
			assert.Equal(t, tt.want, got.WeekNo)
		})
	}
}

func TestWeekOfMonth_Deterministic(t *testing.T) {
	d := date(2025, time.July, 17)
	first := WeekOfMonth(d)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, WeekOfMonth(d))
	}
}

// Week numbers restart at every month boundary, so two adjacent days in
// different months never share a week key.
func TestWeekOfMonth_NeverSpansMonths(t *testing.T) {
	start := date(2024, time.January, 1)
	for d := start; d.Year() == 2024; d = d.AddDate(0, 0, 1) {
		info := WeekOfMonth(d)
		assert.Equal(t, d.Year(), info.Year)
		assert.Equal(t, int(d.Month()), info.Month)
		assert.GreaterOrEqual(t, info.WeekNo, 1)
		assert.LessOrEqual(t, info.WeekNo, 6)

		next := WeekOfMonth(d.AddDate(0, 0, 1))
		if next.Month != info.Month {
			assert.Equal(t, 1, next.WeekNo)
		}
	}
}
