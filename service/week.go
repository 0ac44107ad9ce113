package service

import (
	"journey-api/model"
	"time"
)

// WeekOfMonth maps a calendar date to its month-local week key. Weeks run
// Sunday through Saturday and week 1 is the week containing the 1st of the
// month, so a week number never crosses a month boundary.
func WeekOfMonth(t time.Time) model.WeekInfo {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	offset := int(first.Weekday())

	// ceil((day + offset) / 7)
	weekNo := (t.Day() + offset + 6) / 7

	return model.WeekInfo{
		Year:   t.Year(),
		Month:  int(t.Month()),
		WeekNo: weekNo,
	}
}
