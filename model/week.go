package model

// WeekInfo is the canonical (year, month, weekNo) key for one calendar week.
// WeekNo is a week-within-month ordinal; it never spans two months.
type WeekInfo struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	WeekNo int `json:"weekNo"`
}
