package model

import "time"

// DefaultJourneyTitle marks the auto-created weekly container that holds
// to-dos created without an explicit journey.
const DefaultJourneyTitle = "default"

// JourneyValues is the fixed set of value tags a journey (and a retrospect's
// y/n/need lists) may carry.
var JourneyValues = []string{
	"health",
	"relationship",
	"learning",
	"achievement",
	"leisure",
	"emotion",
	"money",
	"growth",
}

// IsJourneyValue reports whether v belongs to the value tag enumeration.
func IsJourneyValue(v string) bool {
	for _, jv := range JourneyValues {
		if jv == v {
			return true
		}
	}
	return false
}

// Journey is a weekly container tagging up to two value themes a user
// pursues that week. Its week triple is derived once at creation and never
// recomputed.
type Journey struct {
	Idx       int       `json:"idx"`
	Title     string    `json:"title"`
	Value1    string    `json:"value1"`
	Value2    string    `json:"value2,omitempty"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	WeekNo    int       `json:"weekNo"`
	Date      Date      `json:"date"`
	UserIdx   int       `json:"userIdx"`
	CreatedAt time.Time `json:"createdAt"`
}

// JourneyToDos is the GET /todo/journey projection: a journey with its
// to-dos nested, pinned-first then date ascending.
type JourneyToDos struct {
	Idx     int            `json:"idx"`
	Title   string         `json:"title"`
	Value1  string         `json:"value1"`
	Value2  string         `json:"value2,omitempty"`
	Year    int            `json:"year"`
	Month   int            `json:"month"`
	WeekNo  int            `json:"weekNo"`
	UserIdx int            `json:"userIdx"`
	ToDos   []ToDoListItem `json:"toDos"`
}
