package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// RetrospectEmotions is the fixed set of emotion tags a retrospect may carry.
var RetrospectEmotions = []string{
	"happy",
	"proud",
	"calm",
	"excited",
	"thankful",
	"sad",
	"anxious",
	"tired",
}

// IsRetrospectEmotion reports whether v belongs to the emotion enumeration.
func IsRetrospectEmotion(v string) bool {
	for _, e := range RetrospectEmotions {
		if e == v {
			return true
		}
	}
	return false
}

// RetrospectValue is the structured reflection payload: kept/dropped value
// tags, four degree scores in [0, 5], and emotion/need tag lists.
type RetrospectValue struct {
	Yes        []string `json:"y"`
	No         []string `json:"n"`
	Health     int      `json:"health"`
	Happy      int      `json:"happy"`
	Challenge  int      `json:"challenge"`
	Moderation int      `json:"moderation"`
	Emotion    []string `json:"emotion"`
	Need       []string `json:"need"`
}

// Value implements driver.Valuer so the payload is stored as jsonb.
func (v RetrospectValue) Value() (driver.Value, error) {
	return json.Marshal(v)
}

// Scan implements sql.Scanner for reading the jsonb column.
func (v *RetrospectValue) Scan(src interface{}) error {
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, v)
	case string:
		return json.Unmarshal([]byte(data), v)
	case nil:
		return nil
	default:
		return fmt.Errorf("cannot scan %T into RetrospectValue", src)
	}
}

// Retrospect is a once-per-week structured reflection record. At most one
// exists per (userIdx, year, month, weekNo), enforced by a unique index.
type Retrospect struct {
	Idx       int             `json:"idx"`
	Value     RetrospectValue `json:"value"`
	Record1   string          `json:"record1,omitempty"`
	Record2   string          `json:"record2,omitempty"`
	Record3   string          `json:"record3,omitempty"`
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	WeekNo    int             `json:"weekNo"`
	UserIdx   int             `json:"userIdx"`
	CreatedAt time.Time       `json:"createdAt"`
}
