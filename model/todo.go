package model

import "time"

// ToDo belongs to exactly one journey; the journey's week triple must match
// the week implied by the to-do's date.
type ToDo struct {
	Idx        int        `json:"idx"`
	Title      string     `json:"title"`
	Date       Date       `json:"date"`
	IsTop      bool       `json:"isTop"`
	IsDone     *time.Time `json:"isDone"` // completion timestamp, null while open
	JourneyIdx int        `json:"journeyIdx"`
	UserIdx    int        `json:"userIdx"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ToDoListItem is the projection used by the list endpoints.
type ToDoListItem struct {
	Idx       int        `json:"idx"`
	Title     string     `json:"title"`
	IsTop     bool       `json:"isTop"`
	IsDone    *time.Time `json:"isDone"`
	Date      Date       `json:"date"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ToDoDateGroup is one bucket of the GET /todo/date response.
type ToDoDateGroup struct {
	Day      string         `json:"day"`
	ToDoList []ToDoListItem `json:"todoList"`
}
