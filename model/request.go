// file: model/request.go

package model

// RegisterRequest defines the payload for creating a new user.
// It includes validation tags to ensure data integrity at the entry point.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the payload for user authentication. Missing fields
// are reported with dedicated error codes, so no validate tags here.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateToDoRequest defines the payload for creating a to-do. IsTop is a
// pointer so an absent flag is distinguishable from false.
type CreateToDoRequest struct {
	Title      string `json:"title"`
	Date       *Date  `json:"date"`
	IsTop      *bool  `json:"isTop"`
	JourneyIdx *int   `json:"journeyIdx"`
}

// UpdateToDoRequest carries a partial update. IsDone is tri-state:
// absent leaves the completion timestamp untouched, true stamps it with
// the current time, false clears it. JourneyIdx and Date are only applied
// together, re-validated against the week triple.
type UpdateToDoRequest struct {
	Title      string `json:"title"`
	Date       *Date  `json:"date"`
	JourneyIdx *int   `json:"journeyIdx"`
	IsTop      *bool  `json:"isTop"`
	IsDone     *bool  `json:"isDone"`
}

// CreateRetrospectRequest defines the payload for the weekly retrospective.
type CreateRetrospectRequest struct {
	Value   *RetrospectValue `json:"value"`
	Record1 string           `json:"record1"`
	Record2 string           `json:"record2"`
	Record3 string           `json:"record3"`
	Year    int              `json:"year"`
	Month   int              `json:"month"`
	WeekNo  int              `json:"weekNo"`
}
