package model

import "time"

type User struct {
	Idx       int       `json:"idx"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash, never exposed
	CreatedAt time.Time `json:"createdAt"`
}
