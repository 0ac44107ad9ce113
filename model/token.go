// file: model/token.go

package model

import "time"

// RefreshToken holds the data for a refresh token in the database.
// The token itself is opaque; only its row idx appears inside access tokens.
type RefreshToken struct {
	Idx       int       `json:"idx"`
	Token     string    `json:"token"`
	UserIdx   int       `json:"userIdx"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
