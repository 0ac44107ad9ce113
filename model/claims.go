package model

import "github.com/golang-jwt/jwt/v5"

// AppClaims binds an access token to the user and to the refresh token it
// was minted from, so revoking the refresh token kills the access token too.
type AppClaims struct {
	UserIdx         int `json:"userIdx"`
	RefreshTokenIdx int `json:"refreshTokenIdx"`
	jwt.RegisteredClaims
}
