package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"journey-api/logger"
	"journey-api/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const accessTokenTTL = 1 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenConfig carries everything the token service needs. It is passed in
// at construction; the service never reads global configuration.
type TokenConfig struct {
	SigningKey      string
	RefreshTokenTTL time.Duration
}

// TokenService issues opaque refresh tokens and signed access tokens, and
// validates bearer tokens on incoming requests.
type TokenService struct {
	cfg TokenConfig
}

func NewTokenService(cfg TokenConfig) *TokenService {
	return &TokenService{cfg: cfg}
}

// GenerateRefreshToken returns a new opaque token string. The value carries
// no structure; it only identifies a refresh_tokens row.
func (s *TokenService) GenerateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// GenerateAccessToken signs a short-lived JWT bound to the user and the
// refresh token it was derived from.
func (s *TokenService) GenerateAccessToken(userIdx, refreshTokenIdx int) (string, error) {
	now := time.Now()
	claims := &model.AppClaims{
		UserIdx:         userIdx,
		RefreshTokenIdx: refreshTokenIdx,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.SigningKey))
	if err != nil {
		logger.Log.WithError(err).WithField("user_idx", userIdx).Error("Failed to sign access token")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}

	return tokenString, nil
}

// ParseAccessToken verifies the signature and expiry of a bearer token and
// returns its claims.
func (s *TokenService) ParseAccessToken(tokenString string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.SigningKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RefreshTokenExpiry returns the expiry timestamp for a refresh token
// issued now.
func (s *TokenService) RefreshTokenExpiry() time.Time {
	return time.Now().Add(s.cfg.RefreshTokenTTL)
}
