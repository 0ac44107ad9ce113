package handler

import (
	"context"
	"journey-api/common"
	"journey-api/repository"
	"journey-api/service"
	"net/http"
	"strings"
	"time"
)

type contextKey string

const UserIdxKey contextKey = "userIdx"

// AuthMiddleware authenticates requests with a bearer access token. Beyond
// the signature check, the refresh token the access token was minted from
// must still exist and be unexpired, so revoking a refresh token cuts off
// its access tokens as well.
type AuthMiddleware struct {
	tokens    *service.TokenService
	tokenRepo repository.ITokenRepository
	userRepo  repository.IUserRepository
}

func NewAuthMiddleware(tokens *service.TokenService, tokenRepo repository.ITokenRepository, userRepo repository.IUserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:    tokens,
		tokenRepo: tokenRepo,
		userRepo:  userRepo,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, "Authorization header is required")
			return
		}

		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
			unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.tokens.ParseAccessToken(headerParts[1])
		if err != nil {
			unauthorized(w, "Invalid or expired token")
			return
		}

		refreshToken, err := m.tokenRepo.GetByIdx(claims.RefreshTokenIdx)
		if err != nil || refreshToken.UserIdx != claims.UserIdx {
			unauthorized(w, "Token has been revoked")
			return
		}
		if time.Now().After(refreshToken.ExpiresAt) {
			unauthorized(w, "Token has expired")
			return
		}

		user, err := m.userRepo.GetUserByIdx(claims.UserIdx)
		if err != nil {
			unauthorized(w, "Unknown user")
			return
		}

		ctx := context.WithValue(r.Context(), UserIdxKey, user.Idx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	common.NewAppError(http.StatusUnauthorized, common.CodeTokenInvalid, message, nil).Send(w)
}
