package service

import (
	"database/sql"
	"errors"
	"fmt"
	"journey-api/logger"
	"journey-api/model"
	"journey-api/repository"

	"time"

	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer is the slice of the token service the auth service needs.
type TokenIssuer interface {
	GenerateRefreshToken() (string, error)
	GenerateAccessToken(userIdx, refreshTokenIdx int) (string, error)
	RefreshTokenExpiry() time.Time
}

var (
	// ErrLoginInfoIncorrect covers both unknown email and wrong password,
	// so responses cannot be used to enumerate accounts.
	ErrLoginInfoIncorrect = errors.New("email or password is incorrect")
	ErrEmailTaken         = errors.New("email is already registered")
)

// TokenPair is the login result: a signed access token and the opaque
// refresh token string.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AuthService struct {
	userRepo  repository.IUserRepository
	tokenRepo repository.ITokenRepository
	tokens    TokenIssuer
}

func NewAuthService(userRepo repository.IUserRepository, tokenRepo repository.ITokenRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokens:    tokens,
	}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Login validates credentials and issues a token pair. The refresh token is
// persisted first; if access token signing then fails, the refresh token
// row is deleted again so no orphans remain.
func (s *AuthService) Login(email, password string) (*TokenPair, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrLoginInfoIncorrect
		}
		return nil, fmt.Errorf("could not look up user: %w", err)
	}

	if !CheckPasswordHash(password, user.Password) {
		return nil, ErrLoginInfoIncorrect
	}

	opaque, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	refreshToken := &model.RefreshToken{
		Token:     opaque,
		UserIdx:   user.Idx,
		ExpiresAt: s.tokens.RefreshTokenExpiry(),
	}
	if err := s.tokenRepo.Create(refreshToken); err != nil {
		return nil, fmt.Errorf("could not persist refresh token: %w", err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.Idx, refreshToken.Idx)
	if err != nil {
		// Compensating action: do not leave an orphaned refresh token.
		if delErr := s.tokenRepo.DeleteByIdx(refreshToken.Idx); delErr != nil {
			logger.Log.WithError(delErr).WithField("refresh_token_idx", refreshToken.Idx).
				Error("Failed to delete refresh token after signing failure")
		}
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
	}, nil
}

// Register creates a new user with a bcrypt-hashed password.
func (s *AuthService) Register(email, password string) (*model.User, error) {
	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    email,
		Password: hashed,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("could not create user: %w", err)
	}
	return user, nil
}
