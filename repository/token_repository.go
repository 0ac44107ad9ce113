// file: repository/token_repository.go

package repository

import (
	"database/sql"
	"journey-api/logger"
	"journey-api/model"

	"github.com/sirupsen/logrus"
)

// ITokenRepository defines the contract for refresh token database operations.
type ITokenRepository interface {
	Create(token *model.RefreshToken) error
	GetByIdx(idx int) (*model.RefreshToken, error)
	DeleteByIdx(idx int) error
}

// TokenRepository implements ITokenRepository.
type TokenRepository struct {
	DB *sql.DB
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{DB: db}
}

// Create inserts a new refresh token record into the database.
func (r *TokenRepository) Create(token *model.RefreshToken) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_idx":   token.UserIdx,
		"expires_at": token.ExpiresAt,
	})
	log.Info("Executing query to create a new refresh token")

	query := `INSERT INTO refresh_tokens (token, user_idx, expires_at) VALUES ($1, $2, $3) RETURNING idx, created_at`
	err := r.DB.QueryRow(query, token.Token, token.UserIdx, token.ExpiresAt).Scan(&token.Idx, &token.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create refresh token query")
		return err
	}
	return nil
}

// GetByIdx retrieves a refresh token by its row idx. Used by the auth
// middleware to verify the access token's refresh token is still live.
func (r *TokenRepository) GetByIdx(idx int) (*model.RefreshToken, error) {
	token := &model.RefreshToken{}
	query := `SELECT idx, token, user_idx, expires_at, created_at FROM refresh_tokens WHERE idx = $1`
	err := r.DB.QueryRow(query, idx).Scan(&token.Idx, &token.Token, &token.UserIdx, &token.ExpiresAt, &token.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithField("idx", idx).WithError(err).Error("Failed to execute get refresh token query")
		}
		return nil, err // Return sql.ErrNoRows if not found
	}
	return token, nil
}

// DeleteByIdx deletes a single refresh token. This is the compensating
// action when access token signing fails after the row was persisted.
func (r *TokenRepository) DeleteByIdx(idx int) error {
	log := logger.Log.WithField("idx", idx)
	log.Info("Executing query to delete refresh token")

	query := `DELETE FROM refresh_tokens WHERE idx = $1`
	_, err := r.DB.Exec(query, idx)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete refresh token query")
		return err
	}
	return nil
}
