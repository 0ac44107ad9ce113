package repository

import (
	"database/sql"
	"journey-api/model"
)

// IUserRepository defines the contract for user database operations.
type IUserRepository interface {
	CreateUser(user *model.User) error
	GetUserByEmail(email string) (*model.User, error)
	GetUserByIdx(idx int) (*model.User, error)
}

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) CreateUser(user *model.User) error {
	query := `INSERT INTO users (email, password) VALUES ($1, $2) RETURNING idx, created_at`
	return r.DB.QueryRow(query, user.Email, user.Password).Scan(&user.Idx, &user.CreatedAt)
}

func (r *UserRepository) GetUserByEmail(email string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT idx, email, password, created_at FROM users WHERE email = $1`
	err := r.DB.QueryRow(query, email).Scan(&user.Idx, &user.Email, &user.Password, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByIdx(idx int) (*model.User, error) {
	user := &model.User{}
	query := `SELECT idx, email, password, created_at FROM users WHERE idx = $1`
	err := r.DB.QueryRow(query, idx).Scan(&user.Idx, &user.Email, &user.Password, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}
