package repository

import (
	"database/sql"
	"journey-api/logger"
	"journey-api/model"

	"github.com/sirupsen/logrus"
)

// IToDoRepository defines the contract for to-do database operations.
type IToDoRepository interface {
	Create(tx *sql.Tx, todo *model.ToDo) error
	GetByIdxAndUser(idx, userIdx int) (*model.ToDo, error)
	Update(todo *model.ToDo) error
	Delete(idx, userIdx int) error
	ListByUser(userIdx int, week *model.WeekInfo) ([]*model.ToDo, error)
}

type ToDoRepository struct {
	DB *sql.DB
}

func NewToDoRepository(db *sql.DB) *ToDoRepository {
	return &ToDoRepository{DB: db}
}

// Create inserts a new to-do inside the given transaction.
func (r *ToDoRepository) Create(tx *sql.Tx, todo *model.ToDo) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_idx":    todo.UserIdx,
		"journey_idx": todo.JourneyIdx,
		"date":        todo.Date.String(),
	})
	log.Info("Executing query to create a new to-do")

	query := `INSERT INTO todos (title, date, is_top, journey_idx, user_idx)
		VALUES ($1, $2, $3, $4, $5) RETURNING idx, created_at`
	err := tx.QueryRow(query, todo.Title, todo.Date, todo.IsTop, todo.JourneyIdx, todo.UserIdx).
		Scan(&todo.Idx, &todo.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create to-do query")
		return err
	}
	return nil
}

// GetByIdxAndUser retrieves a to-do scoped to its owner.
func (r *ToDoRepository) GetByIdxAndUser(idx, userIdx int) (*model.ToDo, error) {
	todo := &model.ToDo{}
	query := `SELECT idx, title, date, is_top, is_done, journey_idx, user_idx, created_at
		FROM todos WHERE idx = $1 AND user_idx = $2`
	err := r.DB.QueryRow(query, idx, userIdx).Scan(
		&todo.Idx, &todo.Title, &todo.Date, &todo.IsTop, &todo.IsDone,
		&todo.JourneyIdx, &todo.UserIdx, &todo.CreatedAt,
	)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithField("idx", idx).WithError(err).Error("Failed to execute get to-do query")
		}
		return nil, err
	}
	return todo, nil
}

// Update persists the mutable fields of a to-do.
func (r *ToDoRepository) Update(todo *model.ToDo) error {
	log := logger.Log.WithFields(logrus.Fields{
		"idx":      todo.Idx,
		"user_idx": todo.UserIdx,
	})
	log.Info("Executing query to update a to-do")

	query := `UPDATE todos SET title = $1, date = $2, is_top = $3, is_done = $4, journey_idx = $5
		WHERE idx = $6 AND user_idx = $7`
	_, err := r.DB.Exec(query, todo.Title, todo.Date, todo.IsTop, todo.IsDone, todo.JourneyIdx, todo.Idx, todo.UserIdx)
	if err != nil {
		log.WithError(err).Error("Failed to execute update to-do query")
		return err
	}
	return nil
}

// Delete removes a to-do scoped to its owner. Returns sql.ErrNoRows when
// no row matched, so callers can answer 404.
func (r *ToDoRepository) Delete(idx, userIdx int) error {
	log := logger.Log.WithFields(logrus.Fields{
		"idx":      idx,
		"user_idx": userIdx,
	})
	log.Info("Executing query to delete a to-do")

	res, err := r.DB.Exec(`DELETE FROM todos WHERE idx = $1 AND user_idx = $2`, idx, userIdx)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete to-do query")
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListByUser retrieves a user's to-dos ordered pinned-first then date
// ascending. A week filter narrows to to-dos whose journey belongs to that
// week.
func (r *ToDoRepository) ListByUser(userIdx int, week *model.WeekInfo) ([]*model.ToDo, error) {
	query := `SELECT t.idx, t.title, t.date, t.is_top, t.is_done, t.journey_idx, t.user_idx, t.created_at
		FROM todos t`
	args := []interface{}{userIdx}
	if week != nil {
		query += ` JOIN journeys j ON j.idx = t.journey_idx
			WHERE t.user_idx = $1 AND j.year = $2 AND j.month = $3 AND j.week_no = $4`
		args = append(args, week.Year, week.Month, week.WeekNo)
	} else {
		query += ` WHERE t.user_idx = $1`
	}
	query += ` ORDER BY t.is_top DESC, t.date ASC, t.idx ASC`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		logger.Log.WithField("user_idx", userIdx).WithError(err).Error("Failed to execute list to-dos query")
		return nil, err
	}
	defer rows.Close()

	var todos []*model.ToDo
	for rows.Next() {
		var t model.ToDo
		if err := rows.Scan(
			&t.Idx, &t.Title, &t.Date, &t.IsTop, &t.IsDone,
			&t.JourneyIdx, &t.UserIdx, &t.CreatedAt,
		); err != nil {
			logger.Log.WithError(err).Error("Failed to scan to-do row")
			return nil, err
		}
		todos = append(todos, &t)
	}
	return todos, rows.Err()
}
