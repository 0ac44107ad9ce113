package repository

import (
	"database/sql"
	"journey-api/logger"
	"journey-api/model"

	"github.com/sirupsen/logrus"
)

// IJourneyRepository defines the contract for journey database operations.
// Create and FindDefault are transaction-scoped so default journey creation
// participates in the enclosing to-do transaction.
type IJourneyRepository interface {
	Create(tx *sql.Tx, journey *model.Journey) error
	GetByIdx(idx int) (*model.Journey, error)
	FindDefault(tx *sql.Tx, userIdx int, week model.WeekInfo) (*model.Journey, error)
	ListByUser(userIdx int, week *model.WeekInfo) ([]*model.Journey, error)
}

type JourneyRepository struct {
	DB *sql.DB
}

func NewJourneyRepository(db *sql.DB) *JourneyRepository {
	return &JourneyRepository{DB: db}
}

// Create inserts a new journey inside the given transaction.
func (r *JourneyRepository) Create(tx *sql.Tx, journey *model.Journey) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_idx": journey.UserIdx,
		"title":    journey.Title,
		"year":     journey.Year,
		"month":    journey.Month,
		"week_no":  journey.WeekNo,
	})
	log.Info("Executing query to create a new journey")

	query := `INSERT INTO journeys (title, value1, value2, year, month, week_no, date, user_idx)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING idx, created_at`
	err := tx.QueryRow(query,
		journey.Title, journey.Value1, nullString(journey.Value2),
		journey.Year, journey.Month, journey.WeekNo, journey.Date, journey.UserIdx,
	).Scan(&journey.Idx, &journey.CreatedAt)
	if err != nil {
		if !IsUniqueViolation(err) {
			log.WithError(err).Error("Failed to execute create journey query")
		}
		return err
	}
	return nil
}

// GetByIdx retrieves a journey by its idx.
func (r *JourneyRepository) GetByIdx(idx int) (*model.Journey, error) {
	journey := &model.Journey{}
	var value2 sql.NullString
	query := `SELECT idx, title, value1, value2, year, month, week_no, date, user_idx, created_at
		FROM journeys WHERE idx = $1`
	err := r.DB.QueryRow(query, idx).Scan(
		&journey.Idx, &journey.Title, &journey.Value1, &value2,
		&journey.Year, &journey.Month, &journey.WeekNo, &journey.Date,
		&journey.UserIdx, &journey.CreatedAt,
	)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithField("idx", idx).WithError(err).Error("Failed to execute get journey query")
		}
		return nil, err
	}
	journey.Value2 = value2.String
	return journey, nil
}

// FindDefault looks up the auto-created "default" journey for one user week.
func (r *JourneyRepository) FindDefault(tx *sql.Tx, userIdx int, week model.WeekInfo) (*model.Journey, error) {
	journey := &model.Journey{}
	var value2 sql.NullString
	query := `SELECT idx, title, value1, value2, year, month, week_no, date, user_idx, created_at
		FROM journeys WHERE user_idx = $1 AND year = $2 AND month = $3 AND week_no = $4 AND title = $5`
	err := tx.QueryRow(query, userIdx, week.Year, week.Month, week.WeekNo, model.DefaultJourneyTitle).Scan(
		&journey.Idx, &journey.Title, &journey.Value1, &value2,
		&journey.Year, &journey.Month, &journey.WeekNo, &journey.Date,
		&journey.UserIdx, &journey.CreatedAt,
	)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute find default journey query")
		}
		return nil, err
	}
	journey.Value2 = value2.String
	return journey, nil
}

// ListByUser retrieves all journeys for a user, optionally narrowed to one week.
func (r *JourneyRepository) ListByUser(userIdx int, week *model.WeekInfo) ([]*model.Journey, error) {
	query := `SELECT idx, title, value1, value2, year, month, week_no, date, user_idx, created_at
		FROM journeys WHERE user_idx = $1`
	args := []interface{}{userIdx}
	if week != nil {
		query += ` AND year = $2 AND month = $3 AND week_no = $4`
		args = append(args, week.Year, week.Month, week.WeekNo)
	}
	query += ` ORDER BY idx ASC`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		logger.Log.WithField("user_idx", userIdx).WithError(err).Error("Failed to execute list journeys query")
		return nil, err
	}
	defer rows.Close()

	var journeys []*model.Journey
	for rows.Next() {
		var j model.Journey
		var value2 sql.NullString
		if err := rows.Scan(
			&j.Idx, &j.Title, &j.Value1, &value2,
			&j.Year, &j.Month, &j.WeekNo, &j.Date, &j.UserIdx, &j.CreatedAt,
		); err != nil {
			logger.Log.WithError(err).Error("Failed to scan journey row")
			return nil, err
		}
		j.Value2 = value2.String
		journeys = append(journeys, &j)
	}
	return journeys, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
