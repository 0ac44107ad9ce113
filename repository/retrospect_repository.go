package repository

import (
	"database/sql"
	"journey-api/logger"
	"journey-api/model"

	"github.com/sirupsen/logrus"
)

// IRetrospectRepository defines the contract for retrospect database operations.
type IRetrospectRepository interface {
	Create(retrospect *model.Retrospect) error
	FindByWeek(userIdx int, week model.WeekInfo) (*model.Retrospect, error)
}

type RetrospectRepository struct {
	DB *sql.DB
}

func NewRetrospectRepository(db *sql.DB) *RetrospectRepository {
	return &RetrospectRepository{DB: db}
}

// Create inserts a new retrospect. The unique index on
// (user_idx, year, month, week_no) rejects a second record for the same week.
func (r *RetrospectRepository) Create(retrospect *model.Retrospect) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_idx": retrospect.UserIdx,
		"year":     retrospect.Year,
		"month":    retrospect.Month,
		"week_no":  retrospect.WeekNo,
	})
	log.Info("Executing query to create a new retrospect")

	query := `INSERT INTO retrospects (value, record1, record2, record3, year, month, week_no, user_idx)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING idx, created_at`
	err := r.DB.QueryRow(query,
		retrospect.Value, nullString(retrospect.Record1), nullString(retrospect.Record2), nullString(retrospect.Record3),
		retrospect.Year, retrospect.Month, retrospect.WeekNo, retrospect.UserIdx,
	).Scan(&retrospect.Idx, &retrospect.CreatedAt)
	if err != nil {
		if !IsUniqueViolation(err) {
			log.WithError(err).Error("Failed to execute create retrospect query")
		}
		return err
	}
	return nil
}

// FindByWeek retrieves the retrospect for one user week, if any.
func (r *RetrospectRepository) FindByWeek(userIdx int, week model.WeekInfo) (*model.Retrospect, error) {
	retrospect := &model.Retrospect{}
	var record1, record2, record3 sql.NullString
	query := `SELECT idx, value, record1, record2, record3, year, month, week_no, user_idx, created_at
		FROM retrospects WHERE user_idx = $1 AND year = $2 AND month = $3 AND week_no = $4`
	err := r.DB.QueryRow(query, userIdx, week.Year, week.Month, week.WeekNo).Scan(
		&retrospect.Idx, &retrospect.Value, &record1, &record2, &record3,
		&retrospect.Year, &retrospect.Month, &retrospect.WeekNo,
		&retrospect.UserIdx, &retrospect.CreatedAt,
	)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute find retrospect query")
		}
		return nil, err
	}
	retrospect.Record1 = record1.String
	retrospect.Record2 = record2.String
	retrospect.Record3 = record3.String
	return retrospect, nil
}
