package service

import (
	"database/sql"
	"errors"
	"journey-api/logger"
	"journey-api/model"
	"journey-api/repository"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var (
	ErrJourneyNotFound = errors.New("journey not found")
	ErrIncorrectWeekNo = errors.New("journey does not belong to the week of the given date")
)

type JourneyService struct {
	journeyRepo repository.IJourneyRepository
}

func NewJourneyService(journeyRepo repository.IJourneyRepository) *JourneyService {
	return &JourneyService{journeyRepo: journeyRepo}
}

// ResolveJourneyForToDo returns the idx of the journey a new to-do should
// attach to. With an explicit journeyIdx the journey must exist and belong
// to the week of the to-do's date. Without one, the week's "default"
// journey is looked up and created inside tx if absent. A concurrent
// creation surfaces as a unique violation for the caller to retry.
func (s *JourneyService) ResolveJourneyForToDo(tx *sql.Tx, userIdx int, date model.Date, journeyIdx *int) (int, error) {
	weekInfo := WeekOfMonth(date.Time)

	if journeyIdx != nil {
		return s.ValidateJourneyWeek(*journeyIdx, weekInfo)
	}

	journey, err := s.journeyRepo.FindDefault(tx, userIdx, weekInfo)
	if err == nil {
		return journey.Idx, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	value1, value2 := randomValuePair()
	defaultJourney := &model.Journey{
		Title:   model.DefaultJourneyTitle,
		Value1:  value1,
		Value2:  value2,
		Year:    weekInfo.Year,
		Month:   weekInfo.Month,
		WeekNo:  weekInfo.WeekNo,
		Date:    date,
		UserIdx: userIdx,
	}
	if err := s.journeyRepo.Create(tx, defaultJourney); err != nil {
		return 0, err
	}

	logger.Log.WithFields(logrus.Fields{
		"user_idx": userIdx,
		"year":     weekInfo.Year,
		"month":    weekInfo.Month,
		"week_no":  weekInfo.WeekNo,
	}).Info("Created default journey for week")

	return defaultJourney.Idx, nil
}

// ValidateJourneyWeek checks that an explicitly referenced journey exists
// and carries the same week triple as the given week.
func (s *JourneyService) ValidateJourneyWeek(journeyIdx int, week model.WeekInfo) (int, error) {
	journey, err := s.journeyRepo.GetByIdx(journeyIdx)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrJourneyNotFound
		}
		return 0, err
	}

	if journey.Year != week.Year || journey.Month != week.Month || journey.WeekNo != week.WeekNo {
		return 0, ErrIncorrectWeekNo
	}
	return journey.Idx, nil
}

// ListByUser exposes the journey listing for the to-do projections.
func (s *JourneyService) ListByUser(userIdx int, week *model.WeekInfo) ([]*model.Journey, error) {
	return s.journeyRepo.ListByUser(userIdx, week)
}

// randomValuePair draws two distinct value tags without replacement.
func randomValuePair() (string, string) {
	values := model.JourneyValues
	i := rand.IntN(len(values))
	j := rand.IntN(len(values) - 1)
	if j >= i {
		j++
	}
	return values[i], values[j]
}
