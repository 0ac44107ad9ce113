package service

import (
	"database/sql"
	"errors"
	"fmt"
	"journey-api/model"
	"journey-api/repository"
)

var (
	ErrRetrospectExists = errors.New("a retrospect already exists for this week")
	ErrValuesIncorrect  = errors.New("value tag is not in the value set")
	ErrEmotionIncorrect = errors.New("emotion tag is not in the emotion set")
	ErrDegreeIncorrect  = errors.New("degree scores must be between 0 and 5")
)

type RetrospectService struct {
	retrospectRepo repository.IRetrospectRepository
	journeyRepo    repository.IJourneyRepository
}

func NewRetrospectService(retrospectRepo repository.IRetrospectRepository, journeyRepo repository.IJourneyRepository) *RetrospectService {
	return &RetrospectService{
		retrospectRepo: retrospectRepo,
		journeyRepo:    journeyRepo,
	}
}

// CreateRetrospect validates the reflection payload and persists it. At
// most one retrospect exists per (user, week); the up-front lookup answers
// the common case and the unique index closes the race.
func (s *RetrospectService) CreateRetrospect(userIdx int, req model.CreateRetrospectRequest) (*model.Retrospect, error) {
	week := model.WeekInfo{Year: req.Year, Month: req.Month, WeekNo: req.WeekNo}

	_, err := s.retrospectRepo.FindByWeek(userIdx, week)
	if err == nil {
		return nil, ErrRetrospectExists
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("could not look up retrospect: %w", err)
	}

	if err := validateRetrospectValue(req.Value); err != nil {
		return nil, err
	}

	retrospect := &model.Retrospect{
		Value:   *req.Value,
		Record1: req.Record1,
		Record2: req.Record2,
		Record3: req.Record3,
		Year:    req.Year,
		Month:   req.Month,
		WeekNo:  req.WeekNo,
		UserIdx: userIdx,
	}
	if err := s.retrospectRepo.Create(retrospect); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrRetrospectExists
		}
		return nil, fmt.Errorf("could not create retrospect: %w", err)
	}
	return retrospect, nil
}

// ListWeekValues aggregates the distinct value tags across all journeys of
// one week, in first-seen order. Used to pre-populate the retrospect form.
func (s *RetrospectService) ListWeekValues(userIdx int, week model.WeekInfo) ([]string, error) {
	journeys, err := s.journeyRepo.ListByUser(userIdx, &week)
	if err != nil {
		return nil, err
	}

	values := make([]string, 0)
	seen := make(map[string]bool)
	for _, j := range journeys {
		for _, v := range []string{j.Value1, j.Value2} {
			if v != "" && !seen[v] {
				seen[v] = true
				values = append(values, v)
			}
		}
	}
	return values, nil
}

func validateRetrospectValue(v *model.RetrospectValue) error {
	for _, tag := range v.Yes {
		if tag != "" && !model.IsJourneyValue(tag) {
			return ErrValuesIncorrect
		}
	}
	for _, tag := range v.No {
		if tag != "" && !model.IsJourneyValue(tag) {
			return ErrValuesIncorrect
		}
	}
	for _, tag := range v.Need {
		if tag != "" && !model.IsJourneyValue(tag) {
			return ErrValuesIncorrect
		}
	}

	for _, tag := range v.Emotion {
		if tag != "" && !model.IsRetrospectEmotion(tag) {
			return ErrEmotionIncorrect
		}
	}

	// Each degree score must independently satisfy 0 <= v <= 5.
	for _, degree := range []int{v.Health, v.Happy, v.Challenge, v.Moderation} {
		if degree < 0 || degree > 5 {
			return ErrDegreeIncorrect
		}
	}
	return nil
}
