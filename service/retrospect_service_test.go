package service

import (
	"database/sql"
	"journey-api/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRetrospectRepo struct{ mock.Mock }

func (m *mockRetrospectRepo) Create(retrospect *model.Retrospect) error {
	args := m.Called(retrospect)
	if args.Error(0) == nil {
		retrospect.Idx = 7
	}
	return args.Error(0)
}
func (m *mockRetrospectRepo) FindByWeek(userIdx int, week model.WeekInfo) (*model.Retrospect, error) {
	args := m.Called(userIdx, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Retrospect), args.Error(1)
}

func validValue() *model.RetrospectValue {
	return &model.RetrospectValue{
		Yes:        []string{"health"},
		No:         []string{"money"},
		Health:     4,
		Happy:      3,
		Challenge:  5,
		Moderation: 0,
		Emotion:    []string{"happy", "tired"},
		Need:       []string{"leisure"},
	}
}

func retrospectRequest(value *model.RetrospectValue) model.CreateRetrospectRequest {
	return model.CreateRetrospectRequest{
		Value:   value,
		Record1: "kept my routine",
		Year:    2024,
		Month:   3,
		WeekNo:  2,
	}
}

func TestRetrospectService_CreateRetrospect(t *testing.T) {
	userIdx := 5
	week := model.WeekInfo{Year: 2024, Month: 3, WeekNo: 2}

	t.Run("success", func(t *testing.T) {
		retroRepo := new(mockRetrospectRepo)
		retroRepo.On("FindByWeek", userIdx, week).Return(nil, sql.ErrNoRows).Once()
		retroRepo.On("Create", mock.AnythingOfType("*model.Retrospect")).Return(nil).Once()

		svc := NewRetrospectService(retroRepo, new(mockJourneyRepo))
		retrospect, err := svc.CreateRetrospect(userIdx, retrospectRequest(validValue()))

		assert.NoError(t, err)
		assert.Equal(t, 7, retrospect.Idx)
		assert.Equal(t, userIdx, retrospect.UserIdx)
		retroRepo.AssertExpectations(t)
	})

	t.Run("second retrospect for the same week is rejected", func(t *testing.T) {
		retroRepo := new(mockRetrospectRepo)
		retroRepo.On("FindByWeek", userIdx, week).Return(&model.Retrospect{Idx: 1}, nil).Once()

		svc := NewRetrospectService(retroRepo, new(mockJourneyRepo))
		_, err := svc.CreateRetrospect(userIdx, retrospectRequest(validValue()))

		assert.Equal(t, ErrRetrospectExists, err)
		retroRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("degree bounds", func(t *testing.T) {
		tests := []struct {
			name    string
			health  int
			wantErr error
		}{
			{"health six rejected", 6, ErrDegreeIncorrect},
			{"health negative rejected", -1, ErrDegreeIncorrect},
			{"health five accepted", 5, nil},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				retroRepo := new(mockRetrospectRepo)
				retroRepo.On("FindByWeek", userIdx, week).Return(nil, sql.ErrNoRows).Once()
				if tt.wantErr == nil {
					retroRepo.On("Create", mock.Anything).Return(nil).Once()
				}

				value := validValue()
				value.Health = tt.health

				svc := NewRetrospectService(retroRepo, new(mockJourneyRepo))
				_, err := svc.CreateRetrospect(userIdx, retrospectRequest(value))

				assert.Equal(t, tt.wantErr, err)
			})
		}
	})

	t.Run("each degree field is checked independently", func(t *testing.T) {
		retroRepo := new(mockRetrospectRepo)
		retroRepo.On("FindByWeek", userIdx, week).Return(nil, sql.ErrNoRows).Once()

		value := validValue()
		value.Moderation = 9 // all other degrees in range

		svc := NewRetrospectService(retroRepo, new(mockJourneyRepo))
		_, err := svc.CreateRetrospect(userIdx, retrospectRequest(value))

		assert.Equal(t, ErrDegreeIncorrect, err)
	})

	t.Run("unknown value tag", func(t *testing.T) {
		retroRepo := new(mockRetrospectRepo)
		retroRepo.On("FindByWeek", userIdx, week).Return(nil, sql.ErrNoRows).Once()

		value := validValue()
		value.Yes = []string{"not-a-value"}

		svc := NewRetrospectService(retroRepo, new(mockJourneyRepo))
		_, err := svc.CreateRetrospect(userIdx, retrospectRequest(value))

		assert.Equal(t, ErrValuesIncorrect, err)
	})

	t.Run("unknown emotion tag", func(t *testing.T) {
		retroRepo := new(mockRetrospectRepo)
		retroRepo.On("FindByWeek", userIdx, week).Return(nil, sql.ErrNoRows).Once()

		value := validValue()
		value.Emotion = []string{"not-an-emotion"}

		svc := NewRetrospectService(retroRepo, new(mockJourneyRepo))
		_, err := svc.CreateRetrospect(userIdx, retrospectRequest(value))

		assert.Equal(t, ErrEmotionIncorrect, err)
	})
}

func TestRetrospectService_ListWeekValues(t *testing.T) {
	userIdx := 5
	week := model.WeekInfo{Year: 2024, Month: 3, WeekNo: 2}

	journeys := []*model.Journey{
		{Idx: 1, Value1: "health", Value2: "learning"},
		{Idx: 2, Value1: "learning", Value2: ""},
		{Idx: 3, Value1: "money", Value2: "health"},
	}

	journeyRepo := new(mockJourneyRepo)
	journeyRepo.On("ListByUser", userIdx, &week).Return(journeys, nil).Once()

	svc := NewRetrospectService(new(mockRetrospectRepo), journeyRepo)
	values, err := svc.ListWeekValues(userIdx, week)

	assert.NoError(t, err)
	assert.Equal(t, []string{"health", "learning", "money"}, values)
}
