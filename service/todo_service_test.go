package service

import (
	"context"
	"database/sql"
	"errors"
	"journey-api/model"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockToDoRepo struct{ mock.Mock }

func (m *mockToDoRepo) Create(tx *sql.Tx, todo *model.ToDo) error {
	args := m.Called(tx, todo)
	if args.Error(0) == nil {
		todo.Idx = 31
		todo.CreatedAt = time.Now()
	}
	return args.Error(0)
}
func (m *mockToDoRepo) GetByIdxAndUser(idx, userIdx int) (*model.ToDo, error) {
	args := m.Called(idx, userIdx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ToDo), args.Error(1)
}
func (m *mockToDoRepo) Update(todo *model.ToDo) error {
	args := m.Called(todo)
	return args.Error(0)
}
func (m *mockToDoRepo) Delete(idx, userIdx int) error {
	args := m.Called(idx, userIdx)
	return args.Error(0)
}
func (m *mockToDoRepo) ListByUser(userIdx int, week *model.WeekInfo) ([]*model.ToDo, error) {
	args := m.Called(userIdx, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ToDo), args.Error(1)
}

func boolPtr(b bool) *bool { return &b }

func createRequest() model.CreateToDoRequest {
	d := model.NewDate(2024, time.March, 4)
	return model.CreateToDoRequest{
		Title: "run",
		Date:  &d,
		IsTop: boolPtr(true),
	}
}

func TestToDoService_CreateToDo(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	userIdx := 5
	week := WeekOfMonth(createRequest().Date.Time)

	t.Run("reuses the existing default journey and commits", func(t *testing.T) {
		journeyRepo := new(mockJourneyRepo)
		todoRepo := new(mockToDoRepo)
		journeyRepo.On("FindDefault", mock.Anything, userIdx, week).Return(&model.Journey{Idx: 23}, nil).Once()
		todoRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.ToDo")).Return(nil).Once()

		dbMock.ExpectBegin()
		dbMock.ExpectCommit()

		svc := NewToDoService(db, todoRepo, NewJourneyService(journeyRepo))
		todo, err := svc.CreateToDo(ctx, userIdx, createRequest())

		assert.NoError(t, err)
		assert.Equal(t, 23, todo.JourneyIdx)
		assert.Equal(t, "run", todo.Title)
		assert.True(t, todo.IsTop)
		assert.Nil(t, todo.IsDone)
		journeyRepo.AssertExpectations(t)
		todoRepo.AssertExpectations(t)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("lost default journey race retries and uses the winner", func(t *testing.T) {
		journeyRepo := new(mockJourneyRepo)
		todoRepo := new(mockToDoRepo)
		// First attempt: no default journey yet, but a concurrent request
		// wins the insert. The second attempt finds the winner's row.
		journeyRepo.On("FindDefault", mock.Anything, userIdx, week).Return(nil, sql.ErrNoRows).Once()
		journeyRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Journey")).Return(&pq.Error{Code: "23505"}).Once()
		journeyRepo.On("FindDefault", mock.Anything, userIdx, week).Return(&model.Journey{Idx: 23}, nil).Once()
		todoRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.ToDo")).Return(nil).Once()

		dbMock.ExpectBegin()
		dbMock.ExpectRollback()
		dbMock.ExpectBegin()
		dbMock.ExpectCommit()

		svc := NewToDoService(db, todoRepo, NewJourneyService(journeyRepo))
		todo, err := svc.CreateToDo(ctx, userIdx, createRequest())

		assert.NoError(t, err)
		assert.Equal(t, 23, todo.JourneyIdx)
		journeyRepo.AssertExpectations(t)
		todoRepo.AssertExpectations(t)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("week mismatch rolls back and creates no rows", func(t *testing.T) {
		journeyRepo := new(mockJourneyRepo)
		todoRepo := new(mockToDoRepo)
		journeyIdx := 17
		journeyRepo.On("GetByIdx", journeyIdx).Return(&model.Journey{
			Idx: journeyIdx, Year: week.Year, Month: week.Month, WeekNo: week.WeekNo + 1,
		}, nil).Once()

		dbMock.ExpectBegin()
		dbMock.ExpectRollback()

		req := createRequest()
		req.JourneyIdx = &journeyIdx

		svc := NewToDoService(db, todoRepo, NewJourneyService(journeyRepo))
		_, err := svc.CreateToDo(ctx, userIdx, req)

		assert.Equal(t, ErrIncorrectWeekNo, err)
		todoRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("insert failure rolls back", func(t *testing.T) {
		journeyRepo := new(mockJourneyRepo)
		todoRepo := new(mockToDoRepo)
		journeyRepo.On("FindDefault", mock.Anything, userIdx, week).Return(&model.Journey{Idx: 23}, nil).Once()
		todoRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()

		dbMock.ExpectBegin()
		dbMock.ExpectRollback()

		svc := NewToDoService(db, todoRepo, NewJourneyService(journeyRepo))
		_, err := svc.CreateToDo(ctx, userIdx, createRequest())

		assert.Error(t, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestToDoService_UpdateToDo(t *testing.T) {
	userIdx := 5
	existing := func() *model.ToDo {
		return &model.ToDo{
			Idx:        31,
			Title:      "run",
			Date:       model.NewDate(2024, time.March, 4),
			IsTop:      false,
			JourneyIdx: 23,
			UserIdx:    userIdx,
		}
	}

	t.Run("isDone true stamps the current time", func(t *testing.T) {
		todoRepo := new(mockToDoRepo)
		todoRepo.On("GetByIdxAndUser", 31, userIdx).Return(existing(), nil).Once()
		todoRepo.On("Update", mock.AnythingOfType("*model.ToDo")).Return(nil).Once()

		svc := NewToDoService(nil, todoRepo, NewJourneyService(new(mockJourneyRepo)))
		todo, err := svc.UpdateToDo(userIdx, 31, model.UpdateToDoRequest{IsDone: boolPtr(true)})

		assert.NoError(t, err)
		assert.NotNil(t, todo.IsDone)
		assert.WithinDuration(t, time.Now(), *todo.IsDone, 2*time.Second)
	})

	t.Run("isDone false clears the timestamp", func(t *testing.T) {
		done := time.Now().Add(-time.Hour)
		started := existing()
		started.IsDone = &done

		todoRepo := new(mockToDoRepo)
		todoRepo.On("GetByIdxAndUser", 31, userIdx).Return(started, nil).Once()
		todoRepo.On("Update", mock.AnythingOfType("*model.ToDo")).Return(nil).Once()

		svc := NewToDoService(nil, todoRepo, NewJourneyService(new(mockJourneyRepo)))
		todo, err := svc.UpdateToDo(userIdx, 31, model.UpdateToDoRequest{IsDone: boolPtr(false)})

		assert.NoError(t, err)
		assert.Nil(t, todo.IsDone)
	})

	t.Run("isDone absent leaves the timestamp untouched", func(t *testing.T) {
		done := time.Now().Add(-time.Hour)
		started := existing()
		started.IsDone = &done

		todoRepo := new(mockToDoRepo)
		todoRepo.On("GetByIdxAndUser", 31, userIdx).Return(started, nil).Once()
		todoRepo.On("Update", mock.AnythingOfType("*model.ToDo")).Return(nil).Once()

		svc := NewToDoService(nil, todoRepo, NewJourneyService(new(mockJourneyRepo)))
		todo, err := svc.UpdateToDo(userIdx, 31, model.UpdateToDoRequest{Title: "swim"})

		assert.NoError(t, err)
		assert.Equal(t, "swim", todo.Title)
		assert.NotNil(t, todo.IsDone)
		assert.Equal(t, done, *todo.IsDone)
	})

	t.Run("journeyIdx and date move together and are re-validated", func(t *testing.T) {
		newDate := model.NewDate(2024, time.April, 10)
		newWeek := WeekOfMonth(newDate.Time)
		journeyIdx := 40

		journeyRepo := new(mockJourneyRepo)
		journeyRepo.On("GetByIdx", journeyIdx).Return(&model.Journey{
			Idx: journeyIdx, Year: newWeek.Year, Month: newWeek.Month, WeekNo: newWeek.WeekNo,
		}, nil).Once()

		todoRepo := new(mockToDoRepo)
		todoRepo.On("GetByIdxAndUser", 31, userIdx).Return(existing(), nil).Once()
		todoRepo.On("Update", mock.AnythingOfType("*model.ToDo")).Return(nil).Once()

		svc := NewToDoService(nil, todoRepo, NewJourneyService(journeyRepo))
		todo, err := svc.UpdateToDo(userIdx, 31, model.UpdateToDoRequest{
			JourneyIdx: &journeyIdx,
			Date:       &newDate,
		})

		assert.NoError(t, err)
		assert.Equal(t, journeyIdx, todo.JourneyIdx)
		assert.Equal(t, newDate.String(), todo.Date.String())
	})

	t.Run("unknown to-do", func(t *testing.T) {
		todoRepo := new(mockToDoRepo)
		todoRepo.On("GetByIdxAndUser", 31, userIdx).Return(nil, sql.ErrNoRows).Once()

		svc := NewToDoService(nil, todoRepo, NewJourneyService(new(mockJourneyRepo)))
		_, err := svc.UpdateToDo(userIdx, 31, model.UpdateToDoRequest{Title: "swim"})

		assert.Equal(t, ErrToDoNotFound, err)
	})
}

func TestToDoService_ListByDate(t *testing.T) {
	userIdx := 5
	day1 := model.NewDate(2024, time.March, 4)
	day2 := model.NewDate(2024, time.March, 5)

	// Pinned-first, then date ascending, as the repository returns them.
	todos := []*model.ToDo{
		{Idx: 1, Title: "pinned early", IsTop: true, Date: day1, UserIdx: userIdx, JourneyIdx: 23},
		{Idx: 2, Title: "pinned late", IsTop: true, Date: day2, UserIdx: userIdx, JourneyIdx: 23},
		{Idx: 3, Title: "normal early", IsTop: false, Date: day1, UserIdx: userIdx, JourneyIdx: 23},
	}

	todoRepo := new(mockToDoRepo)
	todoRepo.On("ListByUser", userIdx, (*model.WeekInfo)(nil)).Return(todos, nil).Once()

	svc := NewToDoService(nil, todoRepo, NewJourneyService(new(mockJourneyRepo)))
	groups, err := svc.ListByDate(userIdx, nil)

	assert.NoError(t, err)
	assert.Len(t, groups, 2)
	assert.Equal(t, "2024-03-04", groups[0].Day)
	assert.Equal(t, []string{"pinned early", "normal early"}, titlesOf(groups[0].ToDoList))
	assert.Equal(t, "2024-03-05", groups[1].Day)
	assert.Equal(t, []string{"pinned late"}, titlesOf(groups[1].ToDoList))
}

func TestToDoService_ListByJourney(t *testing.T) {
	userIdx := 5
	week := model.WeekInfo{Year: 2024, Month: 3, WeekNo: 2}
	day := model.NewDate(2024, time.March, 4)

	journeys := []*model.Journey{
		{Idx: 23, Title: "default", Value1: "health", Year: 2024, Month: 3, WeekNo: 2, UserIdx: userIdx},
		{Idx: 24, Title: "reading", Value1: "learning", Year: 2024, Month: 3, WeekNo: 2, UserIdx: userIdx},
	}
	todos := []*model.ToDo{
		{Idx: 1, Title: "run", IsTop: true, Date: day, JourneyIdx: 23, UserIdx: userIdx},
		{Idx: 2, Title: "stretch", IsTop: false, Date: day, JourneyIdx: 23, UserIdx: userIdx},
	}

	journeyRepo := new(mockJourneyRepo)
	todoRepo := new(mockToDoRepo)
	journeyRepo.On("ListByUser", userIdx, &week).Return(journeys, nil).Once()
	todoRepo.On("ListByUser", userIdx, &week).Return(todos, nil).Once()

	svc := NewToDoService(nil, todoRepo, NewJourneyService(journeyRepo))
	result, err := svc.ListByJourney(userIdx, &week)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, []string{"run", "stretch"}, titlesOf(result[0].ToDos))
	assert.Empty(t, result[1].ToDos)
	assert.NotNil(t, result[1].ToDos) // empty journeys serialize as [], not null
}

func TestToDoService_DeleteToDo(t *testing.T) {
	todoRepo := new(mockToDoRepo)
	todoRepo.On("Delete", 31, 5).Return(sql.ErrNoRows).Once()

	svc := NewToDoService(nil, todoRepo, NewJourneyService(new(mockJourneyRepo)))
	err := svc.DeleteToDo(5, 31)

	assert.Equal(t, ErrToDoNotFound, err)
}

func titlesOf(items []model.ToDoListItem) []string {
	titles := make([]string, 0, len(items))
	for _, item := range items {
		titles = append(titles, item.Title)
	}
	return titles
}
