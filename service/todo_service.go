package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"journey-api/model"
	"journey-api/repository"
	"time"
)

var ErrToDoNotFound = errors.New("to-do not found")

type ToDoService struct {
	db       *sql.DB
	todoRepo repository.IToDoRepository
	journeys *JourneyService
}

func NewToDoService(db *sql.DB, todoRepo repository.IToDoRepository, journeys *JourneyService) *ToDoService {
	return &ToDoService{
		db:       db,
		todoRepo: todoRepo,
		journeys: journeys,
	}
}

// CreateToDo resolves the target journey and persists the to-do in one
// transaction: both succeed or both roll back. When a concurrent request
// creates the same default journey first, the unique index aborts our
// transaction and a single retry picks up the winner's row.
func (s *ToDoService) CreateToDo(ctx context.Context, userIdx int, req model.CreateToDoRequest) (*model.ToDo, error) {
	todo, err := s.createToDoOnce(ctx, userIdx, req)
	if err != nil && repository.IsUniqueViolation(err) {
		todo, err = s.createToDoOnce(ctx, userIdx, req)
	}
	return todo, err
}

func (s *ToDoService) createToDoOnce(ctx context.Context, userIdx int, req model.CreateToDoRequest) (*model.ToDo, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	journeyIdx, err := s.journeys.ResolveJourneyForToDo(tx, userIdx, *req.Date, req.JourneyIdx)
	if err != nil {
		return nil, err
	}

	todo := &model.ToDo{
		Title:      req.Title,
		Date:       *req.Date,
		IsTop:      *req.IsTop,
		JourneyIdx: journeyIdx,
		UserIdx:    userIdx,
	}
	if err := s.todoRepo.Create(tx, todo); err != nil {
		return nil, fmt.Errorf("could not create to-do: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}
	return todo, nil
}

// UpdateToDo applies a partial update to a to-do owned by the caller.
// journeyIdx and date only move together and are re-validated against the
// week triple. isDone is tri-state: true stamps now, false clears, absent
// leaves the prior value untouched.
func (s *ToDoService) UpdateToDo(userIdx, toDoIdx int, req model.UpdateToDoRequest) (*model.ToDo, error) {
	todo, err := s.todoRepo.GetByIdxAndUser(toDoIdx, userIdx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrToDoNotFound
		}
		return nil, err
	}

	if req.Title != "" {
		todo.Title = req.Title
	}
	if req.IsTop != nil {
		todo.IsTop = *req.IsTop
	}

	if req.JourneyIdx != nil && req.Date != nil {
		weekInfo := WeekOfMonth(req.Date.Time)
		journeyIdx, err := s.journeys.ValidateJourneyWeek(*req.JourneyIdx, weekInfo)
		if err != nil {
			return nil, err
		}
		todo.JourneyIdx = journeyIdx
		todo.Date = *req.Date
	}

	if req.IsDone != nil {
		if *req.IsDone {
			now := time.Now()
			todo.IsDone = &now
		} else {
			todo.IsDone = nil
		}
	}

	if err := s.todoRepo.Update(todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// ListByJourney groups the caller's to-dos under their parent journeys,
// pinned-first then date ascending within each journey.
func (s *ToDoService) ListByJourney(userIdx int, week *model.WeekInfo) ([]*model.JourneyToDos, error) {
	journeys, err := s.journeys.ListByUser(userIdx, week)
	if err != nil {
		return nil, err
	}
	todos, err := s.todoRepo.ListByUser(userIdx, week)
	if err != nil {
		return nil, err
	}

	byJourney := make(map[int][]model.ToDoListItem, len(journeys))
	for _, t := range todos {
		byJourney[t.JourneyIdx] = append(byJourney[t.JourneyIdx], toListItem(t))
	}

	result := make([]*model.JourneyToDos, 0, len(journeys))
	for _, j := range journeys {
		items := byJourney[j.Idx]
		if items == nil {
			items = []model.ToDoListItem{}
		}
		result = append(result, &model.JourneyToDos{
			Idx:     j.Idx,
			Title:   j.Title,
			Value1:  j.Value1,
			Value2:  j.Value2,
			Year:    j.Year,
			Month:   j.Month,
			WeekNo:  j.WeekNo,
			UserIdx: j.UserIdx,
			ToDos:   items,
		})
	}
	return result, nil
}

// ListByDate re-buckets the caller's to-dos by their formatted date,
// preserving the pinned-first/date-ascending order within each day.
func (s *ToDoService) ListByDate(userIdx int, week *model.WeekInfo) ([]model.ToDoDateGroup, error) {
	todos, err := s.todoRepo.ListByUser(userIdx, week)
	if err != nil {
		return nil, err
	}

	groups := make([]model.ToDoDateGroup, 0)
	index := make(map[string]int)
	for _, t := range todos {
		day := t.Date.String()
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, model.ToDoDateGroup{Day: day, ToDoList: []model.ToDoListItem{}})
		}
		groups[i].ToDoList = append(groups[i].ToDoList, toListItem(t))
	}
	return groups, nil
}

// DeleteToDo removes a to-do owned by the caller.
func (s *ToDoService) DeleteToDo(userIdx, toDoIdx int) error {
	if err := s.todoRepo.Delete(toDoIdx, userIdx); err != nil {
		if err == sql.ErrNoRows {
			return ErrToDoNotFound
		}
		return err
	}
	return nil
}

func toListItem(t *model.ToDo) model.ToDoListItem {
	return model.ToDoListItem{
		Idx:       t.Idx,
		Title:     t.Title,
		IsTop:     t.IsTop,
		IsDone:    t.IsDone,
		Date:      t.Date,
		CreatedAt: t.CreatedAt,
	}
}
