package handler

import (
	"encoding/json"
	"journey-api/common"
	"journey-api/model"
	"journey-api/service"
	"net/http"
	"strconv"
)

type ToDoHandler struct {
	service *service.ToDoService
}

func NewToDoHandler(s *service.ToDoService) *ToDoHandler {
	return &ToDoHandler{service: s}
}

// Create godoc
// @Summary      Create a to-do
// @Description  Creates a to-do for the given date. Without a journeyIdx the week's default journey is used, created on demand.
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        todo body model.CreateToDoRequest true "To-do fields"
// @Success      201  {object}  model.ToDo
// @Failure      400  {object}  common.AppError "Missing date/title/isTop or week mismatch"
// @Failure      404  {object}  common.AppError "Referenced journey not found"
// @Failure      500  {object}  common.AppError "Unexpected error"
// @Router       /todo [post]
func (h *ToDoHandler) Create(w http.ResponseWriter, r *http.Request) *common.AppError {
	userIdx, ok := r.Context().Value(UserIdxKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, common.CodeTokenInvalid, "Invalid user in token", nil)
	}

	var req model.CreateToDoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return common.NewAppError(http.StatusBadRequest, common.CodeUnexpectedError, "Invalid request body", err)
	}

	// An empty date string decodes to a zero Date behind a non-nil pointer.
	if req.Date == nil || req.Date.IsZero() {
		return common.BadRequest(common.CodeDateMissing, "Date is required")
	}
	if req.Title == "" {
		return common.BadRequest(common.CodeTitleMissing, "Title is required")
	}
	if req.IsTop == nil {
		return common.BadRequest(common.CodeIsTopMissing, "isTop is required")
	}

	todo, err := h.service.CreateToDo(r.Context(), userIdx, req)
	if err != nil {
		return mapJourneyError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(todo)
	return nil
}

// Update applies a partial update to one to-do owned by the caller.
func (h *ToDoHandler) Update(w http.ResponseWriter, r *http.Request) *common.AppError {
	userIdx, ok := r.Context().Value(UserIdxKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, common.CodeTokenInvalid, "Invalid user in token", nil)
	}

	toDoIdx, err := strconv.Atoi(r.PathValue("toDoIdx"))
	if err != nil {
		return common.NotFound(common.CodeToDoNotFound, "To-do not found")
	}

	var req model.UpdateToDoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return common.NewAppError(http.StatusBadRequest, common.CodeUnexpectedError, "Invalid request body", err)
	}

	if req.Date != nil && req.Date.IsZero() {
		req.Date = nil
	}

	todo, err := h.service.UpdateToDo(userIdx, toDoIdx, req)
	if err != nil {
		switch err {
		case service.ErrToDoNotFound:
			return common.NotFound(common.CodeToDoNotFound, "To-do not found")
		case service.ErrJourneyNotFound:
			return common.NotFound(common.CodeJourneyNotFound, "Journey not found")
		case service.ErrIncorrectWeekNo:
			return common.BadRequest(common.CodeIncorrectWeekNo, "Journey does not match the week of the given date")
		default:
			return common.InternalError(err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(todo)
	return nil
}

// ListByJourney godoc
// @Summary      List to-dos grouped by journey
// @Description  Returns the caller's journeys with nested to-dos, pinned-first then date ascending. An optional year/month/weekNo triple narrows to one week.
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        year   query int false "Year of the week filter"
// @Param        month  query int false "Month of the week filter"
// @Param        weekNo query int false "Week number of the week filter"
// @Success      200  {array}   model.JourneyToDos
// @Failure      500  {object}  common.AppError "Unexpected error"
// @Router       /todo/journey [get]
func (h *ToDoHandler) ListByJourney(w http.ResponseWriter, r *http.Request) *common.AppError {
	userIdx, ok := r.Context().Value(UserIdxKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, common.CodeTokenInvalid, "Invalid user in token", nil)
	}

	week, appErr := parseWeekFilter(r)
	if appErr != nil {
		return appErr
	}

	journeys, err := h.service.ListByJourney(userIdx, week)
	if err != nil {
		return common.InternalError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(journeys)
	return nil
}

// ListByDate returns the caller's to-dos bucketed by day.
func (h *ToDoHandler) ListByDate(w http.ResponseWriter, r *http.Request) *common.AppError {
	userIdx, ok := r.Context().Value(UserIdxKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, common.CodeTokenInvalid, "Invalid user in token", nil)
	}

	week, appErr := parseWeekFilter(r)
	if appErr != nil {
		return appErr
	}

	groups, err := h.service.ListByDate(userIdx, week)
	if err != nil {
		return common.InternalError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{"data": groups})
	return nil
}

// Delete removes one to-do owned by the caller.
func (h *ToDoHandler) Delete(w http.ResponseWriter, r *http.Request) *common.AppError {
	userIdx, ok := r.Context().Value(UserIdxKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, common.CodeTokenInvalid, "Invalid user in token", nil)
	}

	toDoIdx, err := strconv.Atoi(r.PathValue("toDoIdx"))
	if err != nil {
		return common.NotFound(common.CodeToDoNotFound, "To-do not found")
	}

	if err := h.service.DeleteToDo(userIdx, toDoIdx); err != nil {
		if err == service.ErrToDoNotFound {
			return common.NotFound(common.CodeToDoNotFound, "To-do not found")
		}
		return common.InternalError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]bool{"isSuccess": true})
	return nil
}

func mapJourneyError(err error) *common.AppError {
	switch err {
	case service.ErrJourneyNotFound:
		return common.NotFound(common.CodeJourneyNotFound, "Journey not found")
	case service.ErrIncorrectWeekNo:
		return common.BadRequest(common.CodeIncorrectWeekNo, "Journey does not match the week of the given date")
	default:
		return common.InternalError(err)
	}
}

// parseWeekFilter reads the optional year/month/weekNo query triple. The
// filter only applies when all three are present.
func parseWeekFilter(r *http.Request) (*model.WeekInfo, *common.AppError) {
	q := r.URL.Query()
	yearStr, monthStr, weekNoStr := q.Get("year"), q.Get("month"), q.Get("weekNo")
	if yearStr == "" || monthStr == "" || weekNoStr == "" {
		return nil, nil
	}

	year, err1 := strconv.Atoi(yearStr)
	month, err2 := strconv.Atoi(monthStr)
	weekNo, err3 := strconv.Atoi(weekNoStr)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, common.BadRequest(common.CodeWeekDataMissing, "year, month and weekNo must be numbers")
	}
	return &model.WeekInfo{Year: year, Month: month, WeekNo: weekNo}, nil
}
