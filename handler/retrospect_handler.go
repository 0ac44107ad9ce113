package handler

import (
	"encoding/json"
	"journey-api/common"
	"journey-api/model"
	"journey-api/service"
	"net/http"
)

type RetrospectHandler struct {
	service *service.RetrospectService
}

func NewRetrospectHandler(s *service.RetrospectService) *RetrospectHandler {
	return &RetrospectHandler{service: s}
}

// ListValues godoc
// @Summary      List the value tags of one week
// @Description  Aggregates the distinct value1/value2 tags across the week's journeys, used to pre-populate the retrospect form.
// @Tags         retrospects
// @Produce      json
// @Security     BearerAuth
// @Param        year   query int true "Year"
// @Param        month  query int true "Month"
// @Param        weekNo query int true "Week number"
// @Success      200  {array}   string
// @Failure      400  {object}  common.AppError "Missing week triple"
// @Failure      500  {object}  common.AppError "Unexpected error"
// @Router       /retrospect/value [get]
func (h *RetrospectHandler) ListValues(w http.ResponseWriter, r *http.Request) *common.AppError {
	userIdx, ok := r.Context().Value(UserIdxKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, common.CodeTokenInvalid, "Invalid user in token", nil)
	}

	// The week triple is mandatory here; missing and malformed both answer
	// with the same code.
	week, appErr := parseWeekFilter(r)
	if appErr != nil || week == nil {
		return common.BadRequest(common.CodeDateMissing, "year, month and weekNo are required")
	}

	values, err := h.service.ListWeekValues(userIdx, *week)
	if err != nil {
		return common.InternalError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(values)
	return nil
}

// Create persists the weekly retrospective after validating its tags and
// degree scores.
func (h *RetrospectHandler) Create(w http.ResponseWriter, r *http.Request) *common.AppError {
	userIdx, ok := r.Context().Value(UserIdxKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, common.CodeTokenInvalid, "Invalid user in token", nil)
	}

	var req model.CreateRetrospectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return common.NewAppError(http.StatusBadRequest, common.CodeUnexpectedError, "Invalid request body", err)
	}

	if req.Year == 0 || req.Month == 0 || req.WeekNo == 0 {
		return common.BadRequest(common.CodeWeekDataMissing, "year, month and weekNo are required")
	}
	if req.Value == nil {
		return common.BadRequest(common.CodeWeekDataMissing, "value payload is required")
	}

	retrospect, err := h.service.CreateRetrospect(userIdx, req)
	if err != nil {
		switch err {
		case service.ErrRetrospectExists:
			return common.BadRequest(common.CodeAlreadyExist, "A retrospect already exists for this week")
		case service.ErrValuesIncorrect:
			return common.BadRequest(common.CodeValuesIncorrect, "Value tag is not in the value set")
		case service.ErrEmotionIncorrect:
			return common.BadRequest(common.CodeEmotionIncorrect, "Emotion tag is not in the emotion set")
		case service.ErrDegreeIncorrect:
			return common.BadRequest(common.CodeDegreeIncorrect, "Degree scores must be between 0 and 5")
		default:
			return common.InternalError(err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(retrospect)
	return nil
}
