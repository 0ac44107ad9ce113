package common

import (
	"encoding/json"
	"journey-api/logger"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Error codes returned to clients. The code, not just the HTTP status,
// is part of the API contract.
const (
	CodeEmailMissing       = "EMAIL_MISSING"
	CodePasswordMissing    = "PASSWORD_MISSING"
	CodeLoginInfoIncorrect = "LOGIN_INFO_INCORRECT"
	CodeTokenInvalid       = "TOKEN_INVALID"
	CodeDateMissing        = "DATE_MISSING"
	CodeTitleMissing       = "TITLE_MISSING"
	CodeIsTopMissing       = "IS_TOP_MISSING"
	CodeIncorrectWeekNo    = "INCORRECT_WEEK_NO"
	CodeToDoNotFound       = "TODO_NOT_FOUND"
	CodeJourneyNotFound    = "JOURNEY_NOT_FOUND"
	CodeWeekDataMissing    = "WEEK_DATA_MISSING"
	CodeValuesIncorrect    = "VALUES_INCORRECT"
	CodeEmotionIncorrect   = "EMOTION_INCORRECT"
	CodeDegreeIncorrect    = "DEGREE_INCORRECT"
	CodeAlreadyExist       = "ALREADY_EXIST"
	CodeUnexpectedError    = "UNEXPECTED_ERROR"
)

type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// BadRequest builds a 400 error with a domain error code.
func BadRequest(code, message string) *AppError {
	return NewAppError(http.StatusBadRequest, code, message, nil)
}

// NotFound builds a 404 error with a domain error code.
func NotFound(code, message string) *AppError {
	return NewAppError(http.StatusNotFound, code, message, nil)
}

// InternalError wraps an unexpected failure. The cause is logged, never
// sent to the client.
func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeUnexpectedError, "An unexpected error occurred", err)
}

func (e *AppError) Send(w http.ResponseWriter) {
	if e.Err != nil {
		logger.Log.WithFields(logrus.Fields{
			"status_code":    e.Status,
			"error_code":     e.Code,
			"internal_error": e.Err.Error(),
		}).Error(e.Message)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Status)
	json.NewEncoder(w).Encode(e)
}
