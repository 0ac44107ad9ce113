package handler

import (
	"encoding/json"
	"journey-api/common"
	"journey-api/logger"
	"journey-api/model"
	"journey-api/service"
	"net/http"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login godoc
// @Summary      Log in with email and password
// @Description  Validates credentials and issues an access/refresh token pair.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body model.LoginRequest true "Email and password"
// @Success      201  {object}  service.TokenPair
// @Failure      400  {object}  common.AppError "Missing field or incorrect credentials"
// @Failure      500  {object}  common.AppError "Unexpected error"
// @Router       /auth [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return common.NewAppError(http.StatusBadRequest, common.CodeUnexpectedError, "Invalid request body", err)
	}

	if req.Email == "" {
		return common.BadRequest(common.CodeEmailMissing, "Email is required")
	}
	if req.Password == "" {
		return common.BadRequest(common.CodePasswordMissing, "Password is required")
	}

	pair, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		if err == service.ErrLoginInfoIncorrect {
			return common.BadRequest(common.CodeLoginInfoIncorrect, "Email or password is incorrect")
		}
		return common.InternalError(err)
	}

	logger.Log.WithField("email", req.Email).Info("User logged in")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(pair)
	return nil
}

// Register creates a new user account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	user, err := h.service.Register(req.Email, req.Password)
	if err != nil {
		if err == service.ErrEmailTaken {
			return common.BadRequest(common.CodeAlreadyExist, "Email is already registered")
		}
		return common.InternalError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
	return nil
}
