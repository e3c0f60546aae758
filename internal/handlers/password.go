package handlers

import (
	"encoding/json"
	"net/http"

	"sailbook/internal/logger"
	"sailbook/internal/services"
	helpers "sailbook/internal/utils/helpers"

	"go.uber.org/zap"
)

type PasswordHandler struct {
	accounts *services.AccountService
}

func NewPasswordHandler(accounts *services.AccountService) *PasswordHandler {
	return &PasswordHandler{accounts: accounts}
}

type forgotPasswordRequest struct {
	AccountName string `json:"account_name"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Forgot godoc
// @Summary Request a password-reset mail
// @Tags auth
// @Accept json
// @Produce json
// @Param input body forgotPasswordRequest true "Account name"
// @Success 200 {string} string "Reset mail sent"
// @Failure 404 {string} string "Account does not exist"
// @Router /api/password/forgot [post]
func (h *PasswordHandler) Forgot(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("invalid JSON in Forgot", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.accounts.RequestPasswordReset(r.Context(), req.AccountName); err != nil {
		helpers.Error(w, statusFromErr(err), err.Error())
		return
	}
	// The token itself never appears in the response.
	helpers.JSON(w, http.StatusOK, "reset mail sent")
}

// Reset godoc
// @Summary Set a new password with a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param input body resetPasswordRequest true "Token and new password"
// @Success 200 {string} string "Password changed"
// @Failure 403 {string} string "Token expired"
// @Failure 404 {string} string "Unknown token"
// @Router /api/password/reset [post]
func (h *PasswordHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("invalid JSON in Reset", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if _, err := h.accounts.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		helpers.Error(w, statusFromErr(err), err.Error())
		return
	}
	helpers.JSON(w, http.StatusOK, "password changed")
}
