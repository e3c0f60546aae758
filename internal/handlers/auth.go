package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"sailbook/internal/config"
	"sailbook/internal/logger"
	"sailbook/internal/middleware"
	"sailbook/internal/services"
	"sailbook/internal/utils"
	helpers "sailbook/internal/utils/helpers"

	"go.uber.org/zap"
)

type AuthHandler struct {
	accounts *services.AccountService
}

func NewAuthHandler(accounts *services.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

type signupRequest struct {
	AccountName string `json:"account_name"`
	Password    string `json:"password"`
}

type loginRequest struct {
	AccountName string `json:"account_name"`
	Password    string `json:"password"`
}

// Signup godoc
// @Summary Create a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param input body signupRequest true "Signup data"
// @Success 201 {object} models.AccountProfileResponse
// @Failure 409 {string} string "Account already exists"
// @Router /api/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("invalid JSON in Signup", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	account, err := h.accounts.Signup(r.Context(), req.AccountName, req.Password)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("signup rejected", zap.Error(err))
		helpers.Error(w, statusFromErrSignup(err), err.Error())
		return
	}

	// Verification mail is best effort; the account exists either way.
	if err := h.accounts.SendVerification(r.Context(), account.ID); err != nil {
		logger.WithCtx(r.Context()).Warn("verification mail not sent", zap.Error(err))
	}

	setSessionCookie(w, account.ID)
	helpers.JSON(w, http.StatusCreated, account.Profile())
}

func statusFromErrSignup(err error) int {
	status := statusFromErr(err)
	if status == http.StatusInternalServerError {
		// validation errors from the service are client mistakes
		return http.StatusBadRequest
	}
	return status
}

// Login godoc
// @Summary Sign in with account name and password
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Login data"
// @Success 200 {object} models.AccountProfileResponse
// @Failure 401 {string} string "Wrong account name or password"
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("invalid JSON in Login", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	account, err := h.accounts.Authenticate(r.Context(), req.AccountName, req.Password)
	if err != nil {
		helpers.Error(w, statusFromErr(err), err.Error())
		return
	}

	setSessionCookie(w, account.ID)
	helpers.JSON(w, http.StatusOK, account.Profile())
}

// Logout godoc
// @Summary Drop the session
// @Tags auth
// @Success 200 {string} string "Signed out"
// @Router /api/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	helpers.JSON(w, http.StatusOK, "signed out")
}

// VerifyEmail godoc
// @Summary Confirm an e-mail address
// @Tags auth
// @Param token query string true "Verification token"
// @Success 200 {string} string "E-mail confirmed"
// @Failure 403 {string} string "Token expired"
// @Failure 404 {string} string "Unknown token"
// @Router /api/verify-email [get]
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		helpers.Error(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := h.accounts.ConfirmVerification(r.Context(), token); err != nil {
		helpers.Error(w, statusFromErr(err), err.Error())
		return
	}
	helpers.JSON(w, http.StatusOK, "e-mail confirmed")
}

func setSessionCookie(w http.ResponseWriter, accountID string) {
	cfg, _ := config.LoadConfig()
	ttl, err := time.ParseDuration(cfg.SessionTTL)
	if err != nil {
		ttl = 24 * time.Hour
	}

	token, err := utils.GenerateSessionToken(cfg.JWTSecret, accountID, ttl)
	if err != nil {
		logger.Log.Error("session token generation failed", zap.Error(err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
