package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"sailbook/internal/logger"
	"sailbook/internal/middleware"
	"sailbook/internal/models"
	"sailbook/internal/services"
	helpers "sailbook/internal/utils/helpers"

	"go.uber.org/zap"
)

// ProfileCache is what the handler needs from the Redis layer. Nil when
// no cache is configured.
type ProfileCache interface {
	Get(ctx context.Context, accountID string) (*models.AccountProfileResponse, bool)
	Set(ctx context.Context, p *models.AccountProfileResponse)
}

type AccountHandler struct {
	accounts *services.AccountService
	cache    ProfileCache
}

func NewAccountHandler(accounts *services.AccountService, cache ProfileCache) *AccountHandler {
	return &AccountHandler{accounts: accounts, cache: cache}
}

func accountIDFrom(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(middleware.ContextAccountID).(string)
	return id, ok
}

type changeNameRequest struct {
	AccountName string `json:"account_name"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Profile godoc
// @Summary Profile of the signed-in account
// @Tags account
// @Produce json
// @Success 200 {object} models.AccountProfileResponse
// @Failure 401 {string} string "Not signed in"
// @Router /api/account [get]
func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := accountIDFrom(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	if h.cache != nil {
		if p, hit := h.cache.Get(r.Context(), id); hit {
			helpers.JSON(w, http.StatusOK, p)
			return
		}
	}

	account, err := h.accounts.GetAccount(r.Context(), id)
	if err != nil {
		helpers.Error(w, statusFromErr(err), err.Error())
		return
	}

	profile := account.Profile()
	if h.cache != nil {
		h.cache.Set(r.Context(), profile)
	}
	helpers.JSON(w, http.StatusOK, profile)
}

// ChangeName godoc
// @Summary Change the login name
// @Tags account
// @Accept json
// @Produce json
// @Param input body changeNameRequest true "New account name"
// @Success 200 {object} models.AccountProfileResponse
// @Failure 409 {string} string "Name already taken"
// @Router /api/account/name [patch]
func (h *AccountHandler) ChangeName(w http.ResponseWriter, r *http.Request) {
	id, ok := accountIDFrom(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	var req changeNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	account, err := h.accounts.ChangeAccountName(r.Context(), id, req.AccountName)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("account rename failed", zap.Error(err))
		helpers.Error(w, statusFromErr(err), err.Error())
		return
	}

	// The new address needs confirming again.
	if err := h.accounts.SendVerification(r.Context(), id); err != nil {
		logger.WithCtx(r.Context()).Warn("verification mail not sent", zap.Error(err))
	}

	helpers.JSON(w, http.StatusOK, account.Profile())
}

// ChangePassword godoc
// @Summary Change the password of the signed-in account
// @Tags account
// @Accept json
// @Produce json
// @Param input body changePasswordRequest true "Old and new password"
// @Success 200 {string} string "Password changed"
// @Failure 401 {string} string "Old password incorrect"
// @Router /api/account/password [patch]
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := accountIDFrom(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.accounts.ChangePassword(r.Context(), id, req.OldPassword, req.NewPassword); err != nil {
		helpers.Error(w, statusFromErr(err), err.Error())
		return
	}
	helpers.JSON(w, http.StatusOK, "password changed")
}

// Delete godoc
// @Summary Delete the signed-in account
// @Tags account
// @Success 200 {string} string "Account deleted"
// @Failure 401 {string} string "Not signed in"
// @Router /api/account [delete]
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := accountIDFrom(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	if err := h.accounts.DeleteAccount(r.Context(), id); err != nil {
		helpers.Error(w, statusFromErr(err), err.Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	helpers.JSON(w, http.StatusOK, "account deleted")
}
