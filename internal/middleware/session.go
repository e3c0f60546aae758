package middleware

import (
	"context"
	"net/http"

	"sailbook/internal/config"
	"sailbook/internal/logger"
	"sailbook/internal/reqctx"
	"sailbook/internal/utils"

	"go.uber.org/zap"
)

// SessionCookieName holds the signed session token. The token's claims
// carry nothing but the authenticated account's id.
const SessionCookieName = "sailbook_session"

// SessionAuth rejects requests without a valid session cookie and puts
// the account id into the request context. Identity never lives in a
// package-level variable; everything downstream reads it from ctx.
func SessionAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		cfg, _ := config.LoadConfig()

		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			logger.WithCtx(r.Context()).Warn("session cookie missing")
			http.Error(w, "not signed in", http.StatusUnauthorized)
			return
		}

		accountID, err := utils.ParseSessionToken(cfg.JWTSecret, cookie.Value)
		if err != nil {
			logger.WithCtx(r.Context()).Warn("session token rejected", zap.Error(err))
			http.Error(w, "invalid or expired session", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ContextAccountID, accountID)
		ctx = reqctx.WithAccountID(ctx, accountID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
