package middleware

import (
	"context"
	"net/http"
	"sailbook/internal/reqctx"

	"github.com/google/uuid"
)

// RequestID assigns every request a fresh id and threads it through
// both context stores (handler lookups and logger annotation).
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := uuid.New().String()
		ctx := context.WithValue(r.Context(), ContextRequestID, rid)
		ctx = reqctx.WithRequestID(ctx, rid)
		w.Header().Set("X-Request-Id", rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
