package middleware

type ctxKey string

const (
	ContextAccountID ctxKey = "account_id"
	ContextRequestID ctxKey = "request_id"
)
