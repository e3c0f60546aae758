package reqctx

import "context"

type key int

const (
	keyRequestID key = iota
	keyAccountID
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

func GetRequestID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(keyRequestID).(string)
	return v, ok
}

func WithAccountID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyAccountID, id)
}

func GetAccountID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(keyAccountID).(string)
	return v, ok
}
