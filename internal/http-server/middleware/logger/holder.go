package logger

import "context"

type holderKey struct{}

type userHolder struct {
	username string
}

func withHolder(ctx context.Context, h *userHolder) context.Context {
	return context.WithValue(ctx, holderKey{}, h)
}

func holderFrom(ctx context.Context) *userHolder {
	h, _ := ctx.Value(holderKey{}).(*userHolder)
	return h
}
