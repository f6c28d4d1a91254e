package cont

import (
	"ShelfGuardian/entity"
	"context"
	"fmt"
)

type ctxKey string

const userDataKey ctxKey = "userData"

func PutUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, userDataKey, user)
}

func GetUser(ctx context.Context) (*entity.User, error) {
	v := ctx.Value(userDataKey)
	if v == nil {
		return nil, fmt.Errorf("user not found in context")
	}
	user, ok := v.(*entity.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("invalid user data in context")
	}
	return user, nil
}
