package auth

import (
	"ShelfGuardian/entity"
	"context"
)

type Core interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error)
	Login(ctx context.Context, login, password string) (*entity.Token, error)
	DeleteAccount(ctx context.Context, user *entity.User) error
}
