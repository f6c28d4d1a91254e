package chat

import (
	"ShelfGuardian/entity"
	"context"
)

type Core interface {
	Ask(ctx context.Context, user *entity.User, message string) *entity.ChatResponse
	ResetChat(user *entity.User)
	ChatHistory(user *entity.User) []entity.ChatTurn
}
