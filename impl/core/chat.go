package core

import (
	"ShelfGuardian/entity"
	"ShelfGuardian/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
)

const chatErrorResponse = "Internal server error in chatbot"

// Ask never fails: assistant errors are logged and answered with a fixed
// message and an empty history, leaving the stored history untouched.
func (c *Core) Ask(ctx context.Context, user *entity.User, message string) *entity.ChatResponse {
	reply, err := c.ask(ctx, user, message)
	if err != nil {
		c.log.With(
			slog.Int64("user_id", user.ID),
			slog.String("message", message),
			sl.Err(err),
		).Error("chat request")
		return &entity.ChatResponse{
			Response: chatErrorResponse,
			History:  []entity.ChatTurn{},
		}
	}

	c.history.Add(user.ID, entity.ChatTurn{User: message, Bot: reply})

	return &entity.ChatResponse{
		Response: reply,
		History:  c.history.Get(user.ID),
	}
}

func (c *Core) ask(ctx context.Context, user *entity.User, message string) (string, error) {
	if c.ass == nil {
		return "", fmt.Errorf("assistant not initialized")
	}
	if c.history == nil {
		return "", fmt.Errorf("history not initialized")
	}
	return c.ass.Ask(ctx, user, message)
}

func (c *Core) ResetChat(user *entity.User) {
	if c.history != nil {
		c.history.Reset(user.ID)
	}
}

func (c *Core) ChatHistory(user *entity.User) []entity.ChatTurn {
	if c.history == nil {
		return []entity.ChatTurn{}
	}
	return c.history.Get(user.ID)
}
