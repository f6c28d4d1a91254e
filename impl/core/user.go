package core

import (
	"ShelfGuardian/entity"
	"context"
	"fmt"
)

func (c *Core) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error) {
	if c.authService == nil {
		return nil, fmt.Errorf("auth service not initialized")
	}
	return c.authService.Register(ctx, req)
}

func (c *Core) Login(ctx context.Context, login, password string) (*entity.Token, error) {
	if c.authService == nil {
		return nil, fmt.Errorf("auth service not initialized")
	}
	return c.authService.Login(ctx, login, password)
}

func (c *Core) AuthenticateByToken(ctx context.Context, token string) (*entity.User, error) {
	if c.authService == nil {
		return nil, fmt.Errorf("auth service not initialized")
	}
	return c.authService.AuthenticateByToken(ctx, token)
}

// DeleteAccount removes the user with their products and chat history.
func (c *Core) DeleteAccount(ctx context.Context, user *entity.User) error {
	if c.authService == nil {
		return fmt.Errorf("auth service not initialized")
	}
	if err := c.authService.DeleteAccount(ctx, user); err != nil {
		return err
	}
	if c.history != nil {
		c.history.Reset(user.ID)
	}
	return nil
}
