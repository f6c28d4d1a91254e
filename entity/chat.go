package entity

import (
	"ShelfGuardian/internal/lib/validate"
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

type ChatTurn struct {
	User string `json:"user"`
	Bot  string `json:"bot"`
}

// UserRef is a user id that clients send either as a number or a string.
type UserRef int64

func (u *UserRef) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		*u = 0
		return nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user id %q", s)
	}
	*u = UserRef(id)
	return nil
}

type ChatRequest struct {
	Message string  `json:"message" validate:"required"`
	UserID  UserRef `json:"user_id"`
}

func (c *ChatRequest) Bind(_ *http.Request) error {
	c.Message = strings.TrimSpace(c.Message)
	return validate.Struct(c)
}

type ResetRequest struct {
	UserID UserRef `json:"user_id"`
}

func (r *ResetRequest) Bind(_ *http.Request) error {
	return nil
}

type ChatResponse struct {
	Response string     `json:"response"`
	History  []ChatTurn `json:"history"`
}
