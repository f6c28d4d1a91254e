package entity

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("not allowed")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidToken       = errors.New("invalid token")
	ErrDateOutOfRange     = errors.New("date out of range")
)
