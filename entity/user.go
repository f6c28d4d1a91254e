package entity

import (
	"ShelfGuardian/internal/lib/validate"
	"net/http"
	"strings"
	"time"
)

type User struct {
	ID             int64     `json:"id" bson:"id"`
	Email          string    `json:"email" bson:"email"`
	Username       string    `json:"username" bson:"username"`
	HashedPassword string    `json:"-" bson:"hashed_password"`
	CreatedAt      time.Time `json:"-" bson:"created_at"`
}

func NewUser(email, username, hashedPassword string) *User {
	return &User{
		Email:          strings.ToLower(strings.TrimSpace(email)),
		Username:       strings.TrimSpace(username),
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now(),
	}
}

func (u *User) Owns(p *Product) bool {
	return p != nil && u != nil && p.UserID == u.ID
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=1"`
}

func (r *RegisterRequest) Bind(_ *http.Request) error {
	return validate.Struct(r)
}

// LoginRequest follows the OAuth2 password flow: Username may hold either
// the email or the username.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (l *LoginRequest) Bind(_ *http.Request) error {
	return validate.Struct(l)
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int64  `json:"user_id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
}
