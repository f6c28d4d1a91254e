package auth

import (
	"ShelfGuardian/entity"
	"ShelfGuardian/internal/config"
	"ShelfGuardian/internal/database/memory"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()

	conf := &config.Config{}
	conf.Auth.JwtSecret = "test-secret"
	conf.Auth.TokenTTL = 30
	conf.Auth.BcryptCost = bcrypt.MinCost

	store := memory.New()
	s := NewAuthService(conf, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.SetRepository(store)
	return s, store
}

func register(t *testing.T, s *Service, email, username string) *entity.User {
	t.Helper()
	user, err := s.Register(context.Background(), &entity.RegisterRequest{
		Email:    email,
		Username: username,
		Password: "secret",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s, _ := newTestService(t)
	register(t, s, "alice@example.com", "alice")

	_, err := s.Register(context.Background(), &entity.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice2",
		Password: "secret",
	})
	assert.ErrorIs(t, err, entity.ErrEmailTaken)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	s, _ := newTestService(t)
	register(t, s, "alice@example.com", "alice")

	_, err := s.Register(context.Background(), &entity.RegisterRequest{
		Email:    "other@example.com",
		Username: "alice",
		Password: "secret",
	})
	assert.ErrorIs(t, err, entity.ErrUsernameTaken)
}

func TestRegisterHashesPassword(t *testing.T) {
	s, _ := newTestService(t)
	user := register(t, s, "alice@example.com", "alice")

	assert.NotEqual(t, "secret", user.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("secret")))
}

func TestLogin(t *testing.T) {
	s, _ := newTestService(t)
	user := register(t, s, "alice@example.com", "alice")

	for _, login := range []string{"alice@example.com", "alice"} {
		token, err := s.Login(context.Background(), login, "secret")
		require.NoError(t, err, login)
		assert.Equal(t, "bearer", token.TokenType)
		assert.Equal(t, user.ID, token.UserID)
		assert.Equal(t, "alice@example.com", token.Email)
		assert.Equal(t, "alice", token.Username)
		assert.NotEmpty(t, token.AccessToken)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	s, _ := newTestService(t)
	register(t, s, "alice@example.com", "alice")

	_, err := s.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	_, err = s.Login(context.Background(), "nobody", "secret")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestAuthenticateByToken(t *testing.T) {
	s, _ := newTestService(t)
	user := register(t, s, "alice@example.com", "alice")

	token, err := s.IssueToken(user)
	require.NoError(t, err)

	got, err := s.AuthenticateByToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = s.AuthenticateByToken(context.Background(), token+"x")
	assert.ErrorIs(t, err, entity.ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	s, _ := newTestService(t)
	user := register(t, s, "alice@example.com", "alice")

	token, err := s.IssueToken(user)
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(31 * time.Minute) }
	_, err = s.AuthenticateByToken(context.Background(), token)
	assert.ErrorIs(t, err, entity.ErrInvalidToken)
}

func TestTokenSignedWithOtherSecretRejected(t *testing.T) {
	s, store := newTestService(t)
	user := register(t, s, "alice@example.com", "alice")

	other := NewAuthService(&config.Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	other.SetRepository(store)
	token, err := other.IssueToken(user)
	require.NoError(t, err)

	_, err = s.AuthenticateByToken(context.Background(), token)
	assert.ErrorIs(t, err, entity.ErrInvalidToken)
}

func TestDeleteAccount(t *testing.T) {
	s, store := newTestService(t)
	ctx := context.Background()
	user := register(t, s, "alice@example.com", "alice")
	require.NoError(t, store.CreateProduct(ctx, &entity.Product{Name: "Milk", UserID: user.ID}))

	token, err := s.IssueToken(user)
	require.NoError(t, err)

	require.NoError(t, s.DeleteAccount(ctx, user))

	products, err := store.ListProducts(ctx, entity.ProductFilter{UserID: user.ID})
	require.NoError(t, err)
	assert.Empty(t, products)

	_, err = s.AuthenticateByToken(ctx, token)
	assert.ErrorIs(t, err, entity.ErrInvalidToken)
}
