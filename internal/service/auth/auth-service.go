package auth

import (
	"ShelfGuardian/entity"
	"ShelfGuardian/internal/config"
	"ShelfGuardian/internal/lib/sl"
	"context"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"log/slog"
	"strings"
	"time"
)

const tokenType = "bearer"

type Repository interface {
	CreateUser(ctx context.Context, user *entity.User) error
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

type Service struct {
	repository Repository
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
	log        *slog.Logger
}

func NewAuthService(conf *config.Config, logger *slog.Logger) *Service {
	log := logger.With(sl.Module("auth-service"))

	secret := conf.Auth.JwtSecret
	if secret == "" {
		secret = uuid.NewString() + uuid.NewString()
		log.Warn("jwt secret not configured, tokens will not survive restart")
	}

	cost := conf.Auth.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	ttl := time.Duration(conf.Auth.TokenTTL) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	return &Service{
		secret:     []byte(secret),
		tokenTTL:   ttl,
		bcryptCost: cost,
		now:        time.Now,
		log:        log,
	}
}

func (s *Service) SetRepository(repository Repository) {
	s.repository = repository
}

func (s *Service) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error) {
	if s.repository == nil {
		return nil, fmt.Errorf("repository not initialized")
	}

	existing, err := s.repository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.log.With(slog.String("email", req.Email)).Warn("registration failed: email exists")
		return nil, entity.ErrEmailTaken
	}

	existing, err = s.repository.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, entity.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := entity.NewUser(req.Email, req.Username, string(hash))
	if err = s.repository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.With(
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email),
	).Info("user registered")

	return user, nil
}

// Login accepts either the email or the username as login.
func (s *Service) Login(ctx context.Context, login, password string) (*entity.Token, error) {
	if s.repository == nil {
		return nil, fmt.Errorf("repository not initialized")
	}

	user, err := s.findByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, entity.ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &entity.Token{
		AccessToken: token,
		TokenType:   tokenType,
		UserID:      user.ID,
		Email:       user.Email,
		Username:    user.Username,
	}, nil
}

func (s *Service) findByLogin(ctx context.Context, login string) (*entity.User, error) {
	if strings.Contains(login, "@") {
		user, err := s.repository.GetUserByEmail(ctx, login)
		if err != nil || user != nil {
			return user, err
		}
	}
	return s.repository.GetUserByUsername(ctx, login)
}

func (s *Service) IssueToken(user *entity.User) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

func (s *Service) parseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, entity.ErrInvalidToken
	}
	return claims, nil
}

// AuthenticateByToken resolves a bearer token into its user.
func (s *Service) AuthenticateByToken(ctx context.Context, token string) (*entity.User, error) {
	if s.repository == nil {
		return nil, fmt.Errorf("repository not initialized")
	}

	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.repository.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Email != claims.Subject {
		return nil, fmt.Errorf("%w: user not found", entity.ErrInvalidToken)
	}
	return user, nil
}

func (s *Service) DeleteAccount(ctx context.Context, user *entity.User) error {
	if s.repository == nil {
		return fmt.Errorf("repository not initialized")
	}
	if err := s.repository.DeleteUser(ctx, user.ID); err != nil {
		return err
	}
	s.log.With(slog.Int64("user_id", user.ID)).Info("account deleted")
	return nil
}
