package core

import (
	"ShelfGuardian/entity"
	"ShelfGuardian/internal/lib/sl"
	"context"
	"log/slog"
	"sync"
	"time"
)

type Repository interface {
	CreateProduct(ctx context.Context, product *entity.Product) error
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
	UpdateProduct(ctx context.Context, product *entity.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error)
	ListProductsByExpiry(ctx context.Context, filter entity.ExpiryFilter) ([]entity.Product, error)
	DeleteExpiredBefore(ctx context.Context, before entity.Date) (int64, error)
}

type AuthService interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error)
	Login(ctx context.Context, login, password string) (*entity.Token, error)
	AuthenticateByToken(ctx context.Context, token string) (*entity.User, error)
	DeleteAccount(ctx context.Context, user *entity.User) error
}

type Assistant interface {
	Ask(ctx context.Context, user *entity.User, message string) (string, error)
}

type History interface {
	Add(userID int64, turn entity.ChatTurn)
	Get(userID int64) []entity.ChatTurn
	Reset(userID int64)
}

// Publisher delivers realtime events to connected users.
type Publisher interface {
	Publish(userID int64, event entity.Event)
	ConnectedUsers() []int64
}

type Metrics interface {
	CleanupDeleted(n int64)
}

type Core struct {
	repo         Repository
	authService  AuthService
	ass          Assistant
	history      History
	publisher    Publisher
	metrics      Metrics
	expiredDays  int
	expiringDays int
	cleanupHour  int
	lastCleanup  cleanupRun
	mu           sync.Mutex
	now          func() time.Time
	log          *slog.Logger
}

func New(log *slog.Logger) *Core {
	return &Core{
		expiredDays:  7,
		expiringDays: 7,
		cleanupHour:  3,
		now:          time.Now,
		log:          log.With(sl.Module("core")),
	}
}

func (c *Core) SetRepository(repo Repository) {
	c.repo = repo
}

func (c *Core) SetAuthService(auth AuthService) {
	c.authService = auth
}

func (c *Core) SetAssistant(ass Assistant) {
	c.ass = ass
}

func (c *Core) SetHistory(history History) {
	c.history = history
}

func (c *Core) SetPublisher(publisher Publisher) {
	c.publisher = publisher
}

func (c *Core) SetMetrics(metrics Metrics) {
	c.metrics = metrics
}

// SetCleanup configures the daily job: products expired more than
// expiredDays ago are removed at hour, then connected users get their
// products expiring within expiringDays.
func (c *Core) SetCleanup(hour, expiredDays, expiringDays int) {
	if hour >= 0 && hour < 24 {
		c.cleanupHour = hour
	}
	if expiredDays > 0 {
		c.expiredDays = expiredDays
	}
	if expiringDays > 0 {
		c.expiringDays = expiringDays
	}
}

func (c *Core) today() entity.Date {
	return entity.DateOf(c.now())
}

func (c *Core) publish(userID int64, eventType string, data interface{}) {
	if c.publisher != nil {
		c.publisher.Publish(userID, entity.NewEvent(eventType, data))
	}
}
