package api

import (
	"ShelfGuardian/internal/config"
	"ShelfGuardian/internal/http-server/handlers/auth"
	"ShelfGuardian/internal/http-server/handlers/chat"
	"ShelfGuardian/internal/http-server/handlers/errors"
	"ShelfGuardian/internal/http-server/handlers/product"
	"ShelfGuardian/internal/http-server/handlers/service"
	"ShelfGuardian/internal/http-server/middleware/authenticate"
	"ShelfGuardian/internal/http-server/middleware/logger"
	"ShelfGuardian/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	auth.Core
	product.Core
	chat.Core
}

type Realtime interface {
	ServeWs(w http.ResponseWriter, r *http.Request)
}

type Metrics interface {
	Middleware(next http.Handler) http.Handler
	Handler() http.Handler
}

// NewRouter builds the HTTP surface. realtime and metrics are optional.
func NewRouter(conf *config.Config, log *slog.Logger, handler Handler, realtime Realtime, metrics Metrics) http.Handler {
	timeout := time.Duration(conf.Listen.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   conf.Cors.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           600,
	}))
	if metrics != nil {
		router.Use(metrics.Middleware)
	}
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Get("/", service.Root(log))
	if metrics != nil {
		router.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	router.Route("/api", func(api chi.Router) {
		api.Get("/health", service.Health(log))
		if realtime != nil {
			api.Get("/ws", realtime.ServeWs)
		}

		api.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(timeout))

			r.Post("/auth/register", auth.Register(log, handler))
			r.Post("/auth/login", auth.Login(log, handler))

			r.Group(func(r chi.Router) {
				r.Use(authenticate.New(log, handler))
				r.Use(logger.Capture)

				r.Get("/auth/me", auth.Me(log))
				r.Delete("/auth/me", auth.DeleteMe(log, handler))

				r.Route("/products", func(r chi.Router) {
					r.Post("/", product.Create(log, handler))
					r.Get("/", product.List(log, handler))
					r.Get("/expiring/soon", product.ExpiringSoon(log, handler))
					r.Get("/user/{user_id}", product.ByUser(log, handler))
					r.Get("/category/{category}", product.ByCategory(log, handler))
					r.Get("/{id}", product.Get(log, handler))
					r.Put("/{id}", product.Update(log, handler))
					r.Delete("/{id}", product.Delete(log, handler))
				})

				r.Route("/chat", func(r chi.Router) {
					r.Post("/ask", chat.Ask(log, handler))
					r.Post("/reset", chat.Reset(log, handler))
					r.Get("/history", chat.History(log, handler))
				})
			})
		})
	})

	return router
}

// New serves the API until ctx is cancelled, then shuts down gracefully.
func New(ctx context.Context, conf *config.Config, log *slog.Logger, handler Handler, realtime Realtime, metrics Metrics) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:           NewRouter(conf, log, handler, realtime, metrics),
		ErrorLog:          httpLog,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.httpServer.Serve(listener)
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	server.log.Info("shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = server.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
