package logger

import (
	"ShelfGuardian/internal/lib/api/cont"
	"ShelfGuardian/internal/lib/sl"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// New logs every request once it completes, with status, size and
// duration. The authenticated user is included when present.
func New(log *slog.Logger) func(next http.Handler) http.Handler {
	mod := sl.Module("middleware.logger")

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			id := middleware.GetReqID(r.Context())
			remote := r.RemoteAddr
			if xRemote := r.Header.Get("X-Forwarded-For"); xRemote != "" {
				remote = xRemote
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Header().Set("X-Request-ID", id)

			holder := &userHolder{}
			t1 := time.Now()
			defer func() {
				logger := log.With(
					mod,
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("remote_addr", remote),
					slog.String("origin", r.Header.Get("Origin")),
					slog.String("request_id", id),
					slog.Int("status", ww.Status()),
					slog.Int("size", ww.BytesWritten()),
					slog.Float64("duration", time.Since(t1).Seconds()),
				)
				if holder.username != "" {
					logger = logger.With(slog.String("user", holder.username))
				}
				logger.Info("incoming request")
			}()

			next.ServeHTTP(ww, r.WithContext(withHolder(r.Context(), holder)))
		}
		return http.HandlerFunc(fn)
	}
}

// Capture records the authenticated user for the request log line. It runs
// inside the authenticated route group.
func Capture(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if holder := holderFrom(r.Context()); holder != nil {
			if user, err := cont.GetUser(r.Context()); err == nil {
				holder.username = user.Username
			}
		}
		next.ServeHTTP(w, r)
	})
}
