package errors

import (
	"log/slog"
	"net/http"

	"ShelfGuardian/internal/lib/api/response"
	"ShelfGuardian/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func NotFound(log *slog.Logger) http.HandlerFunc {
	return reject(log, http.StatusNotFound, "Requested resource not found")
}

func NotAllowed(log *slog.Logger) http.HandlerFunc {
	return reject(log, http.StatusMethodNotAllowed, "Method not allowed")
}

func reject(log *slog.Logger, status int, message string) http.HandlerFunc {
	logger := log.With(sl.Module("http.handlers.errors"))
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("rejected request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		render.Status(r, status)
		render.JSON(w, r, response.Error(message))
	}
}
