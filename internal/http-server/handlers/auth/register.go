package auth

import (
	"ShelfGuardian/entity"
	"ShelfGuardian/internal/lib/api/response"
	"ShelfGuardian/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func Register(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.auth"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req entity.RegisterRequest
		if err := render.Bind(r, &req); err != nil {
			logger.Debug("invalid register request", sl.Err(err))
			response.BadRequest(w, r, err.Error())
			return
		}

		user, err := handler.Register(r.Context(), &req)
		if err != nil {
			if response.StatusOf(err) == http.StatusInternalServerError {
				logger.Error("register user", sl.Err(err))
			}
			response.Fail(w, r, err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, user)
	}
}
