package auth

import (
	"ShelfGuardian/internal/lib/api/cont"
	"ShelfGuardian/internal/lib/api/response"
	"ShelfGuardian/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

func Me(_ *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := cont.GetUser(r.Context())
		if err != nil {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Not authenticated"))
			return
		}
		render.JSON(w, r, user)
	}
}

func DeleteMe(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := cont.GetUser(r.Context())
		if err != nil {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Not authenticated"))
			return
		}

		if err = handler.DeleteAccount(r.Context(), user); err != nil {
			log.With(sl.Module("http.handlers.auth"), slog.Int64("user_id", user.ID)).Error("delete account", sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
