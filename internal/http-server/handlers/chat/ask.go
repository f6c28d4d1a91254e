package chat

import (
	"ShelfGuardian/entity"
	"ShelfGuardian/internal/lib/api/cont"
	"ShelfGuardian/internal/lib/api/response"
	"ShelfGuardian/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// chatUser resolves the user a chat request acts for. An empty user_id
// means the caller; any other id must match the caller.
func chatUser(w http.ResponseWriter, r *http.Request, ref entity.UserRef) (*entity.User, bool) {
	user, err := cont.GetUser(r.Context())
	if err != nil {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Not authenticated"))
		return nil, false
	}
	if ref != 0 && int64(ref) != user.ID {
		response.Fail(w, r, entity.ErrForbidden)
		return nil, false
	}
	return user, true
}

func Ask(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.chat"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req entity.ChatRequest
		if err := render.Bind(r, &req); err != nil {
			response.BadRequest(w, r, err.Error())
			return
		}

		user, ok := chatUser(w, r, req.UserID)
		if !ok {
			return
		}

		resp := handler.Ask(r.Context(), user, req.Message)
		logger.With(
			slog.Int64("user_id", user.ID),
			slog.Int("history", len(resp.History)),
		).Debug("chat answered")

		render.JSON(w, r, resp)
	}
}
