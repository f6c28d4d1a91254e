package chat

import (
	"ShelfGuardian/entity"
	"ShelfGuardian/internal/lib/api/response"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

type resetResponse struct {
	Message string `json:"message"`
}

// Reset clears the caller's chat history. The body is optional.
func Reset(_ *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req entity.ResetRequest
		if r.ContentLength != 0 {
			if err := render.Bind(r, &req); err != nil {
				response.BadRequest(w, r, err.Error())
				return
			}
		}

		user, ok := chatUser(w, r, req.UserID)
		if !ok {
			return
		}

		handler.ResetChat(user)
		render.JSON(w, r, resetResponse{Message: "Chat history cleared"})
	}
}

func History(_ *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := chatUser(w, r, 0)
		if !ok {
			return
		}
		render.JSON(w, r, handler.ChatHistory(user))
	}
}
