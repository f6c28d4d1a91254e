package product

import (
	"ShelfGuardian/entity"
	"ShelfGuardian/internal/lib/api/cont"
	"ShelfGuardian/internal/lib/api/response"
	"ShelfGuardian/internal/lib/sl"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func requestLogger(log *slog.Logger, r *http.Request) *slog.Logger {
	return log.With(
		sl.Module("http.handlers.product"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

func currentUser(w http.ResponseWriter, r *http.Request) (*entity.User, bool) {
	user, err := cont.GetUser(r.Context())
	if err != nil {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Not authenticated"))
		return nil, false
	}
	return user, true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		response.BadRequest(w, r, fmt.Sprintf("invalid %s", name))
		return 0, false
	}
	return id, true
}

// fail renders err and logs it when it is not a client error.
func fail(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error, msg string) {
	if response.StatusOf(err) == http.StatusInternalServerError {
		logger.Error(msg, sl.Err(err))
	}
	response.Fail(w, r, err)
}
