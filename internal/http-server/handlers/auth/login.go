package auth

import (
	"ShelfGuardian/entity"
	"ShelfGuardian/internal/lib/api/response"
	"ShelfGuardian/internal/lib/sl"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// Login accepts the OAuth2 password form (username, password) as well as a
// JSON body with the same fields. The username field may hold the email.
func Login(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.auth"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		req, err := decodeLogin(r)
		if err != nil {
			response.BadRequest(w, r, err.Error())
			return
		}

		token, err := handler.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, entity.ErrInvalidCredentials) {
				logger.With(slog.String("login", req.Username)).Info("login failed")
				w.Header().Set("WWW-Authenticate", "Bearer")
			} else {
				logger.Error("login", sl.Err(err))
			}
			response.Fail(w, r, err)
			return
		}

		render.JSON(w, r, token)
	}
}

func decodeLogin(r *http.Request) (*entity.LoginRequest, error) {
	var req entity.LoginRequest

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
		return &req, req.Bind(r)
	}

	if err := render.Bind(r, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
