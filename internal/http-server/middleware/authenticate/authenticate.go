package authenticate

import (
	"ShelfGuardian/entity"
	"ShelfGuardian/internal/lib/api/cont"
	"ShelfGuardian/internal/lib/api/response"
	"ShelfGuardian/internal/lib/sl"
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Authenticate interface {
	AuthenticateByToken(ctx context.Context, token string) (*entity.User, error)
}

// New resolves the bearer token into a user and stores it in the request
// context; requests without a valid token get 401.
func New(log *slog.Logger, auth Authenticate) func(next http.Handler) http.Handler {
	mod := sl.Module("middleware.authenticate")
	log.With(mod).Info("authenticate middleware initialized")

	return func(next http.Handler) http.Handler {

		fn := func(w http.ResponseWriter, r *http.Request) {
			logger := log.With(
				mod,
				slog.String("path", r.URL.Path),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			header := r.Header.Get("Authorization")
			if len(header) == 0 {
				authFailed(w, r, "Not authenticated")
				return
			}

			token := ""
			scheme, value, found := strings.Cut(header, " ")
			if found && strings.EqualFold(scheme, "Bearer") {
				token = strings.TrimSpace(value)
			}
			if len(token) == 0 {
				authFailed(w, r, "Token not found")
				return
			}

			user, err := auth.AuthenticateByToken(r.Context(), token)
			if err != nil {
				logger.With(sl.Secret("token", token), sl.Err(err)).Debug("authentication failed")
				authFailed(w, r, "Could not validate credentials")
				return
			}

			ctx := cont.PutUser(r.Context(), user)
			w.Header().Set("X-User", user.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}

func authFailed(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, response.Error(message))
}
