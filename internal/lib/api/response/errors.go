package response

import (
	"ShelfGuardian/entity"
	"errors"
	"net/http"

	"github.com/go-chi/render"
)

// StatusOf maps domain errors onto HTTP status codes.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrInvalidCredentials), errors.Is(err, entity.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrEmailTaken),
		errors.Is(err, entity.ErrUsernameTaken),
		errors.Is(err, entity.ErrInvalidCategory),
		errors.Is(err, entity.ErrDateOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// messageOf returns the client-facing text for err.
func messageOf(err error, status int) string {
	switch {
	case status == http.StatusInternalServerError:
		return "Internal server error"
	case errors.Is(err, entity.ErrEmailTaken):
		return "Email already registered"
	case errors.Is(err, entity.ErrUsernameTaken):
		return "Username already taken"
	case errors.Is(err, entity.ErrInvalidCredentials):
		return "Incorrect email or password"
	default:
		return err.Error()
	}
}

// Fail renders err with its mapped status. Internal errors are not exposed
// to the client.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	message := messageOf(err, status)
	render.Status(r, status)
	render.JSON(w, r, Error(message))
}

func BadRequest(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, Error(message))
}
