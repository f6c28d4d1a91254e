package response

import (
	"ShelfGuardian/entity"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	cases := map[error]int{
		entity.ErrNotFound:                                   http.StatusNotFound,
		entity.ErrForbidden:                                  http.StatusForbidden,
		entity.ErrEmailTaken:                                 http.StatusBadRequest,
		entity.ErrUsernameTaken:                              http.StatusBadRequest,
		entity.ErrInvalidCredentials:                         http.StatusUnauthorized,
		fmt.Errorf("wrap: %w", entity.ErrInvalidToken):       http.StatusUnauthorized,
		fmt.Errorf("%w: %q", entity.ErrInvalidCategory, "x"): http.StatusBadRequest,
		errors.New("boom"):                                   http.StatusInternalServerError,
	}
	for err, status := range cases {
		assert.Equal(t, status, StatusOf(err), err.Error())
	}
}

func TestFailMessages(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{fmt.Errorf("register: %w", entity.ErrEmailTaken), http.StatusBadRequest, "Email already registered"},
		{entity.ErrUsernameTaken, http.StatusBadRequest, "Username already taken"},
		{fmt.Errorf("login: %w", entity.ErrInvalidCredentials), http.StatusUnauthorized, "Incorrect email or password"},
		{entity.ErrNotFound, http.StatusNotFound, "not found"},
		{errors.New("mongo: connection refused"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		Fail(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)
		assert.Equal(t, tc.status, rec.Code)

		var body Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, tc.message, body.Message)
	}
}
