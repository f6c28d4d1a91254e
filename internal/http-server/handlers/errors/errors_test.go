package errors

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejections(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := chi.NewRouter()
	router.NotFound(NotFound(log))
	router.MethodNotAllowed(NotAllowed(log))
	router.Get("/known", func(w http.ResponseWriter, r *http.Request) {})

	cases := []struct {
		method, path string
		status       int
		message      string
	}{
		{http.MethodGet, "/missing", http.StatusNotFound, "Requested resource not found"},
		{http.MethodPost, "/known", http.StatusMethodNotAllowed, "Method not allowed"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		require.Equal(t, tc.status, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		assert.Equal(t, tc.message, body["message"])
	}
}
