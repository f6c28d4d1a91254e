package service

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

type status struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

func Health(_ *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, status{Status: "healthy"})
	}
}

func Root(_ *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, status{Message: "Expiry Tracker API"})
	}
}
