package product

import (
	"ShelfGuardian/entity"
	"ShelfGuardian/internal/lib/api/response"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const defaultExpiringDays = 7

func ByCategory(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		category, err := entity.ParseCategory(chi.URLParam(r, "category"))
		if err != nil {
			response.BadRequest(w, r, err.Error())
			return
		}

		products, err := handler.ProductsByCategory(r.Context(), user, category)
		if err != nil {
			fail(requestLogger(log, r), w, r, err, "list products by category")
			return
		}

		render.JSON(w, r, products)
	}
}

// ExpiringSoon lists products expiring between today and today+days
// inclusive; days defaults to 7.
func ExpiringSoon(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		days := defaultExpiringDays
		if s := r.URL.Query().Get("days"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 {
				response.BadRequest(w, r, "days must be a positive integer")
				return
			}
			days = n
		}

		products, err := handler.ExpiringSoon(r.Context(), user, days)
		if err != nil {
			fail(requestLogger(log, r), w, r, err, "list expiring products")
			return
		}

		render.JSON(w, r, products)
	}
}
