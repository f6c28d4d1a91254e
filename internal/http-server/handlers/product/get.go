package product

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

func Get(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		product, err := handler.GetProduct(r.Context(), user, id)
		if err != nil {
			fail(requestLogger(log, r), w, r, err, "get product")
			return
		}

		render.JSON(w, r, product)
	}
}

func ByUser(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		userID, ok := pathID(w, r, "user_id")
		if !ok {
			return
		}

		products, err := handler.ListUserProducts(r.Context(), user, userID)
		if err != nil {
			fail(requestLogger(log, r), w, r, err, "list user products")
			return
		}

		render.JSON(w, r, products)
	}
}
