package product

import (
	"ShelfGuardian/entity"
	"ShelfGuardian/internal/lib/api/response"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

func Update(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var req entity.ProductUpdate
		if err := render.Bind(r, &req); err != nil {
			response.BadRequest(w, r, err.Error())
			return
		}

		product, err := handler.UpdateProduct(r.Context(), user, id, &req)
		if err != nil {
			fail(requestLogger(log, r), w, r, err, "update product")
			return
		}

		render.JSON(w, r, product)
	}
}

func Delete(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := handler.DeleteProduct(r.Context(), user, id); err != nil {
			fail(requestLogger(log, r), w, r, err, "delete product")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
