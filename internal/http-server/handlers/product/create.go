package product

import (
	"ShelfGuardian/entity"
	"ShelfGuardian/internal/lib/api/response"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

func Create(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(log, r)

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req entity.ProductCreate
		if err := render.Bind(r, &req); err != nil {
			response.BadRequest(w, r, err.Error())
			return
		}

		product, err := handler.CreateProduct(r.Context(), user, &req)
		if err != nil {
			fail(logger, w, r, err, "create product")
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, product)
	}
}
