package product

import (
	"ShelfGuardian/entity"
	"ShelfGuardian/internal/lib/api/response"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
)

const (
	defaultLimit = 100
	maxLimit     = 100
)

// List supports ?skip=&limit=&category= and only returns the caller's
// products.
func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(log, r)

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		filter := entity.ProductFilter{Limit: defaultLimit}
		query := r.URL.Query()

		if s := query.Get("skip"); s != "" {
			skip, err := strconv.ParseInt(s, 10, 64)
			if err != nil || skip < 0 {
				response.BadRequest(w, r, "skip must be a non-negative integer")
				return
			}
			filter.Skip = skip
		}
		if s := query.Get("limit"); s != "" {
			limit, err := strconv.ParseInt(s, 10, 64)
			if err != nil || limit < 1 || limit > maxLimit {
				response.BadRequest(w, r, "limit must be between 1 and 100")
				return
			}
			filter.Limit = limit
		}
		if s := query.Get("category"); s != "" {
			category, err := entity.ParseCategory(s)
			if err != nil {
				response.BadRequest(w, r, err.Error())
				return
			}
			filter.Category = category
		}

		products, err := handler.ListProducts(r.Context(), user, filter)
		if err != nil {
			fail(logger, w, r, err, "list products")
			return
		}

		render.JSON(w, r, products)
	}
}
