package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

const maxSearchLength = 200

// Home renders the first products of the catalog, optionally filtered by ?search=.
func Home(svc catalogLister, logg *logger.Logger) http.HandlerFunc {
	return catalog(svc, ViewHome, products.HomeLimit, logg)
}

// ProductListing renders every matching product.
func ProductListing(svc catalogLister, logg *logger.Logger) http.HandlerFunc {
	return catalog(svc, ViewProducts, 0, logg)
}

func catalog(svc catalogLister, view string, limit int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := validators.SanitizeString(r.URL.Query().Get("search"), maxSearchLength)

		rows, err := svc.List(r.Context(), query, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteView(w, view, catalogView{Products: rows, SearchQuery: query})
	}
}
