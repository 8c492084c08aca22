package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/yarotec/storefront/api/responses"
	"github.com/yarotec/storefront/api/validators"
	"github.com/yarotec/storefront/internal/browse"
	"github.com/yarotec/storefront/internal/catalog"
	pkgerrors "github.com/yarotec/storefront/pkg/errors"
	"github.com/yarotec/storefront/pkg/logger"
	"github.com/yarotec/storefront/pkg/pagination"
)

// CatalogReader is the read surface of the catalog store.
type CatalogReader interface {
	All() []catalog.Product
	ByID(id string) (catalog.Product, bool)
	Promotional(limit int) []catalog.Product
	Categories() []string
}

var errProductNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "product not found")

// ProductList serves the browse grid.
func ProductList(store CatalogReader, projector *browse.Projector, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 100000)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		perPage, err := validators.ParseQueryInt(r, "per_page", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		order, err := validators.ParseQuerySort(r, "sort")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		q := r.URL.Query()
		result := projector.Browse(store.All(), browse.Query{
			Search:   validators.SanitizeString(q.Get("q"), 100),
			Category: validators.SanitizeString(q.Get("category"), 100),
			Sort:     order,
			Page:     page,
			PerPage:  perPage,
		})
		responses.WriteSuccess(w, result)
	}
}

func ProductDetail(store CatalogReader, projector *browse.Projector, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "productId"))
		product, ok := store.ByID(id)
		if !ok {
			responses.WriteError(r.Context(), logg, w, errProductNotFound)
			return
		}
		responses.WriteSuccess(w, projector.Detail(product))
	}
}

func ProductPromotions(store CatalogReader, projector *browse.Projector, defaultLimit int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", defaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, projector.Promotions(store, limit))
	}
}

func CategoryList(store CatalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"categories": store.Categories()})
	}
}
