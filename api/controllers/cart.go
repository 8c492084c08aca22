package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/yarotec/storefront/api/middleware"
	"github.com/yarotec/storefront/api/responses"
	"github.com/yarotec/storefront/api/validators"
	"github.com/yarotec/storefront/internal/cart"
	"github.com/yarotec/storefront/pkg/enums"
	"github.com/yarotec/storefront/pkg/logger"
)

// CartRegistry resolves the Store for a shopper session.
type CartRegistry interface {
	Get(ctx context.Context, sessionID string) (*cart.Store, error)
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required,max=128"`
	Quantity  int    `json:"quantity" validate:"gte=0,lte=999"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0,lte=999"`
}

type cartLineResponse struct {
	ProductID         string `json:"product_id"`
	Name              string `json:"name"`
	Price             int64  `json:"price"`
	FormattedPrice    string `json:"formatted_price"`
	Quantity          int    `json:"quantity"`
	Subtotal          int64  `json:"subtotal"`
	FormattedSubtotal string `json:"formatted_subtotal"`
}

type cartResponse struct {
	State          enums.CartState    `json:"state"`
	Lines          []cartLineResponse `json:"lines"`
	Count          int                `json:"count"`
	Total          int64              `json:"total"`
	FormattedTotal string             `json:"formatted_total"`
	Notice         string             `json:"notice,omitempty"`
}

func newCartResponse(store *cart.Store, notice string) cartResponse {
	lines := store.Lines()
	out := make([]cartLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, cartLineResponse{
			ProductID:         l.ProductID,
			Name:              l.Name,
			Price:             l.Price,
			FormattedPrice:    store.FormatCurrency(l.Price),
			Quantity:          l.Quantity,
			Subtotal:          l.Subtotal(),
			FormattedSubtotal: store.FormatCurrency(l.Subtotal()),
		})
	}
	summary := store.Summary()
	return cartResponse{
		State:          store.State(),
		Lines:          out,
		Count:          summary.Count,
		Total:          summary.Total,
		FormattedTotal: summary.FormattedTotal,
		Notice:         notice,
	}
}

func sessionCart(r *http.Request, registry CartRegistry) (*cart.Store, error) {
	return registry.Get(r.Context(), middleware.SessionIDFromContext(r.Context()))
}

func CartFetch(registry CartRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionCart(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(store, ""))
	}
}

// CartAddItem adds a catalog product; quantity 0 or absent adds one unit.
func CartAddItem(registry CartRegistry, products CatalogReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req addItemRequest
		if err := validators.DecodeJSONBody(w, r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, ok := products.ByID(strings.TrimSpace(req.ProductID))
		if !ok {
			responses.WriteError(ctx, logg, w, errProductNotFound)
			return
		}

		store, err := sessionCart(r, registry)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if logg != nil {
			ctx = logg.WithProductID(ctx, product.ID)
		}
		if err := store.Add(ctx, product, req.Quantity); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newCartResponse(store, cart.AddedMessage(product.Name)))
	}
}

func CartUpdateItem(registry CartRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		productID := strings.TrimSpace(chi.URLParam(r, "productId"))

		var req updateItemRequest
		if err := validators.DecodeJSONBody(w, r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		store, err := sessionCart(r, registry)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := store.UpdateQuantity(ctx, productID, *req.Quantity); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(store, ""))
	}
}

func CartRemoveItem(registry CartRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		productID := strings.TrimSpace(chi.URLParam(r, "productId"))

		store, err := sessionCart(r, registry)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		removed, err := store.Remove(ctx, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(store, cart.RemovedMessage(removed.Name)))
	}
}

func CartClear(registry CartRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionCart(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(store, ""))
	}
}
