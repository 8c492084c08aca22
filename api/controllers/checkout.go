package controllers

import (
	"context"
	"net/http"

	"github.com/yarotec/storefront/api/responses"
	"github.com/yarotec/storefront/api/validators"
	"github.com/yarotec/storefront/internal/checkout"
	"github.com/yarotec/storefront/pkg/logger"
)

// CheckoutService submits orders and forms through the relay.
type CheckoutService interface {
	SubmitOrder(ctx context.Context, c checkout.OrderCart, form checkout.OrderForm) (checkout.Result, error)
	SubmitContact(ctx context.Context, form checkout.ContactForm) (checkout.Result, error)
	SubmitServiceRequest(ctx context.Context, form checkout.ServiceForm) (checkout.Result, error)
}

// writeRelayResult answers 200 on success and 502 with the relay's message
// otherwise; the shopper can retry by resubmitting.
func writeRelayResult(w http.ResponseWriter, res checkout.Result) {
	if res.Success {
		responses.WriteSuccess(w, res)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusBadGateway, res)
}

func CheckoutSubmit(registry CartRegistry, svc CheckoutService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var form checkout.OrderForm
		if err := validators.DecodeJSONBody(w, r, &form); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		store, err := sessionCart(r, registry)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		res, err := svc.SubmitOrder(ctx, store, form)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		writeRelayResult(w, res)
	}
}

func ContactSubmit(svc CheckoutService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form checkout.ContactForm
		if err := validators.DecodeJSONBody(w, r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		res, err := svc.SubmitContact(r.Context(), form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeRelayResult(w, res)
	}
}

func ServiceRequestSubmit(svc CheckoutService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form checkout.ServiceForm
		if err := validators.DecodeJSONBody(w, r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		res, err := svc.SubmitServiceRequest(r.Context(), form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeRelayResult(w, res)
	}
}
