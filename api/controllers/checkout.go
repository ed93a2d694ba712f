package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

func CheckoutForm(svc checkoutService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := requestSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Prepare(sess)
		if isEmptyCart(err) {
			responses.Redirect(w, r, "/cart")
			return
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteView(w, ViewCheckout, checkoutView{Summary: summary})
	}
}

// CheckoutSubmit records the order and redirects to its confirmation page.
func CheckoutSubmit(svc checkoutService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := requestSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Prepare(sess)
		if isEmptyCart(err) {
			responses.Redirect(w, r, "/cart")
			return
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var form checkout.Form
		if err := validators.DecodeForm(w, r, &form); err != nil {
			responses.WriteViewStatus(w, http.StatusBadRequest, ViewCheckout, checkoutView{Summary: summary, Error: validators.FirstDetail(err)})
			return
		}

		record, err := svc.Submit(r.Context(), sess, form)
		if isEmptyCart(err) {
			responses.Redirect(w, r, "/cart")
			return
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := saveSession(w, r, sess); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.Redirect(w, r, "/order_confirmation/"+record.ID.String())
	}
}

// OrderConfirmation shows a placed checkout. Unknown ids go back home.
func OrderConfirmation(svc checkoutService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		confirmation, err := svc.Confirmation(r.Context(), chi.URLParam(r, "orderId"))
		if errors.Is(err, checkout.ErrCheckoutNotFound) {
			responses.Redirect(w, r, "/")
			return
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteView(w, ViewOrderConfirmation, confirmation)
	}
}
