package controllers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type addToCartRequest struct {
	Name  string           `form:"product_name" validate:"required"`
	Price *decimal.Decimal `form:"product_price" validate:"required"`
	Image string           `form:"product_image"`
}

// AddToCart appends the posted product and sends the visitor back where they came from.
func AddToCart(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := requestSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req addToCartRequest
		if err := validators.DecodeForm(w, r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if req.Price.IsNegative() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{"product_price": "must not be negative"}))
			return
		}

		if err := svc.Add(sess, cart.AddInput{Name: req.Name, Price: *req.Price, Image: req.Image}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := saveSession(w, r, sess); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.Redirect(w, r, refererPath(r))
	}
}

// RemoveFromCart drops the line at {index}. Unknown positions are ignored.
func RemoveFromCart(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := requestSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err == nil {
			if _, err := svc.Remove(sess, index); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if err := saveSession(w, r, sess); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		responses.Redirect(w, r, "/cart")
	}
}

func CartView(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := requestSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.View(sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteView(w, ViewCart, view)
	}
}

// refererPath keeps only the path and query of the Referer so redirects stay on this host.
func refererPath(r *http.Request) string {
	raw := r.Referer()
	if raw == "" {
		return "/"
	}
	ref, err := url.Parse(raw)
	if err != nil || !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return "/"
	}
	target := ref.Path
	if ref.RawQuery != "" {
		target += "?" + ref.RawQuery
	}
	return target
}
