package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/session"
)

// View names rendered by the storefront.
const (
	ViewHome              = "home"
	ViewProducts          = "products"
	ViewSignin            = "signin"
	ViewWelcome           = "welcome"
	ViewCart              = "cart"
	ViewCheckout          = "checkout"
	ViewOrderConfirmation = "order_confirmation"
)

type catalogView struct {
	Products    []models.Product `json:"products"`
	SearchQuery string           `json:"search_query"`
}

type signinView struct {
	Error string `json:"error,omitempty"`
}

type welcomeView struct {
	Name string `json:"name,omitempty"`
}

type checkoutView struct {
	*checkout.Summary
	Error string `json:"error,omitempty"`
}

var errSessionMissing = pkgerrors.New(pkgerrors.CodeInternal, "session unavailable")

func requestSession(r *http.Request) (*session.Session, error) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		return nil, errSessionMissing
	}
	return sess, nil
}

func saveSession(w http.ResponseWriter, r *http.Request, sess *session.Session) error {
	if err := sess.Save(r, w); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to save session")
	}
	return nil
}

type catalogLister interface {
	List(ctx context.Context, query string, limit int) ([]models.Product, error)
}

type checkoutService interface {
	Prepare(state cart.State) (*checkout.Summary, error)
	Submit(ctx context.Context, state cart.State, form checkout.Form) (*models.Checkout, error)
	Confirmation(ctx context.Context, rawID string) (*checkout.Confirmation, error)
}

func isEmptyCart(err error) bool {
	return errors.Is(err, checkout.ErrEmptyCart)
}
