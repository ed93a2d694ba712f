package controllers

import (
	"errors"
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/auth"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

func SigninForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteView(w, ViewSignin, signinView{})
	}
}

// Signin registers a new account and greets it by name. Form problems
// re-render the sign-in view with a single message.
func Signin(svc auth.RegisterService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.RegisterRequest
		if err := validators.DecodeForm(w, r, &req); err != nil {
			responses.WriteViewStatus(w, http.StatusBadRequest, ViewSignin, signinView{Error: validators.FirstDetail(err)})
			return
		}

		user, err := svc.Register(r.Context(), req)
		switch {
		case errors.Is(err, auth.ErrPasswordMismatch):
			responses.WriteViewStatus(w, http.StatusBadRequest, ViewSignin, signinView{Error: auth.ErrPasswordMismatch.Message()})
			return
		case errors.Is(err, auth.ErrDuplicateContact):
			responses.WriteViewStatus(w, http.StatusConflict, ViewSignin, signinView{Error: auth.ErrDuplicateContact.Message()})
			return
		case err != nil:
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithField(r.Context(), "user_id", user.ID.String()), "user.registered")
		}
		responses.WriteView(w, ViewWelcome, welcomeView{Name: user.Name})
	}
}

func Welcome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteView(w, ViewWelcome, welcomeView{})
	}
}
