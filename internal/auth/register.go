package auth

import (
	"context"
	"errors"

	"github.com/angelmondragon/storefront-backend/internal/users"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

var (
	ErrPasswordMismatch = pkgerrors.New(pkgerrors.CodeValidation, "Passwords do not match!")
	ErrDuplicateContact = pkgerrors.New(pkgerrors.CodeConflict, "User with this contact already exists!")
)

// RegisterRequest contains the submitted sign-up form. Fields are taken as
// submitted: a password mismatch and a taken contact are the only ways
// registration is refused.
type RegisterRequest struct {
	Name            string `form:"name"`
	Contact         string `form:"contact"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"re_password"`
}

// RegisterService creates storefront accounts.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error)
}

type registerService struct {
	users   users.Store
	metrics *metrics.StorefrontMetrics
}

// NewRegisterService builds a registration service over the given user store.
func NewRegisterService(store users.Store, m *metrics.StorefrontMetrics) (RegisterService, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "user store required")
	}
	return &registerService{users: store, metrics: m}, nil
}

// Register stores the account as submitted. The password is kept verbatim.
func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error) {
	if req.Password != req.ConfirmPassword {
		s.metrics.IncRegistration("password_mismatch")
		return nil, ErrPasswordMismatch
	}

	_, err := s.users.FindByContact(ctx, req.Contact)
	switch {
	case err == nil:
		s.metrics.IncRegistration("duplicate")
		return nil, ErrDuplicateContact
	case !errors.Is(err, users.ErrUserNotFound):
		s.metrics.IncRegistration("error")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to look up contact")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Name:     req.Name,
		Contact:  req.Contact,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, users.ErrContactTaken) {
			s.metrics.IncRegistration("duplicate")
			return nil, ErrDuplicateContact
		}
		s.metrics.IncRegistration("error")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to create user")
	}

	s.metrics.IncRegistration("created")
	return users.FromModel(user), nil
}
