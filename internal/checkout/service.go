package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

const (
	deliveryLeadTime   = 3 * 24 * time.Hour
	deliveryDateLayout = "Mon, Jan 02"
)

// Form is the shipping and payment form submitted with a checkout. Every
// field is free text and recorded as submitted, blank or not.
type Form struct {
	DeliveryOption string `form:"delivery_option"`
	FirstName      string `form:"first_name"`
	LastName       string `form:"last_name"`
	Address        string `form:"address"`
	Email          string `form:"email"`
	Phone          string `form:"phone"`
	PaymentMethod  string `form:"payment_method"`
}

// Summary is the checkout page payload.
type Summary struct {
	Items        []types.CartLine `json:"items"`
	Totals       cart.Totals      `json:"totals"`
	DeliveryDate string           `json:"delivery_date"`
}

// Confirmation is a placed checkout with its order, when one exists.
type Confirmation struct {
	Checkout *models.Checkout `json:"checkout"`
	Order    *models.Order    `json:"order,omitempty"`
}

// ServiceParams packages the checkout collaborators.
type ServiceParams struct {
	Checkouts Store
	Orders    orders.Store
	Cart      *cart.Service
	Metrics   *metrics.StorefrontMetrics
	Logger    *logger.Logger
}

// Service turns a session cart into persisted checkout and order records.
type Service struct {
	checkouts Store
	orders    orders.Store
	cart      *cart.Service
	metrics   *metrics.StorefrontMetrics
	logg      *logger.Logger
	now       func() time.Time
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Checkouts == nil {
		return nil, errors.New("checkout store required")
	}
	if params.Orders == nil {
		return nil, errors.New("order store required")
	}
	if params.Cart == nil {
		return nil, errors.New("cart service required")
	}
	return &Service{
		checkouts: params.Checkouts,
		orders:    params.Orders,
		cart:      params.Cart,
		metrics:   params.Metrics,
		logg:      params.Logger,
		now:       time.Now,
	}, nil
}

// Prepare summarizes the cart for the checkout page.
func (s *Service) Prepare(state cart.State) (*Summary, error) {
	lines, err := s.cart.Items(state)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	return &Summary{
		Items:        lines,
		Totals:       cart.ComputeTotals(lines),
		DeliveryDate: s.now().Add(deliveryLeadTime).Format(deliveryDateLayout),
	}, nil
}

// Submit records the checkout and its order, then empties the cart. The cart
// is left intact when either write fails.
func (s *Service) Submit(ctx context.Context, state cart.State, form Form) (*models.Checkout, error) {
	lines, err := s.cart.Items(state)
	if err != nil {
		s.metrics.IncCheckoutFailure("read_cart")
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	totals := cart.ComputeTotals(lines)
	record := &models.Checkout{
		ID:             uuid.New(),
		DeliveryOption: form.DeliveryOption,
		FirstName:      form.FirstName,
		LastName:       form.LastName,
		Address:        form.Address,
		Email:          form.Email,
		Phone:          form.Phone,
		PaymentMethod:  form.PaymentMethod,
		Cart:           lines,
		Subtotal:       totals.Subtotal,
		Shipping:       totals.Shipping,
		Tax:            totals.Tax,
		Total:          totals.Total,
		CheckoutDate:   s.now().UTC().Truncate(time.Millisecond),
		Status:         enums.CheckoutStatusProcessing,
	}

	if err := s.checkouts.Place(ctx, record, orders.FromCheckout(record)); err != nil {
		s.metrics.IncCheckoutFailure("persist")
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to record checkout")
	}

	s.cart.Clear(state)
	s.metrics.IncCheckout()
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "checkout_id", record.ID.String()), "checkout recorded")
	}
	return record, nil
}

// Confirmation loads a placed checkout by its raw id.
func (s *Service) Confirmation(ctx context.Context, rawID string) (*Confirmation, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrCheckoutNotFound
	}

	record, err := s.checkouts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCheckoutNotFound) {
			return nil, ErrCheckoutNotFound
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load checkout")
	}

	order, err := s.orders.FindByOrderID(ctx, record.ID)
	switch {
	case err == nil:
	case errors.Is(err, orders.ErrOrderNotFound):
		order = nil
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load order")
	}

	return &Confirmation{Checkout: record, Order: order}, nil
}
