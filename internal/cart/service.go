package cart

import (
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// SessionKey is where the cart lines live in session state.
const SessionKey = "cart"

// State is the session surface the cart needs. *session.Session satisfies it.
type State interface {
	Get(key string, dest any) (bool, error)
	Set(key string, value any) error
	Delete(key string)
}

// AddInput is one product selected from a listing.
type AddInput struct {
	Name  string
	Price decimal.Decimal
	Image string
}

// View is the cart page payload.
type View struct {
	Items  []types.CartLine `json:"items"`
	Totals Totals           `json:"totals"`
}

// Service manipulates the session-scoped cart.
type Service struct {
	now     func() time.Time
	metrics *metrics.StorefrontMetrics
}

func NewService(m *metrics.StorefrontMetrics) *Service {
	return &Service{now: time.Now, metrics: m}
}

// Items returns the cart lines in insertion order. A missing cart is empty.
func (s *Service) Items(state State) ([]types.CartLine, error) {
	var lines []types.CartLine
	if _, err := state.Get(SessionKey, &lines); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to read cart")
	}
	if lines == nil {
		lines = []types.CartLine{}
	}
	return lines, nil
}

// Add appends a line stamped with the current server time.
func (s *Service) Add(state State, in AddInput) error {
	lines, err := s.Items(state)
	if err != nil {
		return err
	}
	lines = append(lines, types.NewCartLine(in.Name, in.Price, in.Image, s.now()))
	if err := state.Set(SessionKey, lines); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to store cart")
	}
	s.metrics.IncCartMutation("add")
	return nil
}

// Remove drops the line at index, keeping the order of the rest. It reports
// false, and changes nothing, when index is out of range.
func (s *Service) Remove(state State, index int) (bool, error) {
	lines, err := s.Items(state)
	if err != nil {
		return false, err
	}
	if index < 0 || index >= len(lines) {
		return false, nil
	}
	lines = append(lines[:index], lines[index+1:]...)
	if err := state.Set(SessionKey, lines); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to store cart")
	}
	s.metrics.IncCartMutation("remove")
	return true, nil
}

func (s *Service) View(state State) (View, error) {
	lines, err := s.Items(state)
	if err != nil {
		return View{}, err
	}
	return View{Items: lines, Totals: ComputeTotals(lines)}, nil
}

// Clear empties the cart.
func (s *Service) Clear(state State) {
	state.Delete(SessionKey)
}
