package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/session"
)

var fixedNow = time.Date(2025, 3, 3, 15, 4, 5, 0, time.UTC)

type failingStore struct {
	Store
	err error
}

func (f failingStore) Place(context.Context, *models.Checkout, *models.Order) error {
	return f.err
}

func newSQLService(t *testing.T) (*Service, *db.Client) {
	t.Helper()
	client := dbtest.NewSQLite(t)
	svc, err := NewService(ServiceParams{
		Checkouts: NewRepository(client),
		Orders:    orders.NewRepository(client.DB()),
		Cart:      cart.NewService(nil),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.now = func() time.Time { return fixedNow }
	return svc, client
}

func stateWithCart(t *testing.T, svc *Service, prices ...int64) *session.Session {
	t.Helper()
	state := session.Wrap(sessions.NewSession(nil, "test"))
	for i, price := range prices {
		in := cart.AddInput{Name: []string{"Luxury Perfume", "Stylish Sunglasses", "Desk Lamp"}[i%3], Price: decimal.NewFromInt(price), Image: "img.jpeg"}
		if err := svc.cart.Add(state, in); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	return state
}

func validForm() Form {
	return Form{
		DeliveryOption: "standard",
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Address:        "1 Analytical Way",
		Email:          "ada@example.com",
		Phone:          "555-0100",
		PaymentMethod:  "card",
	}
}

func countRows(t *testing.T, client *db.Client, model any) int64 {
	t.Helper()
	var count int64
	if err := client.DB().Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}

func TestSubmitRecordsFreeTextFields(t *testing.T) {
	svc, client := newSQLService(t)
	state := stateWithCart(t, svc, 599)

	form := Form{Email: "not-an-email", FirstName: " Ada "}
	record, err := svc.Submit(context.Background(), state, form)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := countRows(t, client, &models.Checkout{}); got != 1 {
		t.Fatalf("expected 1 checkout, got %d", got)
	}
	if got := countRows(t, client, &models.Order{}); got != 1 {
		t.Fatalf("expected 1 order, got %d", got)
	}
	if record.Email != "not-an-email" || record.FirstName != " Ada " || record.Phone != "" {
		t.Fatalf("expected fields recorded as submitted, got %+v", record)
	}
}

func TestPrepare(t *testing.T) {
	svc, _ := newSQLService(t)
	state := stateWithCart(t, svc, 1999, 799)

	summary, err := svc.Prepare(state)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if len(summary.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(summary.Items))
	}
	if summary.Totals.Total.StringFixed(2) != "2806.00" {
		t.Fatalf("unexpected total %s", summary.Totals.Total.StringFixed(2))
	}
	if summary.DeliveryDate != "Thu, Mar 06" {
		t.Fatalf("unexpected delivery date %q", summary.DeliveryDate)
	}
}

func TestPrepareEmptyCart(t *testing.T) {
	svc, _ := newSQLService(t)
	if _, err := svc.Prepare(session.Wrap(sessions.NewSession(nil, "test"))); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestSubmitRecordsCheckoutAndOrder(t *testing.T) {
	svc, client := newSQLService(t)
	state := stateWithCart(t, svc, 1999, 799)

	record, err := svc.Submit(context.Background(), state, validForm())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if got := countRows(t, client, &models.Checkout{}); got != 1 {
		t.Fatalf("expected 1 checkout, got %d", got)
	}
	if got := countRows(t, client, &models.Order{}); got != 1 {
		t.Fatalf("expected 1 order, got %d", got)
	}
	lines, _ := svc.cart.Items(state)
	if len(lines) != 0 {
		t.Fatalf("expected cart emptied, got %d lines", len(lines))
	}

	confirmation, err := svc.Confirmation(context.Background(), record.ID.String())
	if err != nil {
		t.Fatalf("confirmation: %v", err)
	}
	stored := confirmation.Checkout
	if stored.Status != enums.CheckoutStatusProcessing || stored.Email != "ada@example.com" {
		t.Fatalf("unexpected checkout %+v", stored)
	}
	if len(stored.Cart) != 2 || stored.Cart[0].Name != "Luxury Perfume" {
		t.Fatalf("unexpected cart snapshot %+v", stored.Cart)
	}
	if stored.Subtotal.StringFixed(2) != "2798.00" || stored.Shipping.StringFixed(2) != "8.00" ||
		stored.Tax.StringFixed(2) != "0.00" || stored.Total.StringFixed(2) != "2806.00" {
		t.Fatalf("unexpected amounts %s %s %s %s", stored.Subtotal, stored.Shipping, stored.Tax, stored.Total)
	}
	if confirmation.Order == nil {
		t.Fatal("expected order on confirmation")
	}
	if confirmation.Order.OrderID != record.ID || confirmation.Order.Items != 2 ||
		confirmation.Order.Status != enums.OrderStatusConfirmed || !confirmation.Order.OrderDate.Equal(fixedNow) {
		t.Fatalf("unexpected order %+v", confirmation.Order)
	}
}

func TestSubmitEmptyCartCreatesNothing(t *testing.T) {
	svc, client := newSQLService(t)

	_, err := svc.Submit(context.Background(), session.Wrap(sessions.NewSession(nil, "test")), validForm())
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if got := countRows(t, client, &models.Checkout{}); got != 0 {
		t.Fatalf("expected no checkouts, got %d", got)
	}
	if got := countRows(t, client, &models.Order{}); got != 0 {
		t.Fatalf("expected no orders, got %d", got)
	}
}

func TestSubmitFailureKeepsCart(t *testing.T) {
	svc, _ := newSQLService(t)
	svc.checkouts = failingStore{Store: svc.checkouts, err: errors.New("disk full")}
	state := stateWithCart(t, svc, 1999)

	_, err := svc.Submit(context.Background(), state, validForm())
	if pkgerrors.CodeOf(err) != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
	lines, _ := svc.cart.Items(state)
	if len(lines) != 1 {
		t.Fatalf("expected cart kept, got %d lines", len(lines))
	}
}

func TestSubmitRollsBackCheckoutWhenOrderFails(t *testing.T) {
	svc, client := newSQLService(t)
	if err := client.DB().Migrator().DropTable(&models.Order{}); err != nil {
		t.Fatalf("drop orders: %v", err)
	}
	state := stateWithCart(t, svc, 1999)

	if _, err := svc.Submit(context.Background(), state, validForm()); err == nil {
		t.Fatal("expected error when order write fails")
	}
	if got := countRows(t, client, &models.Checkout{}); got != 0 {
		t.Fatalf("expected checkout rolled back, got %d", got)
	}
	lines, _ := svc.cart.Items(state)
	if len(lines) != 1 {
		t.Fatalf("expected cart kept, got %d lines", len(lines))
	}
}

func TestConfirmationNotFound(t *testing.T) {
	svc, _ := newSQLService(t)
	for _, raw := range []string{"", "not-a-uuid", uuid.NewString()} {
		if _, err := svc.Confirmation(context.Background(), raw); !errors.Is(err, ErrCheckoutNotFound) {
			t.Fatalf("id %q: expected ErrCheckoutNotFound, got %v", raw, err)
		}
	}
}

func TestNewServiceRequiresCollaborators(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected error for missing collaborators")
	}
}
