package checkout

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/contentapi"
	"storefront/internal/domain"
	"storefront/internal/repository/state"
	cartsvc "storefront/internal/service/cart"
)

type stubOrderAPI struct {
	order     domain.Order
	err       error
	calls     int
	lastToken string
	lastInput contentapi.OrderInput
}

func (s *stubOrderAPI) CreateOrder(_ context.Context, token string, in contentapi.OrderInput) (domain.Order, error) {
	s.calls++
	s.lastToken = token
	s.lastInput = in
	return s.order, s.err
}

func newFixture(api *stubOrderAPI) (*Service, *cartsvc.Service) {
	carts := cartsvc.New(state.NewMemory(), nil)
	return New(api, carts, nil), carts
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	api := &stubOrderAPI{}
	svc, _ := newFixture(api)

	_, err := svc.PlaceOrder(context.Background(), "v1", "", Input{})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if api.calls != 0 {
		t.Fatalf("no order call expected for an empty cart")
	}
}

func TestPlaceOrderBuildsLinesAndClears(t *testing.T) {
	api := &stubOrderAPI{order: domain.Order{DatabaseID: 7, OrderNumber: "1007", Status: "processing"}}
	svc, carts := newFixture(api)
	ctx := context.Background()

	// "cG9zdDoxNjk=" is base64("post:169"), the relay-style id form.
	carts.AddItem(ctx, "v1", cartsvc.Candidate{ID: "cG9zdDoxNjk=", UnitPrice: 100, Quantity: 2})
	carts.AddItem(ctx, "v1", cartsvc.Candidate{ID: "42", UnitPrice: 50, Quantity: 1})

	conf, err := svc.PlaceOrder(ctx, "v1", "tok123", Input{
		FirstName: "Sara",
		Phone:     "۰۹۱۲۳۴۵۶۷۸۹",
		City:      "Tehran",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.Order.OrderNumber != "1007" || conf.Total != 250 {
		t.Fatalf("unexpected confirmation %+v", conf)
	}
	if api.lastToken != "tok123" {
		t.Fatalf("token not forwarded: %q", api.lastToken)
	}
	if api.lastInput.PaymentMethod != "cod" {
		t.Fatalf("expected cod payment, got %q", api.lastInput.PaymentMethod)
	}
	if api.lastInput.Billing.Phone != "09123456789" {
		t.Fatalf("phone digits not normalized: %q", api.lastInput.Billing.Phone)
	}

	lines := api.lastInput.LineItems
	if len(lines) != 2 || lines[0].ProductID != 169 || lines[0].Quantity != 2 || lines[1].ProductID != 42 {
		t.Fatalf("unexpected line items %+v", lines)
	}

	if snap := carts.Snapshot(ctx, "v1"); len(snap.Items) != 0 {
		t.Fatalf("cart must be cleared after success: %+v", snap.Items)
	}
}

func TestPlaceOrderFailureKeepsCart(t *testing.T) {
	api := &stubOrderAPI{err: errors.New("backend rejected")}
	svc, carts := newFixture(api)
	ctx := context.Background()

	carts.AddItem(ctx, "v1", cartsvc.Candidate{ID: "42", UnitPrice: 100})

	if _, err := svc.PlaceOrder(ctx, "v1", "", Input{}); err == nil {
		t.Fatalf("expected error")
	}
	if snap := carts.Snapshot(ctx, "v1"); len(snap.Items) != 1 {
		t.Fatalf("cart must survive a failed order: %+v", snap.Items)
	}
}

func TestDatabaseID(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"169", 169},
		{"cG9zdDoxNjk=", 169}, // post:169
		{"garbage", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := databaseID(tc.in); got != tc.want {
			t.Fatalf("databaseID(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
