package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

func TestAddCartItem(t *testing.T) {
	d := newTestDeps()
	d.cart.snapshot = cartsvc.Snapshot{
		Items: []domain.CartItem{{ID: "42", Name: "Filter", UnitPrice: 1000, Quantity: 2}},
		Total: 2000,
	}
	router := newTestRouter(t, d)

	body := `{"id":"42","name":"Filter","unitPrice":1000,"quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if len(d.cart.added) != 1 || d.cart.added[0].ID != "42" || d.cart.added[0].Quantity != 2 {
		t.Fatalf("unexpected candidate: %+v", d.cart.added)
	}
	if d.cart.toggles != 0 {
		t.Fatalf("expected no toggle without openCart")
	}
	if !strings.Contains(rec.Body.String(), `"total":2000`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAddCartItem_OpenCart(t *testing.T) {
	d := newTestDeps()
	router := newTestRouter(t, d)

	body := `{"id":"42","openCart":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if d.cart.toggles != 1 {
		t.Fatalf("expected toggle after add, got %d", d.cart.toggles)
	}
}

func TestAddCartItem_MissingID(t *testing.T) {
	d := newTestDeps()
	router := newTestRouter(t, d)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(`{"name":"Filter"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(d.cart.added) != 0 {
		t.Fatalf("expected no add on invalid request")
	}
}

func TestUpdateCartItem(t *testing.T) {
	d := newTestDeps()
	router := newTestRouter(t, d)

	req := httptest.NewRequest(http.MethodPatch, "/api/cart/items/42", strings.NewReader(`{"quantity":0}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if d.cart.updatedID != "42" || d.cart.updatedQ != 0 {
		t.Fatalf("expected quantity 0 for item 42, got %q %d", d.cart.updatedID, d.cart.updatedQ)
	}
}

func TestUpdateCartItem_MissingQuantity(t *testing.T) {
	d := newTestDeps()
	router := newTestRouter(t, d)

	req := httptest.NewRequest(http.MethodPatch, "/api/cart/items/42", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRemoveCartItem(t *testing.T) {
	d := newTestDeps()
	router := newTestRouter(t, d)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/items/42", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if d.cart.removedID != "42" {
		t.Fatalf("expected remove of item 42, got %q", d.cart.removedID)
	}
}

func TestToggleCart(t *testing.T) {
	d := newTestDeps()
	router := newTestRouter(t, d)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/toggle", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if d.cart.toggles != 1 {
		t.Fatalf("expected one toggle, got %d", d.cart.toggles)
	}
}
