package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eyestyle"
	"eyestyle/internal/service"
	"eyestyle/internal/session"
)

func doForm(r http.Handler, method, target string, fields map[string]string, cookie string) *httptest.ResponseRecorder {
	var body *strings.Reader
	if fields != nil {
		body = strings.NewReader(formBody(fields))
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if fields != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDispatch_UnknownAction(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := doForm(r, http.MethodGet, "/api?action=nope", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["error"] != errUnknownAction {
		t.Fatalf("expected unknown action error, got %v", m)
	}
}

func TestAPILogin(t *testing.T) {
	t.Run("success sets cookie", func(t *testing.T) {
		auth := &mockAuth{loginToken: "tok123", authErr: service.ErrInvalidSession}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doForm(r, http.MethodPost, "/api?action=login", map[string]string{
			"username": "alice", "password": "s3cr3t",
		}, "")
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		var res apiResult
		_ = json.Unmarshal(w.Body.Bytes(), &res)
		if !res.Success {
			t.Fatalf("expected success, got %+v", res)
		}
		if auth.lastLoginUsername != "alice" || auth.lastLoginPassword != "s3cr3t" {
			t.Fatalf("credentials not forwarded: %q/%q", auth.lastLoginUsername, auth.lastLoginPassword)
		}
		found := false
		for _, c := range w.Result().Cookies() {
			if c.Name == sessionCookieName && c.Value == "tok123" {
				found = true
			}
		}
		if !found {
			t.Fatal("expected session cookie to be set")
		}
	})

	t.Run("invalid credentials use the one generic message", func(t *testing.T) {
		auth := &mockAuth{loginErr: service.ErrInvalidCredentials}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doForm(r, http.MethodPost, "/api?action=login", map[string]string{
			"username": "alice", "password": "bad",
		}, "")
		var res apiResult
		_ = json.Unmarshal(w.Body.Bytes(), &res)
		if res.Success {
			t.Fatal("expected failure")
		}
		if res.Message != msgInvalidCredentials {
			t.Fatalf("expected %q, got %q", msgInvalidCredentials, res.Message)
		}
	})

	t.Run("storage fault yields generic error only", func(t *testing.T) {
		auth := &mockAuth{loginErr: errTestStorage}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doForm(r, http.MethodPost, "/api?action=login", map[string]string{
			"username": "alice", "password": "pw",
		}, "")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		if strings.Contains(w.Body.String(), "disk exploded") {
			t.Fatalf("storage diagnostic leaked to the user: %s", w.Body.String())
		}
		var m map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &m)
		if m["error"] != errDatabase {
			t.Fatalf("expected generic database error, got %v", m)
		}
	})
}

func TestAPIProducts(t *testing.T) {
	catalog := &mockCatalog{products: []eyestyle.Product{
		{ID: 1, Name: "Aviator", Price: 1200, StockQuantity: 9},
	}}
	r := newTestRouter(&service.Service{Catalog: catalog})

	w := doForm(r, http.MethodGet, "/api?action=products&category=sunglasses", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if catalog.lastCategory != "sunglasses" {
		t.Fatalf("category not forwarded, got %q", catalog.lastCategory)
	}
	var products []eyestyle.Product
	if err := json.Unmarshal(w.Body.Bytes(), &products); err != nil {
		t.Fatalf("response is not a product array: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Aviator" {
		t.Fatalf("unexpected products: %+v", products)
	}
}

func TestAPIProducts_EmptyCatalogIsAnArray(t *testing.T) {
	catalog := &mockCatalog{products: []eyestyle.Product{}}
	r := newTestRouter(&service.Service{Catalog: catalog})

	w := doForm(r, http.MethodGet, "/api?action=products", nil, "")
	// Empty-but-valid must stay distinguishable from malformed: the body
	// is the empty JSON array, never null or an object.
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Fatalf("expected [], got %q", body)
	}
}

func TestAPICart_RequiresSession(t *testing.T) {
	auth := &mockAuth{authErr: service.ErrInvalidSession}
	cart := &mockCart{}
	r := newTestRouter(&service.Service{Authorization: auth, Cart: cart})

	for _, tc := range []struct {
		action string
		method string
	}{
		{"get_cart", http.MethodGet},
		{"add_to_cart", http.MethodPost},
		{"update_cart", http.MethodPost},
		{"remove_from_cart", http.MethodPost},
		{"create_order", http.MethodPost},
	} {
		w := doForm(r, tc.method, "/api?action="+tc.action, map[string]string{}, "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", tc.action, w.Code)
		}
		var m map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &m)
		if m["error"] != errAuthRequired {
			t.Fatalf("%s: expected auth error field, got %v", tc.action, m)
		}
	}
	if len(cart.addCalls)+len(cart.setCalls)+len(cart.rmCalls) != 0 {
		t.Fatal("cart service must not be reached without a session")
	}
}

func authedService(cart *mockCart, orders *mockOrders) *service.Service {
	return &service.Service{
		Authorization: &mockAuth{authSession: session.Session{ID: "s1", UserID: 5, Username: "alice"}},
		Cart:          cart,
		Orders:        orders,
	}
}

func TestAPIGetCart(t *testing.T) {
	cart := &mockCart{items: []eyestyle.CartItem{
		{ID: 1, ProductID: 10, Name: "Aviator", Price: 1200, Quantity: 2, TotalPrice: 2400},
	}}
	r := newTestRouter(authedService(cart, nil))

	w := doForm(r, http.MethodGet, "/api?action=get_cart", nil, "tok")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var items []eyestyle.CartItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("response is not a cart array: %v", err)
	}
	if len(items) != 1 || items[0].ID != 1 {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestAPIAddToCart(t *testing.T) {
	cart := &mockCart{}
	r := newTestRouter(authedService(cart, nil))

	w := doForm(r, http.MethodPost, "/api?action=add_to_cart", map[string]string{
		"product_id": "10", "quantity": "2",
	}, "tok")
	var res apiResult
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if !res.Success {
		t.Fatalf("expected success, got %+v (%s)", res, w.Body.String())
	}
	if len(cart.addCalls) != 1 || cart.addCalls[0].userID != 5 || cart.addCalls[0].productID != 10 || cart.addCalls[0].quantity != 2 {
		t.Fatalf("unexpected add calls: %v", cart.addCalls)
	}
}

func TestAPIAddToCart_DefaultQuantity(t *testing.T) {
	cart := &mockCart{}
	r := newTestRouter(authedService(cart, nil))

	doForm(r, http.MethodPost, "/api?action=add_to_cart", map[string]string{
		"product_id": "10",
	}, "tok")
	if len(cart.addCalls) != 1 || cart.addCalls[0].quantity != 1 {
		t.Fatalf("expected default quantity 1, got %v", cart.addCalls)
	}
}

func TestAPIUpdateCart(t *testing.T) {
	cart := &mockCart{}
	r := newTestRouter(authedService(cart, nil))

	w := doForm(r, http.MethodPost, "/api?action=update_cart", map[string]string{
		"cart_id": "9", "quantity": "3",
	}, "tok")
	var res apiResult
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if !res.Success {
		t.Fatalf("expected success, got %s", w.Body.String())
	}
	if len(cart.setCalls) != 1 || cart.setCalls[0].cartID != 9 || cart.setCalls[0].quantity != 3 {
		t.Fatalf("unexpected set calls: %v", cart.setCalls)
	}
}

func TestAPIRemoveFromCart(t *testing.T) {
	cart := &mockCart{}
	r := newTestRouter(authedService(cart, nil))

	w := doForm(r, http.MethodPost, "/api?action=remove_from_cart", map[string]string{
		"cart_id": "9",
	}, "tok")
	var res apiResult
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if !res.Success {
		t.Fatalf("expected success, got %s", w.Body.String())
	}
	if len(cart.rmCalls) != 1 || cart.rmCalls[0].cartID != 9 {
		t.Fatalf("unexpected remove calls: %v", cart.rmCalls)
	}
}

func TestAPICreateOrder(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		orders := &mockOrders{order: eyestyle.Order{ID: 101, OrderNumber: "ord-1", Total: 2400}}
		r := newTestRouter(authedService(&mockCart{}, orders))

		w := doForm(r, http.MethodPost, "/api?action=create_order", map[string]string{
			"shipping_address": "12 High St", "payment_method": "card",
		}, "tok")
		var res apiResult
		_ = json.Unmarshal(w.Body.Bytes(), &res)
		if !res.Success || res.Message != msgOrderPlaced {
			t.Fatalf("unexpected result: %s", w.Body.String())
		}
		if len(orders.checkoutCalls) != 1 || orders.checkoutCalls[0].address != "12 High St" {
			t.Fatalf("unexpected checkout calls: %v", orders.checkoutCalls)
		}
	})

	t.Run("empty cart", func(t *testing.T) {
		orders := &mockOrders{err: service.ErrEmptyCart}
		r := newTestRouter(authedService(&mockCart{}, orders))

		w := doForm(r, http.MethodPost, "/api?action=create_order", map[string]string{
			"shipping_address": "12 High St",
		}, "tok")
		var res apiResult
		_ = json.Unmarshal(w.Body.Bytes(), &res)
		if res.Success || res.Message != "Your cart is empty" {
			t.Fatalf("unexpected result: %s", w.Body.String())
		}
	})
}

func TestContactForm(t *testing.T) {
	contact := &mockContact{}
	r := newTestRouter(&service.Service{Contact: contact})

	w := doForm(r, http.MethodPost, "/contact", map[string]string{
		"name": "Alice", "email": "alice@example.com", "message": "Hi there",
	}, "")
	var res apiResult
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if !res.Success {
		t.Fatalf("expected success, got %s", w.Body.String())
	}
	if len(contact.submitted) != 1 || contact.submitted[0].Email != "alice@example.com" {
		t.Fatalf("unexpected submissions: %+v", contact.submitted)
	}
}
