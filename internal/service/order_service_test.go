package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"eyestyle"
)

type mockOrderRepo struct {
	created []struct {
		order eyestyle.Order
		lines []eyestyle.OrderLine
	}
	createErr error
}

func (m *mockOrderRepo) Create(ctx context.Context, order eyestyle.Order, lines []eyestyle.OrderLine) (int, error) {
	m.created = append(m.created, struct {
		order eyestyle.Order
		lines []eyestyle.OrderLine
	}{order, lines})
	if m.createErr != nil {
		return 0, m.createErr
	}
	return 101, nil
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	orders := &mockOrderRepo{}
	svc := NewOrderService(orders, &mockCartRepo{})

	_, err := svc.Checkout(context.Background(), 5, "12 High St", "card")
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if len(orders.created) != 0 {
		t.Fatal("no order must be created for an empty cart")
	}
}

func TestOrderService_Checkout_MissingAddress(t *testing.T) {
	orders := &mockOrderRepo{}
	cart := &mockCartRepo{items: []eyestyle.CartItem{{ID: 1, ProductID: 10, Quantity: 1, Price: 900, TotalPrice: 900}}}
	svc := NewOrderService(orders, cart)

	for _, addr := range []string{"", "   "} {
		if _, err := svc.Checkout(context.Background(), 5, addr, "card"); !errors.Is(err, ErrMissingAddress) {
			t.Fatalf("address %q: expected ErrMissingAddress, got %v", addr, err)
		}
	}
	if len(orders.created) != 0 {
		t.Fatal("no order must be created without an address")
	}
}

func TestOrderService_Checkout_Success(t *testing.T) {
	orders := &mockOrderRepo{}
	cart := &mockCartRepo{items: []eyestyle.CartItem{
		{ID: 1, ProductID: 10, Name: "Aviator", Price: 1200, Quantity: 2, TotalPrice: 2400},
		{ID: 2, ProductID: 11, Name: "Wayfarer", Price: 900.50, Quantity: 1, TotalPrice: 900.50},
	}}
	svc := NewOrderService(orders, cart)

	order, err := svc.Checkout(context.Background(), 5, "12 High St", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != 101 {
		t.Fatalf("expected order id 101, got %d", order.ID)
	}
	if order.OrderNumber == "" {
		t.Fatal("expected a generated order number")
	}
	if order.PaymentMethod != "card" {
		t.Fatalf("expected default payment method card, got %q", order.PaymentMethod)
	}
	if math.Abs(order.Total-3300.50) > 1e-9 {
		t.Fatalf("expected total 3300.50, got %v", order.Total)
	}

	created := orders.created[0]
	if len(created.lines) != 2 {
		t.Fatalf("expected 2 order lines, got %d", len(created.lines))
	}
	if created.lines[0].ProductID != 10 || created.lines[0].Quantity != 2 {
		t.Fatalf("unexpected first line: %+v", created.lines[0])
	}
}
