package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"eyestyle"
	"eyestyle/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrMissingAddress = errors.New("shipping address is required")
)

const defaultPaymentMethod = "card"

// OrderService freezes the current cart into an order.
type OrderService struct {
	orders repository.Orders
	cart   repository.Cart
	now    func() time.Time
}

func NewOrderService(orders repository.Orders, cart repository.Cart) *OrderService {
	return &OrderService{orders: orders, cart: cart, now: time.Now}
}

var _ Orders = (*OrderService)(nil)

// Checkout reads the authoritative cart, refuses if it is empty or the
// address is blank, and persists order + lines while clearing the cart.
func (s *OrderService) Checkout(ctx context.Context, userID int, shippingAddress, paymentMethod string) (eyestyle.Order, error) {
	shippingAddress = strings.TrimSpace(shippingAddress)
	if shippingAddress == "" {
		return eyestyle.Order{}, ErrMissingAddress
	}
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}

	items, err := s.cart.ListByUser(ctx, userID)
	if err != nil {
		return eyestyle.Order{}, err
	}
	if len(items) == 0 {
		return eyestyle.Order{}, ErrEmptyCart
	}

	var total float64
	lines := make([]eyestyle.OrderLine, 0, len(items))
	for _, it := range items {
		total += it.TotalPrice
		lines = append(lines, eyestyle.OrderLine{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}

	order := eyestyle.Order{
		OrderNumber:     uuid.NewString(),
		UserID:          userID,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		Total:           total,
		CreatedAt:       s.now().UTC(),
	}
	id, err := s.orders.Create(ctx, order, lines)
	if err != nil {
		return eyestyle.Order{}, err
	}
	order.ID = id
	return order, nil
}
