package service

import (
	"context"
	"errors"

	"eyestyle"
	"eyestyle/internal/repository"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// CartService implements the per-user cart mutations. Every mutation leaves
// the server rows as the single source of truth; clients re-fetch after each
// call.
type CartService struct {
	cart     repository.Cart
	products repository.Products
}

func NewCartService(cart repository.Cart, products repository.Products) *CartService {
	return &CartService{cart: cart, products: products}
}

var _ Cart = (*CartService)(nil)

// Items returns the authoritative cart rows for the user.
func (s *CartService) Items(ctx context.Context, userID int) ([]eyestyle.CartItem, error) {
	return s.cart.ListByUser(ctx, userID)
}

// Add puts quantity units of the product into the cart, bumping an existing
// row if the product is already there.
func (s *CartService) Add(ctx context.Context, userID, productID, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrProductNotFound
	}
	return s.cart.Add(ctx, userID, productID, quantity)
}

// SetQuantity sets the absolute quantity on a cart row. A quantity of zero
// or less removes the row, so the end state matches a direct Remove.
func (s *CartService) SetQuantity(ctx context.Context, userID, cartID, quantity int) error {
	if quantity <= 0 {
		return s.cart.Remove(ctx, userID, cartID)
	}
	return s.cart.UpdateQuantity(ctx, userID, cartID, quantity)
}

// Remove deletes one cart row.
func (s *CartService) Remove(ctx context.Context, userID, cartID int) error {
	return s.cart.Remove(ctx, userID, cartID)
}

// BadgeCount is the sum of quantities across the user's cart rows.
func (s *CartService) BadgeCount(ctx context.Context, userID int) (int, error) {
	items, err := s.cart.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return count, nil
}
