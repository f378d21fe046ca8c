package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"eyestyle"
)

type CartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

var _ Cart = (*CartRepository)(nil)

const (
	// total_price is computed at read time so price changes in the catalog
	// are always reflected on the next resync.
	selectCartByUserSQL = `
		SELECT c.id, c.product_id, p.name, p.price, c.quantity, p.price * c.quantity, p.image_url
		FROM cart_items c JOIN products p ON p.id = c.product_id
		WHERE c.user_id = ? ORDER BY c.id
	`
	upsertCartItemSQL = `
		INSERT INTO cart_items (user_id, product_id, quantity, added_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, product_id) DO UPDATE SET
			quantity = quantity + excluded.quantity,
			added_at = excluded.added_at
	`
	updateCartQuantitySQL = `UPDATE cart_items SET quantity = ? WHERE id = ? AND user_id = ?`
	deleteCartItemSQL     = `DELETE FROM cart_items WHERE id = ? AND user_id = ?`
	clearCartSQL          = `DELETE FROM cart_items WHERE user_id = ?`
)

// ErrCartRowNotFound is returned when a cart row id does not exist for the
// given user.
var ErrCartRowNotFound = fmt.Errorf("cart row not found")

// ListByUser returns the user's cart rows joined with product data.
// The result is never nil: an empty cart is an empty slice.
func (r *CartRepository) ListByUser(ctx context.Context, userID int) ([]eyestyle.CartItem, error) {
	rows, err := r.db.QueryContext(ctx, selectCartByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select cart for user %d: %w", userID, err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]eyestyle.CartItem, 0)
	for rows.Next() {
		var it eyestyle.CartItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Name, &it.Price, &it.Quantity, &it.TotalPrice, &it.ImageURL); err != nil {
			return nil, fmt.Errorf("scan cart row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart rows: %w", err)
	}
	return items, nil
}

// Add inserts a cart row, or bumps the quantity if the user already has the
// product in the cart.
func (r *CartRepository) Add(ctx context.Context, userID, productID, quantity int) error {
	if _, err := r.db.ExecContext(ctx, upsertCartItemSQL, userID, productID, quantity, time.Now().UTC()); err != nil {
		return fmt.Errorf("add product %d to cart of user %d: %w", productID, userID, err)
	}
	return nil
}

// UpdateQuantity sets the absolute quantity on one cart row.
func (r *CartRepository) UpdateQuantity(ctx context.Context, userID, cartID, quantity int) error {
	res, err := r.db.ExecContext(ctx, updateCartQuantitySQL, quantity, cartID, userID)
	if err != nil {
		return fmt.Errorf("update cart row %d: %w", cartID, err)
	}
	return requireRowAffected(res, cartID)
}

// Remove deletes one cart row owned by the user.
func (r *CartRepository) Remove(ctx context.Context, userID, cartID int) error {
	res, err := r.db.ExecContext(ctx, deleteCartItemSQL, cartID, userID)
	if err != nil {
		return fmt.Errorf("delete cart row %d: %w", cartID, err)
	}
	return requireRowAffected(res, cartID)
}

// Clear removes every cart row of the user.
func (r *CartRepository) Clear(ctx context.Context, userID int) error {
	if _, err := r.db.ExecContext(ctx, clearCartSQL, userID); err != nil {
		return fmt.Errorf("clear cart of user %d: %w", userID, err)
	}
	return nil
}

func requireRowAffected(res sql.Result, cartID int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for cart row %d: %w", cartID, err)
	}
	if n == 0 {
		return fmt.Errorf("cart row %d: %w", cartID, ErrCartRowNotFound)
	}
	return nil
}
