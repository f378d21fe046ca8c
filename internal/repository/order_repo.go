package repository

import (
	"context"
	"database/sql"
	"fmt"

	"eyestyle"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

var _ Orders = (*OrderRepository)(nil)

const (
	insertOrderSQL = `
		INSERT INTO orders (order_number, user_id, shipping_address, payment_method, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	insertOrderLineSQL = `
		INSERT INTO order_lines (order_id, product_id, name, price, quantity)
		VALUES (?, ?, ?, ?, ?)
	`
)

// Create writes the order header and its lines and empties the user's cart,
// all in one transaction.
func (r *OrderRepository) Create(ctx context.Context, order eyestyle.Order, lines []eyestyle.OrderLine) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin order transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, insertOrderSQL,
		order.OrderNumber, order.UserID, order.ShippingAddress, order.PaymentMethod, order.Total, order.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert order %q: %w", order.OrderNumber, err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get order id for %q: %w", order.OrderNumber, err)
	}

	for _, line := range lines {
		if _, err := tx.ExecContext(ctx, insertOrderLineSQL,
			orderID, line.ProductID, line.Name, line.Price, line.Quantity); err != nil {
			return 0, fmt.Errorf("insert order line for product %d: %w", line.ProductID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, clearCartSQL, order.UserID); err != nil {
		return 0, fmt.Errorf("clear cart after order %q: %w", order.OrderNumber, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit order %q: %w", order.OrderNumber, err)
	}
	return int(orderID), nil
}
