package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eyestyle"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

var _ Products = (*ProductRepository)(nil)

const (
	selectProductsSQL = `
		SELECT id, name, description, price, stock_quantity, image_url, category
		FROM products ORDER BY id
	`
	selectProductsByCategorySQL = `
		SELECT id, name, description, price, stock_quantity, image_url, category
		FROM products WHERE category = ? ORDER BY id
	`
	selectProductByIDSQL = `
		SELECT id, name, description, price, stock_quantity, image_url, category
		FROM products WHERE id = ?
	`
)

// List returns the catalog, optionally filtered by category.
// The result is never nil: an empty catalog is an empty slice, so callers
// always serialize it as a JSON array.
func (r *ProductRepository) List(ctx context.Context, category string) ([]eyestyle.Product, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if category == "" {
		rows, err = r.db.QueryContext(ctx, selectProductsSQL)
	} else {
		rows, err = r.db.QueryContext(ctx, selectProductsByCategorySQL, category)
	}
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	products := make([]eyestyle.Product, 0)
	for rows.Next() {
		var p eyestyle.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity, &p.ImageURL, &p.Category); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return products, nil
}

// GetByID fetches one product. Returns (nil, nil) if not found.
func (r *ProductRepository) GetByID(ctx context.Context, id int) (*eyestyle.Product, error) {
	var p eyestyle.Product
	err := r.db.QueryRowContext(ctx, selectProductByIDSQL, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity, &p.ImageURL, &p.Category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select product %d: %w", id, err)
	}
	return &p, nil
}
