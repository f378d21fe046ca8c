package repository

import (
	"context"
	"database/sql"

	"eyestyle"
	"eyestyle/internal/repository/db"
)

type Users interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*eyestyle.User, error)
}

type Products interface {
	List(ctx context.Context, category string) ([]eyestyle.Product, error)
	GetByID(ctx context.Context, id int) (*eyestyle.Product, error)
}

// Cart rows are always scoped to a user id so one session cannot touch
// another user's cart.
type Cart interface {
	ListByUser(ctx context.Context, userID int) ([]eyestyle.CartItem, error)
	Add(ctx context.Context, userID, productID, quantity int) error
	UpdateQuantity(ctx context.Context, userID, cartID, quantity int) error
	Remove(ctx context.Context, userID, cartID int) error
	Clear(ctx context.Context, userID int) error
}

type Orders interface {
	Create(ctx context.Context, order eyestyle.Order, lines []eyestyle.OrderLine) (int, error)
}

type Contact interface {
	Save(ctx context.Context, msg eyestyle.ContactMessage) (int, error)
}

type Repository struct {
	Users    Users
	Products Products
	Cart     Cart
	Orders   Orders
	Contact  Contact
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserRepository(sqlDB),
		Products: NewProductRepository(sqlDB),
		Cart:     NewCartRepository(sqlDB),
		Orders:   NewOrderRepository(sqlDB),
		Contact:  NewContactRepository(sqlDB),
	}
}

// InitDB opens the SQLite database and applies the schema.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
