package service

import (
	"context"
	"time"

	"eyestyle"
	"eyestyle/internal/repository"
	"eyestyle/internal/session"
)

// Authorization covers registration, credential checks and the session
// lifecycle behind the login cookie.
type Authorization interface {
	Register(ctx context.Context, username, password string) (int, error)
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(ctx context.Context, token string) (session.Session, error)
	Logout(ctx context.Context, token string) error
}

// Catalog exposes read-only product listings.
type Catalog interface {
	Products(ctx context.Context, category string) ([]eyestyle.Product, error)
}

// Cart exposes the per-user cart operations behind the storefront API.
type Cart interface {
	Items(ctx context.Context, userID int) ([]eyestyle.CartItem, error)
	Add(ctx context.Context, userID, productID, quantity int) error
	SetQuantity(ctx context.Context, userID, cartID, quantity int) error
	Remove(ctx context.Context, userID, cartID int) error
	BadgeCount(ctx context.Context, userID int) (int, error)
}

// Orders turns the current cart into a persisted order.
type Orders interface {
	Checkout(ctx context.Context, userID int, shippingAddress, paymentMethod string) (eyestyle.Order, error)
}

// Contact stores contact-form submissions.
type Contact interface {
	Submit(ctx context.Context, msg eyestyle.ContactMessage) error
}

type Service struct {
	Authorization
	Catalog
	Cart
	Orders
	Contact
}

// AuthConfig carries the auth knobs loaded from config.
type AuthConfig struct {
	SigningKey string
	SessionTTL time.Duration
}

// NewService wires the repository layer and session store into concrete
// services.
func NewService(repos *repository.Repository, sessions session.Store, authCfg AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, sessions, authCfg),
		Catalog:       NewCatalogService(repos.Products),
		Cart:          NewCartService(repos.Cart, repos.Products),
		Orders:        NewOrderService(repos.Orders, repos.Cart),
		Contact:       NewContactService(repos.Contact),
	}
}
