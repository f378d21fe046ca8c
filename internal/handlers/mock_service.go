package handlers

import (
	"context"
	"errors"
	"net/url"

	"eyestyle"
	"eyestyle/internal/service"
	"eyestyle/internal/session"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

// errTestStorage stands in for an unexpected storage fault.
var errTestStorage = errors.New("disk exploded")

type mockAuth struct {
	loginToken  string
	loginErr    error
	registerID  int
	registerErr error
	authSession session.Session
	authErr     error
	logoutErr   error

	lastLoginUsername string
	lastLoginPassword string
	loginCalls        int
	authenticateCalls int
}

func (m *mockAuth) Register(ctx context.Context, username, password string) (int, error) {
	return m.registerID, m.registerErr
}

func (m *mockAuth) Login(ctx context.Context, username, password string) (string, error) {
	m.loginCalls++
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginToken, m.loginErr
}

func (m *mockAuth) Authenticate(ctx context.Context, token string) (session.Session, error) {
	m.authenticateCalls++
	return m.authSession, m.authErr
}

func (m *mockAuth) Logout(ctx context.Context, token string) error {
	return m.logoutErr
}

type mockCatalog struct {
	products []eyestyle.Product
	err      error

	lastCategory string
}

func (m *mockCatalog) Products(ctx context.Context, category string) ([]eyestyle.Product, error) {
	m.lastCategory = category
	return m.products, m.err
}

type mockCart struct {
	items []eyestyle.CartItem
	err   error

	addCalls []struct{ userID, productID, quantity int }
	setCalls []struct{ userID, cartID, quantity int }
	rmCalls  []struct{ userID, cartID int }
}

func (m *mockCart) Items(ctx context.Context, userID int) ([]eyestyle.CartItem, error) {
	return m.items, m.err
}

func (m *mockCart) Add(ctx context.Context, userID, productID, quantity int) error {
	m.addCalls = append(m.addCalls, struct{ userID, productID, quantity int }{userID, productID, quantity})
	return m.err
}

func (m *mockCart) SetQuantity(ctx context.Context, userID, cartID, quantity int) error {
	m.setCalls = append(m.setCalls, struct{ userID, cartID, quantity int }{userID, cartID, quantity})
	return m.err
}

func (m *mockCart) Remove(ctx context.Context, userID, cartID int) error {
	m.rmCalls = append(m.rmCalls, struct{ userID, cartID int }{userID, cartID})
	return m.err
}

func (m *mockCart) BadgeCount(ctx context.Context, userID int) (int, error) {
	count := 0
	for _, it := range m.items {
		count += it.Quantity
	}
	return count, m.err
}

type mockOrders struct {
	order eyestyle.Order
	err   error

	checkoutCalls []struct{ address, method string }
}

func (m *mockOrders) Checkout(ctx context.Context, userID int, shippingAddress, paymentMethod string) (eyestyle.Order, error) {
	m.checkoutCalls = append(m.checkoutCalls, struct{ address, method string }{shippingAddress, paymentMethod})
	return m.order, m.err
}

type mockContact struct {
	err error

	submitted []eyestyle.ContactMessage
}

func (m *mockContact) Submit(ctx context.Context, msg eyestyle.ContactMessage) error {
	m.submitted = append(m.submitted, msg)
	return m.err
}

// newTestRouter wires a router with the given service mocks and no logger.
func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}

// formBody encodes form fields the way the storefront client submits them.
func formBody(fields map[string]string) string {
	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}
	return form.Encode()
}
