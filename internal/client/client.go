// Package client implements the storefront browser controller: a local
// mirror of the server-held cart, product/cart rendering, and the
// form-encoded calls to the storefront API. The mirror is never the source
// of truth; every mutation is followed by a full reload from the server.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"eyestyle"
	"eyestyle/internal/logger"
)

// The one user-facing transport error. Offline, malformed payload and
// server faults all collapse into it; nothing is retried.
const msgNetworkError = "Network error. Please try again."

// Flag keys persisted in the local flag store. Advisory UI state only — the
// server verifies the session cookie on every call regardless.
const (
	flagLoggedIn = "isLoggedIn"
	flagUsername = "username"
)

var (
	errAppFailure      = errors.New("api reported an error")
	errNotAnArray      = errors.New("expected a JSON array")
	errNoCheckout      = errors.New("no checkout in progress")
	errIndexOutOfRange = errors.New("cart index out of range")
)

// apiResult is the {success, message} envelope mutation actions resolve to.
type apiResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Client is one storefront controller instance. It is constructed
// explicitly at startup; there is no package-level singleton.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
	notify  Notifier
	flags   FlagStore
	sink    Sink

	mu              sync.Mutex
	cart            []eyestyle.CartItem
	awaitingAddress bool

	// gen is bumped by every operation that will apply a cart response, so
	// a response belonging to a superseded request is discarded instead of
	// overwriting newer state.
	gen uint64
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }
func WithNotifier(n Notifier) Option        { return func(c *Client) { c.notify = n } }
func WithFlagStore(f FlagStore) Option      { return func(c *Client) { c.flags = f } }
func WithSink(s Sink) Option                { return func(c *Client) { c.sink = s } }
func WithLogger(log *logger.Logger) Option  { return func(c *Client) { c.log = log } }

// New constructs a storefront client against the API base URL
// (e.g. "http://localhost:8080/api").
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		notify:  NopNotifier{},
		flags:   NewMemoryFlags(),
		sink:    NopSink{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		c.http = &http.Client{Jar: jar}
	}
	return c, nil
}

// IsLoggedIn reports the advisory local flag. It controls UI visibility
// only; authorization is the server-verified session on every call.
func (c *Client) IsLoggedIn() bool {
	return c.flags.Get(flagLoggedIn) == "true"
}

// Username returns the locally remembered username.
func (c *Client) Username() string {
	return c.flags.Get(flagUsername)
}

// Cart returns a copy of the current mirror.
func (c *Client) Cart() []eyestyle.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]eyestyle.CartItem, len(c.cart))
	copy(out, c.cart)
	return out
}

// BadgeCount is the sum of quantities in the mirror.
func (c *Client) BadgeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return badgeCount(c.cart)
}

// Login authenticates against the API and, on success, persists the
// advisory flags.
func (c *Client) Login(ctx context.Context, username, password string) error {
	res, err := c.postAction(ctx, "login", url.Values{
		"username": {username},
		"password": {password},
	})
	if err != nil {
		return err
	}
	if !res.Success {
		c.notify.Toast(res.Message)
		return errAppFailure
	}
	c.flags.Set(flagLoggedIn, "true")
	c.flags.Set(flagUsername, username)
	c.notify.Toast(res.Message)
	return nil
}

// Register creates an account from arbitrary form fields.
func (c *Client) Register(ctx context.Context, fields url.Values) error {
	res, err := c.postAction(ctx, "register", fields)
	if err != nil {
		return err
	}
	c.notify.Toast(res.Message)
	if !res.Success {
		return errAppFailure
	}
	return nil
}

// Logout drops the advisory flags and empties the mirror.
func (c *Client) Logout() {
	c.flags.Delete(flagLoggedIn)
	c.flags.Delete(flagUsername)
	c.mu.Lock()
	c.cart = nil
	c.mu.Unlock()
	c.renderCart()
	c.notify.Toast("Logged out successfully")
}

// LoadProducts fetches the catalog, optionally filtered, and renders the
// grid. A response that is not a JSON array is reported and never rendered
// as partial data.
func (c *Client) LoadProducts(ctx context.Context, category string) error {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	var products []eyestyle.Product
	if err := c.getAction(ctx, "products", q, &products); err != nil {
		if errors.Is(err, errNotAnArray) {
			c.notify.Toast("Error loading products")
		}
		return err
	}
	markup, err := RenderProducts(products)
	if err != nil {
		return err
	}
	c.sink.ShowProducts(markup)
	return nil
}

// LoadCart resyncs the mirror with the server's authoritative cart rows and
// re-renders. When the user is not logged in the mirror is simply emptied.
// A resync that was superseded by a newer operation is discarded.
func (c *Client) LoadCart(ctx context.Context) error {
	if !c.IsLoggedIn() {
		c.mu.Lock()
		c.cart = nil
		c.mu.Unlock()
		c.renderCart()
		return nil
	}

	gen := c.nextGen()
	var items []eyestyle.CartItem
	if err := c.getAction(ctx, "get_cart", nil, &items); err != nil {
		return err
	}

	c.mu.Lock()
	if gen != c.gen {
		// A newer mutation or reload started while this one was in
		// flight; its resync owns the mirror now.
		c.mu.Unlock()
		return nil
	}
	c.cart = items
	c.mu.Unlock()
	c.renderCart()
	return nil
}

// AddToCart sends the mutation and resyncs the full cart rather than
// patching the mirror, so the view never drifts from server-side stock and
// price decisions.
func (c *Client) AddToCart(ctx context.Context, productID, quantity int) error {
	if !c.IsLoggedIn() {
		c.notify.Toast("Please login to add items to cart")
		return nil
	}
	if quantity <= 0 {
		quantity = 1
	}
	res, err := c.postAction(ctx, "add_to_cart", url.Values{
		"product_id": {strconv.Itoa(productID)},
		"quantity":   {strconv.Itoa(quantity)},
	})
	if err != nil {
		return err
	}
	c.notify.Toast(res.Message)
	if !res.Success {
		return errAppFailure
	}
	return c.LoadCart(ctx)
}

// UpdateQuantity applies a delta to the mirrored row at index and sends the
// resulting absolute quantity. A result of zero or less routes to
// RemoveFromCart, producing the same end state.
func (c *Client) UpdateQuantity(ctx context.Context, index, delta int) error {
	c.mu.Lock()
	if index < 0 || index >= len(c.cart) {
		c.mu.Unlock()
		return errIndexOutOfRange
	}
	row := c.cart[index]
	c.mu.Unlock()

	newQuantity := row.Quantity + delta
	if newQuantity <= 0 {
		return c.RemoveFromCart(ctx, index)
	}

	res, err := c.postAction(ctx, "update_cart", url.Values{
		"cart_id":  {strconv.Itoa(row.ID)},
		"quantity": {strconv.Itoa(newQuantity)},
	})
	if err != nil {
		return err
	}
	if !res.Success {
		c.notify.Toast(res.Message)
		return errAppFailure
	}
	return c.LoadCart(ctx)
}

// RemoveFromCart removes the mirrored row at index by its server-assigned
// cart-row id, then resyncs.
func (c *Client) RemoveFromCart(ctx context.Context, index int) error {
	c.mu.Lock()
	if index < 0 || index >= len(c.cart) {
		c.mu.Unlock()
		return errIndexOutOfRange
	}
	row := c.cart[index]
	c.mu.Unlock()

	res, err := c.postAction(ctx, "remove_from_cart", url.Values{
		"cart_id": {strconv.Itoa(row.ID)},
	})
	if err != nil {
		return err
	}
	if !res.Success {
		c.notify.Toast(res.Message)
		return errAppFailure
	}
	c.notify.Toast("Item removed from cart")
	return c.LoadCart(ctx)
}

// BeginCheckout starts the checkout dialog state. An empty cart is refused
// with a toast and no network call is made.
func (c *Client) BeginCheckout() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.cart) == 0 {
		c.notify.Toast("Your cart is empty")
		return errors.New("cart is empty")
	}
	c.awaitingAddress = true
	return nil
}

// CancelCheckout aborts a pending checkout without any network call.
func (c *Client) CancelCheckout() {
	c.mu.Lock()
	c.awaitingAddress = false
	c.mu.Unlock()
}

// AwaitingAddress reports whether a checkout dialog is open.
func (c *Client) AwaitingAddress() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.awaitingAddress
}

// ConfirmCheckout submits the entered address with the fixed payment
// method. On success the mirror is cleared and re-rendered.
func (c *Client) ConfirmCheckout(ctx context.Context, shippingAddress string) error {
	c.mu.Lock()
	pending := c.awaitingAddress
	c.awaitingAddress = false
	c.mu.Unlock()
	if !pending {
		return errNoCheckout
	}

	res, err := c.postAction(ctx, "create_order", url.Values{
		"shipping_address": {shippingAddress},
		"payment_method":   {"card"},
	})
	if err != nil {
		return err
	}
	if !res.Success {
		c.notify.Toast(res.Message)
		return errAppFailure
	}

	c.notify.Toast("Order placed successfully!")
	c.mu.Lock()
	c.nextGenLocked()
	c.cart = nil
	c.mu.Unlock()
	c.renderCart()
	return nil
}

// nextGen invalidates any in-flight cart response and returns the new
// generation token.
func (c *Client) nextGen() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nextGenLocked()
}

func (c *Client) nextGenLocked() uint64 {
	c.gen++
	return c.gen
}

func (c *Client) renderCart() {
	c.mu.Lock()
	items := make([]eyestyle.CartItem, len(c.cart))
	copy(items, c.cart)
	c.mu.Unlock()

	markup, err := RenderCart(items)
	if err != nil {
		if c.log != nil {
			c.log.Errorw("render_cart_failed", "err", err)
		}
		return
	}
	c.sink.ShowCart(markup, badgeCount(items))
}

// getAction issues a GET and decodes the response, which must be a JSON
// array for collection actions. An empty array is a valid empty result;
// anything that does not decode as an array is malformed.
func (c *Client) getAction(ctx context.Context, action string, query url.Values, out interface{}) error {
	body, err := c.doRequest(ctx, http.MethodGet, action, query, nil)
	if err != nil {
		return err
	}
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "[") {
		c.notify.Toast(msgNetworkError)
		return fmt.Errorf("action %s: %w", action, errNotAnArray)
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.notify.Toast(msgNetworkError)
		return fmt.Errorf("decode %s response: %w", action, err)
	}
	return nil
}

// postAction issues a form-encoded POST and decodes the {success, message}
// envelope.
func (c *Client) postAction(ctx context.Context, action string, form url.Values) (apiResult, error) {
	body, err := c.doRequest(ctx, http.MethodPost, action, nil, form)
	if err != nil {
		return apiResult{}, err
	}
	var res apiResult
	if err := json.Unmarshal(body, &res); err != nil {
		c.notify.Toast(msgNetworkError)
		return apiResult{}, fmt.Errorf("decode %s response: %w", action, err)
	}
	return res, nil
}

// doRequest performs one attempt — no retry, no backoff — and collapses
// transport failures and top-level error fields into the one generic toast.
func (c *Client) doRequest(ctx context.Context, method, action string, query, form url.Values) ([]byte, error) {
	u := c.baseURL + "?action=" + url.QueryEscape(action)
	for key, vals := range query {
		for _, v := range vals {
			u += "&" + url.QueryEscape(key) + "=" + url.QueryEscape(v)
		}
	}

	var reqBody io.Reader
	if method == http.MethodPost {
		reqBody = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		c.notify.Toast(msgNetworkError)
		return nil, fmt.Errorf("build %s request: %w", action, err)
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.notify.Toast(msgNetworkError)
		return nil, fmt.Errorf("call %s: %w", action, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.notify.Toast(msgNetworkError)
		return nil, fmt.Errorf("read %s response: %w", action, err)
	}

	// A top-level error field short-circuits success handling regardless of
	// action, through the same generic path as a transport failure.
	var probe struct {
		Error string `json:"error"`
	}
	if jsonErr := json.Unmarshal(body, &probe); jsonErr == nil && probe.Error != "" {
		if c.log != nil {
			c.log.Infow("api_error_field", "action", action, "error", probe.Error)
		}
		c.notify.Toast(msgNetworkError)
		return nil, fmt.Errorf("action %s: %w: %s", action, errAppFailure, probe.Error)
	}
	return body, nil
}

func badgeCount(items []eyestyle.CartItem) int {
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return count
}
