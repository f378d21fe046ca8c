package eyestyle

import "time"

// User is a registered account. Identity key is the username (unique).
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // never serialized
}

// Product is one catalog entry. The client treats it as read-only.
type Product struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	ImageURL      string  `json:"image_url"`
	Category      string  `json:"category"`
}

// CartItem is one cart row joined with its product: the shape the
// storefront API returns from get_cart. ID is the server-assigned
// cart-row id, not the product id.
type CartItem struct {
	ID         int     `json:"id"`
	ProductID  int     `json:"product_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
	ImageURL   string  `json:"image_url"`
}

// Order is a placed order header. Lines live in OrderLine.
type Order struct {
	ID              int       `json:"id"`
	OrderNumber     string    `json:"order_number"`
	UserID          int       `json:"user_id"`
	ShippingAddress string    `json:"shipping_address"`
	PaymentMethod   string    `json:"payment_method"`
	Total           float64   `json:"total"`
	CreatedAt       time.Time `json:"created_at"`
}

// OrderLine is one product line frozen at order time.
type OrderLine struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// ContactMessage is one submission of the contact form.
type ContactMessage struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
