package client

import (
	"fmt"
	"html/template"
	"strings"

	"eyestyle"
)

// Products with fewer units than this get the low-stock marker.
const lowStockThreshold = 10

// placeholderImage replaces a missing image URL at render time; the same
// path is wired as the onerror fallback for image-load failures.
const placeholderImage = "images/placeholder.jpg"

const defaultDescription = "Premium quality eyewear"

// Rendering is a pure function of the given snapshot: the same slice always
// produces the same markup.
var (
	productGridTmpl = template.Must(template.New("products").Parse(`{{range .}}<div class="product-card" data-product-id="{{.ID}}">
    {{if .LowStock}}<span class="product-badge">Low Stock</span>{{end}}
    <img src="{{.ImageURL}}" alt="{{.Name}}" class="product-image" onerror="this.src='` + placeholderImage + `'">
    <div class="product-info">
        <h3 class="product-title">{{.Name}}</h3>
        <p class="product-description">{{.Description}}</p>
        <div class="product-price">₹{{.Price}}</div>
        <button class="btn btn-primary btn-small add-to-cart" data-product-id="{{.ID}}">Add to Cart</button>
    </div>
</div>
{{end}}`))

	cartTmpl = template.Must(template.New("cart").Parse(`{{range .Items}}<div class="cart-item" data-cart-id="{{.ID}}">
    <img src="{{.ImageURL}}" alt="{{.Name}}" class="cart-item-image" onerror="this.src='` + placeholderImage + `'">
    <div class="cart-item-details">
        <h4 class="cart-item-title">{{.Name}}</h4>
        <div class="cart-item-price">₹{{.Price}}</div>
    </div>
    <div class="quantity-controls">
        <button class="quantity-btn" data-delta="-1">-</button>
        <span>{{.Quantity}}</span>
        <button class="quantity-btn" data-delta="1">+</button>
    </div>
    <div class="cart-item-total">₹{{.TotalPrice}}</div>
    <button class="remove-btn">Remove</button>
</div>
{{end}}<div class="cart-total">Total: ₹{{.Total}}</div>
`))
)

const emptyCartMarkup = `<div class="empty-cart">
    <p>Your cart is empty</p>
    <a href="product.html" class="btn btn-primary">Continue Shopping</a>
</div>
<div class="cart-total">Total: ₹0</div>
`

type productView struct {
	ID          int
	Name        string
	Description string
	Price       string
	ImageURL    string
	LowStock    bool
}

type cartItemView struct {
	ID         int
	Name       string
	Price      string
	Quantity   int
	TotalPrice string
	ImageURL   string
}

type cartView struct {
	Items []cartItemView
	Total string
}

// RenderProducts produces the product grid markup for a catalog snapshot.
func RenderProducts(products []eyestyle.Product) (string, error) {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		desc := p.Description
		if desc == "" {
			desc = defaultDescription
		}
		views = append(views, productView{
			ID:          p.ID,
			Name:        p.Name,
			Description: desc,
			Price:       formatPrice(p.Price),
			ImageURL:    imageOrPlaceholder(p.ImageURL),
			LowStock:    p.StockQuantity < lowStockThreshold,
		})
	}
	var sb strings.Builder
	if err := productGridTmpl.Execute(&sb, views); err != nil {
		return "", fmt.Errorf("render products: %w", err)
	}
	return sb.String(), nil
}

// RenderCart produces the cart markup for a mirror snapshot, including the
// summed total formatted to two decimal places.
func RenderCart(items []eyestyle.CartItem) (string, error) {
	if len(items) == 0 {
		return emptyCartMarkup, nil
	}

	var total float64
	views := make([]cartItemView, 0, len(items))
	for _, it := range items {
		total += it.TotalPrice
		views = append(views, cartItemView{
			ID:         it.ID,
			Name:       it.Name,
			Price:      formatPrice(it.Price),
			Quantity:   it.Quantity,
			TotalPrice: formatPrice(it.TotalPrice),
			ImageURL:   imageOrPlaceholder(it.ImageURL),
		})
	}
	var sb strings.Builder
	if err := cartTmpl.Execute(&sb, cartView{Items: views, Total: formatPrice(total)}); err != nil {
		return "", fmt.Errorf("render cart: %w", err)
	}
	return sb.String(), nil
}

func formatPrice(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func imageOrPlaceholder(u string) string {
	if strings.TrimSpace(u) == "" {
		return placeholderImage
	}
	return u
}
