package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"eyestyle/internal/repository"
	"eyestyle/internal/service"

	"github.com/gin-gonic/gin"
)

// User-facing messages. Auth failures are deliberately one generic string
// for both unknown-user and wrong-password.
const (
	msgMissingCredentials = "Please enter both username and password."
	msgInvalidCredentials = "Invalid username or password."
	msgLoginOK            = "Login successful!"
	msgRegisterOK         = "Registration successful. Please log in."
	msgAddedToCart        = "Product added to cart"
	msgCartUpdated        = "Cart updated"
	msgRemovedFromCart    = "Item removed from cart"
	msgOrderPlaced        = "Order placed successfully!"

	errAuthRequired  = "authentication required"
	errUnknownAction = "unknown action"
	errDatabase      = "database error"
	errLoadProducts  = "failed to load products"
	errLoadCart      = "failed to load cart"
)

// apiResult is the {success, message} envelope POST actions resolve to.
type apiResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// dispatchAction routes one /api call by its "action" query parameter.
//
// @Summary      Storefront API
// @Description  Single endpoint dispatched by the `action` query parameter. POST bodies are form-url-encoded; every response is JSON.
// @Tags         storefront
// @Param        action  query  string  true  "Action"  Enums(login,register,products,get_cart,add_to_cart,update_cart,remove_from_cart,create_order)
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api [get]
func (h *Handler) dispatchAction(c *gin.Context) {
	switch c.Query("action") {
	case "login":
		h.apiLogin(c)
	case "register":
		h.apiRegister(c)
	case "products":
		h.apiProducts(c)
	case "get_cart":
		h.apiGetCart(c)
	case "add_to_cart":
		h.apiAddToCart(c)
	case "update_cart":
		h.apiUpdateCart(c)
	case "remove_from_cart":
		h.apiRemoveFromCart(c)
	case "create_order":
		h.apiCreateOrder(c)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": errUnknownAction})
	}
}

func (h *Handler) apiLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	token, err := h.services.Login(c.Request.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			c.JSON(http.StatusOK, apiResult{Success: false, Message: msgMissingCredentials})
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusOK, apiResult{Success: false, Message: msgInvalidCredentials})
		default:
			// Storage detail goes to the log, never to the user.
			h.logAndJSONError(c, http.StatusInternalServerError, errDatabase, "api_login_failed", err)
		}
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, apiResult{Success: true, Message: msgLoginOK})
}

func (h *Handler) apiRegister(c *gin.Context) {
	id, err := h.services.Register(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWeakCredentials), errors.Is(err, service.ErrUsernameTaken):
			c.JSON(http.StatusOK, apiResult{Success: false, Message: err.Error()})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errDatabase, "api_register_failed", err)
		}
		return
	}
	if h.log != nil {
		h.log.Infow("user_registered", "id", id)
	}
	c.JSON(http.StatusOK, apiResult{Success: true, Message: msgRegisterOK})
}

func (h *Handler) apiProducts(c *gin.Context) {
	products, err := h.services.Products(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadProducts, "api_products_failed", err)
		return
	}
	// Always a JSON array; an empty catalog is [] rather than null.
	c.JSON(http.StatusOK, products)
}

func (h *Handler) apiGetCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errAuthRequired})
		return
	}
	items, err := h.services.Cart.Items(c.Request.Context(), userID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadCart, "api_get_cart_failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) apiAddToCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errAuthRequired})
		return
	}
	productID, err := strconv.Atoi(c.PostForm("product_id"))
	if err != nil {
		c.JSON(http.StatusOK, apiResult{Success: false, Message: "Invalid product"})
		return
	}
	quantity := 1
	if q := c.PostForm("quantity"); q != "" {
		quantity, err = strconv.Atoi(q)
		if err != nil {
			c.JSON(http.StatusOK, apiResult{Success: false, Message: "Invalid quantity"})
			return
		}
	}

	err = h.services.Cart.Add(c.Request.Context(), userID, productID, quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrInvalidQuantity):
			c.JSON(http.StatusOK, apiResult{Success: false, Message: err.Error()})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errDatabase, "api_add_to_cart_failed", err, "product_id", productID)
		}
		return
	}
	c.JSON(http.StatusOK, apiResult{Success: true, Message: msgAddedToCart})
}

func (h *Handler) apiUpdateCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errAuthRequired})
		return
	}
	cartID, err := strconv.Atoi(c.PostForm("cart_id"))
	if err != nil {
		c.JSON(http.StatusOK, apiResult{Success: false, Message: "Invalid cart item"})
		return
	}
	quantity, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil {
		c.JSON(http.StatusOK, apiResult{Success: false, Message: "Invalid quantity"})
		return
	}

	if err := h.services.Cart.SetQuantity(c.Request.Context(), userID, cartID, quantity); err != nil {
		if errors.Is(err, repository.ErrCartRowNotFound) {
			c.JSON(http.StatusOK, apiResult{Success: false, Message: "Cart item not found"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errDatabase, "api_update_cart_failed", err, "cart_id", cartID)
		return
	}
	c.JSON(http.StatusOK, apiResult{Success: true, Message: msgCartUpdated})
}

func (h *Handler) apiRemoveFromCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errAuthRequired})
		return
	}
	cartID, err := strconv.Atoi(c.PostForm("cart_id"))
	if err != nil {
		c.JSON(http.StatusOK, apiResult{Success: false, Message: "Invalid cart item"})
		return
	}

	if err := h.services.Cart.Remove(c.Request.Context(), userID, cartID); err != nil {
		if errors.Is(err, repository.ErrCartRowNotFound) {
			c.JSON(http.StatusOK, apiResult{Success: false, Message: "Cart item not found"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errDatabase, "api_remove_from_cart_failed", err, "cart_id", cartID)
		return
	}
	c.JSON(http.StatusOK, apiResult{Success: true, Message: msgRemovedFromCart})
}

func (h *Handler) apiCreateOrder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errAuthRequired})
		return
	}

	order, err := h.services.Checkout(c.Request.Context(), userID,
		c.PostForm("shipping_address"), c.PostForm("payment_method"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			c.JSON(http.StatusOK, apiResult{Success: false, Message: "Your cart is empty"})
		case errors.Is(err, service.ErrMissingAddress):
			c.JSON(http.StatusOK, apiResult{Success: false, Message: "Shipping address is required"})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errDatabase, "api_create_order_failed", err)
		}
		return
	}
	if h.log != nil {
		h.log.Infow("order_placed", "order_number", order.OrderNumber, "total", order.Total)
	}
	c.JSON(http.StatusOK, apiResult{Success: true, Message: msgOrderPlaced})
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
