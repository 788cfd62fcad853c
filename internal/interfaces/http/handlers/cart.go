// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartEngine *cart.Engine
	provider   catalog.Provider
	config     *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartEngine *cart.Engine, provider catalog.Provider, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartEngine: cartEngine,
		provider:   provider,
		config:     cfg,
	}
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID string `json:"product_id"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// CartLineResponse represents a cart line with resolved product details.
// Product is null when the referenced product has left the catalog;
// such lines contribute zero to the total.
type CartLineResponse struct {
	ProductID string           `json:"product_id"`
	Color     string           `json:"color"`
	Size      string           `json:"size"`
	Quantity  int              `json:"quantity"`
	Product   *catalog.Product `json:"product"`
	LineTotal float64          `json:"line_total"`
}

// CartResponse represents the cart with resolved lines and totals
type CartResponse struct {
	Items     []CartLineResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Total     float64            `json:"total"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	lines := h.cartEngine.Hydrate(c.Request.Context(), sessionID).Lines

	response, err := h.resolveCart(c, lines)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to fetch products for cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    response,
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	lines, err := h.cartEngine.AddItem(c.Request.Context(), sessionID, req.ProductID, req.Color, req.Size, req.Quantity)
	if err != nil {
		var validationErr *cart.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": validationErr.Message,
				"field": validationErr.Field,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to add item to cart",
		})
		return
	}

	response, resolveErr := h.resolveCart(c, lines)
	if resolveErr != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Item added but products could not be fetched",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    response,
	})
}

// RemoveFromCart handles DELETE /cart/items/:productId. Every variant
// of the product leaves the cart.
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)
	productID := c.Param("productId")

	lines := h.cartEngine.RemoveItem(c.Request.Context(), sessionID, productID)

	response, err := h.resolveCart(c, lines)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Item removed but products could not be fetched",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    response,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	h.cartEngine.Clear(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    CartResponse{Items: []CartLineResponse{}},
	})
}

// resolveCart joins cart lines against a fresh catalog snapshot. Lines
// whose product no longer resolves are kept with a null product and a
// zero line total.
func (h *CartHandler) resolveCart(c *gin.Context, lines []cart.Line) (*CartResponse, error) {
	products, err := h.provider.Products(c.Request.Context())
	if err != nil {
		return nil, err
	}
	snapshot := catalog.NewSnapshot(products)

	response := &CartResponse{
		Items: make([]CartLineResponse, len(lines)),
		Total: cart.ComputeTotal(lines, snapshot),
	}

	for i, line := range lines {
		item := CartLineResponse{
			ProductID: line.ProductID,
			Color:     line.Color,
			Size:      line.Size,
			Quantity:  line.Quantity,
		}
		if product, ok := snapshot.Lookup(line.ProductID); ok {
			item.Product = product
			item.LineTotal = float64(line.Quantity) * product.Price
		}
		response.Items[i] = item
		response.ItemCount += line.Quantity
	}

	return response, nil
}
