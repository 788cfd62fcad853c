// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// CatalogHandler handles product listing and detail endpoints
type CatalogHandler struct {
	provider catalog.Provider
	config   *config.Config
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(provider catalog.Provider, cfg *config.Config) *CatalogHandler {
	return &CatalogHandler{
		provider: provider,
		config:   cfg,
	}
}

// ProductListRequest represents product list query parameters
type ProductListRequest struct {
	Category string  `form:"category"`
	Color    string  `form:"color"`
	Size     string  `form:"size"`
	MaxPrice float64 `form:"max_price"`
	Page     int     `form:"page,default=1"`
	Limit    int     `form:"limit"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// GetProducts handles GET /products
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	var req ProductListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	if req.Limit < 1 {
		req.Limit = h.config.Cart.DefaultPageSize
	}
	if req.MaxPrice <= 0 {
		req.MaxPrice = h.config.Cart.MaxPrice
	}

	products, err := h.provider.Products(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to fetch products",
		})
		return
	}

	matches := catalog.Filter(products, catalog.FilterSpec{
		Category: req.Category,
		Color:    req.Color,
		Size:     req.Size,
		MaxPrice: req.MaxPrice,
	})

	// Paginate yields an empty page for out-of-range input, so the page
	// number is clamped here, at the caller
	_, totalPages := catalog.Paginate(matches, req.Limit, 1)
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Page > totalPages {
		req.Page = totalPages
	}
	pageItems, _ := catalog.Paginate(matches, req.Limit, req.Page)

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data": gin.H{
			"products": pageItems,
			"pagination": Pagination{
				Page:       req.Page,
				Limit:      req.Limit,
				Total:      len(matches),
				TotalPages: totalPages,
				HasNext:    req.Page < totalPages,
				HasPrev:    req.Page > 1,
			},
		},
	})
}

// GetProduct handles GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")

	product, err := h.provider.Product(c.Request.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to fetch product details",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    product,
	})
}
