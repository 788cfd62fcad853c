// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
)

// SetupCatalogRoutes sets up product listing and detail routes
func SetupCatalogRoutes(rg *gin.RouterGroup, provider catalog.Provider, cfg *config.Config) {
	catalogHandler := handlers.NewCatalogHandler(provider, cfg)

	products := rg.Group("/products")
	{
		products.GET("", catalogHandler.GetProducts)
		products.GET("/:id", catalogHandler.GetProduct)
	}
}

// SetupCartRoutes sets up cart routes. Carts are scoped to the session
// cookie; no authentication is involved.
func SetupCartRoutes(rg *gin.RouterGroup, cartEngine *cart.Engine, provider catalog.Provider, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(cartEngine, provider, cfg)

	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.DELETE("/items/:productId", cartHandler.RemoveFromCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
	}
}

// SetupCheckoutRoutes sets up checkout routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, checkoutService *checkout.Service, cfg *config.Config) {
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, cfg)

	rg.POST("/checkout", checkoutHandler.Submit)
}

// SetupRoutes sets up all API routes
func SetupRoutes(rg *gin.RouterGroup, provider catalog.Provider, cartEngine *cart.Engine, checkoutService *checkout.Service, cfg *config.Config) {
	SetupCatalogRoutes(rg, provider, cfg)
	SetupCartRoutes(rg, cartEngine, provider, cfg)
	SetupCheckoutRoutes(rg, checkoutService, cfg)
}
