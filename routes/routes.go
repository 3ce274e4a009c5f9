package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vvladislovv/buitifal/handlers"
)

// RegisterCatalogRoutes registers the service and provider catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine, h *handlers.CatalogHandler) {
	api := r.Group("/api/catalog")
	{
		api.GET("/services", h.ListServices)
		api.GET("/services/:serviceID", h.GetService)
		api.GET("/providers", h.ListProviders)
		api.GET("/providers/:providerID", h.GetProvider)
	}
}

// RegisterLoyaltyRoutes registers the loyalty ledger endpoints.
func RegisterLoyaltyRoutes(r *gin.Engine, h *handlers.LoyaltyHandler) {
	api := r.Group("/api/loyalty")
	{
		api.GET("/tiers", h.GetTierTable)
		api.GET("/clients/:clientID", h.GetSummary)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// SetupRoutes wires CORS and all route groups onto the router.
func SetupRoutes(r *gin.Engine, booking *handlers.BookingHandler, catalog *handlers.CatalogHandler, loyalty *handlers.LoyaltyHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, booking)
	RegisterCatalogRoutes(r, catalog)
	RegisterLoyaltyRoutes(r, loyalty)
}
