package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vvladislovv/buitifal/services/catalog"
)

// CatalogHandler exposes the static service and provider catalog.
type CatalogHandler struct {
	Feed catalog.Feed
}

func NewCatalogHandler(feed catalog.Feed) *CatalogHandler {
	return &CatalogHandler{Feed: feed}
}

// ListServices handles GET /api/catalog/services.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": h.Feed.ListServices()})
}

// ListProviders handles GET /api/catalog/providers. An optional ?category=
// filter narrows to providers covering that category.
func (h *CatalogHandler) ListProviders(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		c.JSON(http.StatusOK, gin.H{"providers": h.Feed.ProvidersByCategory(category)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": h.Feed.ListProviders()})
}

// GetService handles GET /api/catalog/services/:serviceID.
func (h *CatalogHandler) GetService(c *gin.Context) {
	svc, ok := h.Feed.ServiceByID(c.Param("serviceID"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		return
	}
	c.JSON(http.StatusOK, svc)
}

// GetProvider handles GET /api/catalog/providers/:providerID.
func (h *CatalogHandler) GetProvider(c *gin.Context) {
	p, ok := h.Feed.ProviderByID(c.Param("providerID"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "provider not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}
