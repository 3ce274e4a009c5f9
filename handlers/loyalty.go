package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vvladislovv/buitifal/models"
	"github.com/vvladislovv/buitifal/services/loyalty"
)

// LoyaltyHandler exposes the loyalty ledger.
type LoyaltyHandler struct {
	Svc    loyalty.Service
	Logger *zap.Logger
}

func NewLoyaltyHandler(svc loyalty.Service, logger *zap.Logger) *LoyaltyHandler {
	return &LoyaltyHandler{Svc: svc, Logger: logger}
}

// GetSummary handles GET /api/loyalty/:clientID.
func (h *LoyaltyHandler) GetSummary(c *gin.Context) {
	clientID := c.Param("clientID")
	summary, err := h.Svc.Summary(c.Request.Context(), clientID)
	if err != nil {
		h.Logger.Error("GetSummary: failed to load loyalty summary",
			zap.String("clientId", clientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load loyalty summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetTierTable handles GET /api/loyalty/tiers.
func (h *LoyaltyHandler) GetTierTable(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tiers": models.TierTable()})
}
