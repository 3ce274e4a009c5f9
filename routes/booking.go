package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vvladislovv/buitifal/handlers"
)

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	api := r.Group("/api/booking")
	{
		// Session flow.
		api.POST("/session", h.StartSession)
		api.PUT("/session/:sessionID/service", h.SelectService)
		api.PUT("/session/:sessionID/provider", h.SelectProvider)
		api.PUT("/session/:sessionID/date", h.SelectDate)
		api.PUT("/session/:sessionID/slot", h.SelectSlot)
		api.POST("/session/:sessionID/back", h.Back)
		api.POST("/session/:sessionID/confirm", h.Confirm)
		api.DELETE("/session/:sessionID", h.CancelSession)

		// Slot menu outside a session (widget preview).
		api.GET("/slots/:providerID/:date", h.GetSlotMenu)

		// Committed reservations.
		api.GET("/reservations/:clientID", h.ListReservations)
		api.DELETE("/reservations/:reservationID", h.CancelReservation)
	}
}
