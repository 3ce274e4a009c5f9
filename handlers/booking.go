package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	reservationRepo "github.com/vvladislovv/buitifal/database/repository/reservation"
	"github.com/vvladislovv/buitifal/services/booking"
)

// BookingHandler exposes the booking session flow and the committed
// reservation endpoints.
type BookingHandler struct {
	Svc    booking.BookingSessionService
	Logger *zap.Logger
}

func NewBookingHandler(svc booking.BookingSessionService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// bookingStatus maps engine error codes to HTTP statuses. Anything uncoded is
// a store or infrastructure failure.
func bookingStatus(err error) int {
	switch booking.Code(err) {
	case booking.CodeSessionNotFound:
		return http.StatusNotFound
	case booking.CodeStateError:
		return http.StatusBadRequest
	case booking.CodeInvalidClientInfo:
		return http.StatusUnprocessableEntity
	case booking.CodeNoProviderAvailable, booking.CodeSlotNoLongerAvailable:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *BookingHandler) fail(c *gin.Context, op string, err error) {
	status := bookingStatus(err)
	if status == http.StatusInternalServerError {
		h.Logger.Error(op+": internal failure", zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": booking.Code(err)})
}

// StartSession handles POST /api/booking/session.
func (h *BookingHandler) StartSession(c *gin.Context) {
	var body struct {
		ClientID            string `json:"clientId" binding:"required"`
		PreferredProviderID string `json:"preferredProviderId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	session, err := h.Svc.StartSession(c.Request.Context(), body.ClientID, body.PreferredProviderID)
	if err != nil {
		h.fail(c, "StartSession", err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// SelectService handles PUT /api/booking/session/:sessionID/service.
func (h *BookingHandler) SelectService(c *gin.Context) {
	var body struct {
		ServiceID string `json:"serviceId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	session, err := h.Svc.SelectService(c.Request.Context(), c.Param("sessionID"), body.ServiceID)
	if err != nil {
		h.fail(c, "SelectService", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SelectProvider handles PUT /api/booking/session/:sessionID/provider.
func (h *BookingHandler) SelectProvider(c *gin.Context) {
	var body struct {
		ProviderID string `json:"providerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	session, err := h.Svc.SelectProvider(c.Request.Context(), c.Param("sessionID"), body.ProviderID)
	if err != nil {
		h.fail(c, "SelectProvider", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SelectDate handles PUT /api/booking/session/:sessionID/date.
func (h *BookingHandler) SelectDate(c *gin.Context) {
	var body struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	session, err := h.Svc.SelectDate(c.Request.Context(), c.Param("sessionID"), body.Date)
	if err != nil {
		h.fail(c, "SelectDate", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SelectSlot handles PUT /api/booking/session/:sessionID/slot.
func (h *BookingHandler) SelectSlot(c *gin.Context) {
	var body struct {
		Start *int `json:"start" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	session, err := h.Svc.SelectSlot(c.Request.Context(), c.Param("sessionID"), *body.Start)
	if err != nil {
		h.fail(c, "SelectSlot", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Back handles POST /api/booking/session/:sessionID/back.
func (h *BookingHandler) Back(c *gin.Context) {
	session, err := h.Svc.Back(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.fail(c, "Back", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Confirm handles POST /api/booking/session/:sessionID/confirm.
func (h *BookingHandler) Confirm(c *gin.Context) {
	var body struct {
		Name  string `json:"name" binding:"required"`
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	result, err := h.Svc.Confirm(c.Request.Context(), c.Param("sessionID"), body.Name, body.Phone)
	if err != nil {
		h.fail(c, "Confirm", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// CancelSession handles DELETE /api/booking/session/:sessionID.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	if err := h.Svc.CancelSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		h.fail(c, "CancelSession", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// GetSlotMenu handles GET /api/booking/slots/:providerID/:date.
func (h *BookingHandler) GetSlotMenu(c *gin.Context) {
	menu, err := h.Svc.GetSlotMenu(c.Request.Context(), c.Param("providerID"), c.Param("date"))
	if err != nil {
		h.fail(c, "GetSlotMenu", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": menu})
}

// ListReservations handles GET /api/booking/reservations/:clientID.
func (h *BookingHandler) ListReservations(c *gin.Context) {
	history, err := h.Svc.ListClientReservations(c.Request.Context(), c.Param("clientID"))
	if err != nil {
		h.fail(c, "ListReservations", err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// CancelReservation handles DELETE /api/booking/reservations/:reservationID.
func (h *BookingHandler) CancelReservation(c *gin.Context) {
	id := c.Param("reservationID")
	err := h.Svc.CancelReservation(c.Request.Context(), id)
	if errors.Is(err, reservationRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
		return
	}
	if err != nil {
		h.fail(c, "CancelReservation", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
