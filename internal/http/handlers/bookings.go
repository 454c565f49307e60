package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"railbook/internal/http/middleware"
)

type createBookingRequest struct {
	TrainID int64 `json:"trainId"`
}

// POST /bookings (authenticated)
func (h Handlers) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := h.Reservations.ReserveSeat(c.Request.Context(), req.TrainID, middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, h.Log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "seat booked successfully",
		"booking": booking,
	})
}

// GET /bookings/:id (authenticated, owner only)
func (h Handlers) GetBooking(c *gin.Context) {
	booking, err := h.Reservations.GetBooking(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, h.Log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// GET /bookings/:id/ticket (authenticated, owner only)
func (h Handlers) GetBookingTicket(c *gin.Context) {
	ctx := c.Request.Context()

	booking, err := h.Reservations.GetBooking(ctx, c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, h.Log, err)
		return
	}

	train, err := h.Trains.Get(ctx, booking.TrainID)
	if err != nil {
		RespondDomainError(c, h.Log, err)
		return
	}

	pdfBytes, filename, err := h.Tickets.Generate(booking, train)
	if err != nil {
		RespondDomainError(c, h.Log, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
